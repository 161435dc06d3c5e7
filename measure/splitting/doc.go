// Package splitting measures shear-wave splitting parameters from a
// two-component trace pair. A grid search over candidate fast
// directions and delay times removes each candidate operator from the
// data, scores the result with a pluggable objective (eigenvalue ratio,
// transverse energy, cross-correlation), and reports the best fit with
// F-test confidence bounds. A one-shot splitting intensity estimator
// (Chevrot 2000) is provided alongside the grid search.
package splitting
