// Package wave provides the two-component seismic trace pair and the
// transform primitives used by shear-wave splitting measurements.
//
// A [Pair] holds two equal-length, odd-length time series sampled at a
// fixed interval together with the orientation of its components and an
// active analysis [Window]. Rotation updates samples and orientation
// consistently, so the represented physical signal is invariant under
// [Pair.RotateTo] — only its coordinate representation changes.
//
// The stateless primitives [Rotate], [Lag], [Chop], [Split] and [Unsplit]
// operate directly on sample slices; they are the building blocks of the
// grid search in measure/splitting. [Split] models forward propagation
// through an anisotropic medium (the slow component is delayed), and
// [Unsplit] is its exact algebraic inverse on the overlapping region.
//
// Synthetic pairs with a known splitting operator can be generated with
// [Synth] for testing and benchmarking.
package wave
