package splitting

import "errors"

// ErrConfig reports malformed measurement configuration: bad grids,
// negative correction lags, or a missing polarization for an objective
// that needs one.
var ErrConfig = errors.New("splitting: invalid configuration")
