package geolayer

import "errors"

// Package errors for geolayer.
var (
	// ErrProjectionDomain is returned by CheckLat for latitudes at or beyond
	// the poles, where the Mercator projection is undefined. Project itself
	// performs no check and returns a non-finite value for such inputs;
	// rejecting them is the caller's contract.
	ErrProjectionDomain = errors.New("geolayer: latitude at or beyond a pole has no Mercator projection")
)

// ParseError reports a malformed feature-collection payload. Ingest abandons
// the whole payload when parsing fails; per-feature problems (bad polygons)
// are reported through the feature-error callback instead and never abort
// the remaining features.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "geolayer: parse feature collection: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }
