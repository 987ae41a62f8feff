package geolayer

import "github.com/paulmach/orb/geojson"

// LayerOption configures a Layer during creation.
//
// Example:
//
//	layer := geolayer.NewLayer(800, 600,
//	    geolayer.WithFillColor(geolayer.Hex("#31a354")),
//	    geolayer.WithFetcher(myFetcher),
//	)
type LayerOption func(*layerOptions)

// layerOptions holds optional configuration for Layer creation.
type layerOptions struct {
	pointColor  Color
	fillColor   Color
	borderColor Color

	fetcher        TileFetcher
	tileCacheLimit int

	onAdded func(*geojson.Feature)
	onError func(*geojson.Feature, error)
}

// defaultLayerOptions returns the default layer options.
func defaultLayerOptions() layerOptions {
	return layerOptions{
		pointColor:  DefaultPointColor,
		fillColor:   DefaultFillColor,
		borderColor: DefaultBorderColor,
	}
}

// WithPointColor sets the color applied to point vertices.
func WithPointColor(c Color) LayerOption {
	return func(o *layerOptions) { o.pointColor = c }
}

// WithFillColor sets the color applied to polygon fill vertices.
func WithFillColor(c Color) LayerOption {
	return func(o *layerOptions) { o.fillColor = c }
}

// WithBorderColor sets the color applied to polygon border vertices.
func WithBorderColor(c Color) LayerOption {
	return func(o *layerOptions) { o.borderColor = c }
}

// WithFetcher sets the tile fetcher. The default fetches over HTTP with
// http.DefaultClient.
func WithFetcher(f TileFetcher) LayerOption {
	return func(o *layerOptions) { o.fetcher = f }
}

// WithTileCacheLimit bounds the tile seen-set to n URLs, evicting the least
// recently requested ones. The default (0) keeps every URL for the lifetime
// of the layer, matching short-session usage.
func WithTileCacheLimit(n int) LayerOption {
	return func(o *layerOptions) { o.tileCacheLimit = n }
}

// WithOnFeatureAdded sets the hook invoked once per successfully ingested
// feature, after its buffer-range metadata has been stamped.
func WithOnFeatureAdded(fn func(*geojson.Feature)) LayerOption {
	return func(o *layerOptions) { o.onAdded = fn }
}

// WithOnFeatureError sets the hook invoked when a single feature fails to
// tesselate and is skipped.
func WithOnFeatureError(fn func(*geojson.Feature, error)) LayerOption {
	return func(o *layerOptions) { o.onError = fn }
}
