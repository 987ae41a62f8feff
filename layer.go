package geolayer

import "github.com/paulmach/orb/geojson"

// Layer ties the geometry-to-buffer pipeline together: it owns the vertex
// buffer store, the feature ingestor, the tile cache, the pick index, and
// the current view state (zoom, viewport offset and size).
//
// Layer is single-threaded by design: all ingestion and view mutation must
// happen on the same event-loop thread that reads the buffers for upload.
type Layer struct {
	store    *BufferStore
	ingestor *Ingestor
	tiles    *TileCache
	picks    *PickIndex

	zoom     float64
	topLeftX float64
	topLeftY float64
	width    int
	height   int
	base     Mat4
}

// NewLayer creates a Layer for a width×height pixel viewport.
func NewLayer(width, height int, opts ...LayerOption) *Layer {
	o := defaultLayerOptions()
	for _, opt := range opts {
		opt(&o)
	}

	store := NewBufferStore()
	picks := NewPickIndex()
	ing := NewIngestor(store)
	ing.Picks = picks
	ing.PointColor = o.pointColor
	ing.FillColor = o.fillColor
	ing.BorderColor = o.borderColor
	ing.OnFeatureAdded = o.onAdded
	ing.OnFeatureError = o.onError

	return &Layer{
		store:    store,
		ingestor: ing,
		tiles:    NewTileCache(ing, o.fetcher, o.tileCacheLimit),
		picks:    picks,
		width:    width,
		height:   height,
		base:     OrthoPixelMatrix(width, height),
	}
}

// Store returns the layer's vertex buffer store.
func (l *Layer) Store() *BufferStore { return l.store }

// Ingest parses and ingests an inline GeoJSON feature-collection payload.
func (l *Layer) Ingest(payload []byte) error {
	return l.ingestor.Ingest(payload)
}

// IngestCollection ingests an already-parsed feature collection.
func (l *Layer) IngestCollection(fc *geojson.FeatureCollection) {
	l.ingestor.IngestCollection(fc)
}

// RequestTile fetches and ingests a tile payload unless its URL has been
// requested before.
func (l *Layer) RequestTile(url string) {
	l.tiles.RequestTile(url)
}

// RequestTileAt requests the tile containing the geographic coordinate,
// building its URL from a z/x/y template; see [TileURL].
func (l *Layer) RequestTileAt(template string, lng, lat float64, zoom int) {
	l.tiles.RequestTileAt(template, lng, lat, zoom)
}

// Resize updates the viewport size, recomputing the base projection matrix.
// The base matrix changes only here, never per frame.
func (l *Layer) Resize(width, height int) {
	if width == l.width && height == l.height {
		return
	}
	l.width, l.height = width, height
	l.base = OrthoPixelMatrix(width, height)
}

// SetView updates the current zoom level and the viewport's top-left corner
// in world-pixel units.
func (l *Layer) SetView(zoom, topLeftX, topLeftY float64) {
	l.zoom = zoom
	l.topLeftX = topLeftX
	l.topLeftY = topLeftY
}

// FrameTransform computes the view transform for the current frame from the
// base matrix and the current zoom and offset. Call it every frame; the
// result is not cached.
func (l *Layer) FrameTransform() Mat4 {
	return ViewMatrix(l.base, l.zoom, l.topLeftX, l.topLeftY)
}

// PickAt returns the ingested features whose geometry bounds contain the
// geographic coordinate.
func (l *Layer) PickAt(lng, lat float64) []*geojson.Feature {
	return l.picks.At(lng, lat)
}

// RecolorFeature overwrites the buffer color of a previously ingested
// feature using the index metadata stamped on it. It reports whether the
// feature carried usable metadata.
func (l *Layer) RecolorFeature(f *geojson.Feature, c Color) bool {
	if f == nil {
		return false
	}
	if idx, ok := propInt(f, PropIndex); ok {
		l.store.RecolorPoint(idx, c)
		return true
	}
	start, okS := propInt(f, PropIndexStart)
	end, okE := propInt(f, PropIndexEnd)
	if okS && okE {
		l.store.RecolorFillRange(start, end, c)
		return true
	}
	return false
}

// propInt reads a stamped integer property. Values survive JSON round trips
// as float64, so both representations are accepted.
func propInt(f *geojson.Feature, key string) (int, bool) {
	v, ok := f.Properties[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	}
	return 0, false
}
