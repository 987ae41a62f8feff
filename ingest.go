package geolayer

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/gogpu/geolayer/tess"
)

// Property keys stamped onto ingested features. Point features receive
// PropIndex; polygon features receive PropIndexStart and PropIndexEnd, a
// half-open range in fill-triangle units.
const (
	PropIndex      = "index"
	PropIndexStart = "indexStart"
	PropIndexEnd   = "indexEnd"
)

// Default vertex colors applied during ingestion.
var (
	DefaultPointColor  = Hex("#e6550d")
	DefaultFillColor   = Hex("#3182bd")
	DefaultBorderColor = Hex("#08306b")
)

// Ingestor parses GeoJSON feature collections and grows the vertex buffers
// of its BufferStore. One Ingestor feeds one store.
//
// Ingestion is synchronous: tesselating a large payload blocks until done.
// Callers with tight frame budgets should chunk their payloads.
type Ingestor struct {
	// Store receives the produced vertices. Required.
	Store *BufferStore

	// Picks, when non-nil, is given every successfully ingested feature for
	// spatial hit-testing.
	Picks *PickIndex

	// Vertex colors. NewIngestor initializes them to the package defaults.
	PointColor  Color
	FillColor   Color
	BorderColor Color

	// OnFeatureAdded is invoked once per successfully ingested feature,
	// after its index metadata has been stamped into its properties.
	OnFeatureAdded func(*geojson.Feature)

	// OnFeatureError is invoked when a single feature fails to tesselate.
	// The feature is skipped and ingestion of the remaining features
	// continues; the error is never returned from Ingest.
	OnFeatureError func(*geojson.Feature, error)

	tess *tess.Tesselator
}

// NewIngestor creates an Ingestor feeding the given store, with the default
// colors and no callbacks.
func NewIngestor(store *BufferStore) *Ingestor {
	return &Ingestor{
		Store:       store,
		PointColor:  DefaultPointColor,
		FillColor:   DefaultFillColor,
		BorderColor: DefaultBorderColor,
		tess:        tess.New(),
	}
}

// Ingest parses a GeoJSON feature-collection payload and appends every
// supported feature to the store. A malformed payload returns a *ParseError
// and nothing is appended. Geometry types other than Point, Polygon and
// MultiPolygon are silently skipped: the input format may legitimately
// carry types this layer does not render.
func (in *Ingestor) Ingest(payload []byte) error {
	fc, err := geojson.UnmarshalFeatureCollection(payload)
	if err != nil {
		return &ParseError{Err: err}
	}
	for _, f := range fc.Features {
		in.ingestFeature(f)
	}
	return nil
}

// IngestCollection appends an already-parsed feature collection.
func (in *Ingestor) IngestCollection(fc *geojson.FeatureCollection) {
	for _, f := range fc.Features {
		in.ingestFeature(f)
	}
}

func (in *Ingestor) ingestFeature(f *geojson.Feature) {
	if f == nil || f.Geometry == nil {
		return
	}
	switch g := f.Geometry.(type) {
	case orb.Point:
		x, y := Project(g.Lon(), g.Lat())
		idx := in.Store.AppendPoint(x, y, in.PointColor)
		stamp(f, PropIndex, idx)

	case orb.Polygon:
		start := in.Store.FillTriangleCount()
		if err := in.addRingSet(g); err != nil {
			in.reportError(f, err)
			return
		}
		stamp(f, PropIndexStart, start)
		stamp(f, PropIndexEnd, in.Store.FillTriangleCount())

	case orb.MultiPolygon:
		start := in.Store.FillTriangleCount()
		for _, poly := range g {
			if err := in.addRingSet(poly); err != nil {
				in.reportError(f, err)
				return
			}
		}
		stamp(f, PropIndexStart, start)
		stamp(f, PropIndexEnd, in.Store.FillTriangleCount())

	default:
		Logger().Debug("geolayer: skipping unsupported geometry",
			"type", f.Geometry.GeoJSONType())
		return
	}

	if in.Picks != nil {
		in.Picks.Insert(f)
	}
	if in.OnFeatureAdded != nil {
		in.OnFeatureAdded(f)
	}
}

// addRingSet processes one set of rings (outer + holes) forming a single
// polygon-with-holes: borders first, then fill triangles.
//
// The same geometry lands in two buffers on purpose: borders are drawn as
// one line loop per part while fills join one batched triangle draw, and
// the two layouts are incompatible.
func (in *Ingestor) addRingSet(poly orb.Polygon) error {
	var border []float64
	in.tess.BeginPolygon()
	for _, ring := range poly {
		xy := projectRing(ring)
		if len(xy) == 0 {
			continue
		}
		border = append(border, xy...)
		in.tess.BeginContour()
		for i := 0; i+1 < len(xy); i += 2 {
			in.tess.Vertex(xy[i], xy[i+1])
		}
		in.tess.EndContour()
	}
	in.Store.AppendBorder(border, in.BorderColor)

	tris, err := in.tess.EndPolygon()
	if err != nil {
		return err
	}
	// Vertices synthesized at edge crossings get the same fill color as
	// everything else rather than a blend of their parent edges.
	in.Store.AppendFill(tris, in.FillColor)
	return nil
}

func (in *Ingestor) reportError(f *geojson.Feature, err error) {
	Logger().Warn("geolayer: feature skipped", "err", err)
	if in.OnFeatureError != nil {
		in.OnFeatureError(f, err)
	}
}

// projectRing projects a ring to world pixels as a flat (x, y) sequence,
// dropping the closing vertex GeoJSON rings carry.
func projectRing(ring orb.Ring) []float64 {
	n := len(ring)
	if n > 1 && ring[0] == ring[n-1] {
		n--
	}
	out := make([]float64, 0, n*2)
	for i := 0; i < n; i++ {
		x, y := Project(ring[i].Lon(), ring[i].Lat())
		out = append(out, x, y)
	}
	return out
}

func stamp(f *geojson.Feature, key string, value int) {
	if f.Properties == nil {
		f.Properties = geojson.Properties{}
	}
	f.Properties[key] = value
}
