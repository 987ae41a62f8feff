package geolayer

import (
	"testing"

	"github.com/paulmach/orb/geojson"
)

func TestLayerPipeline(t *testing.T) {
	var added []*geojson.Feature
	layer := NewLayer(800, 600,
		WithOnFeatureAdded(func(f *geojson.Feature) { added = append(added, f) }),
	)

	payload := fc(quadFeature(10, 10, 2), pointFeature(50, 50))
	if err := layer.Ingest(payload); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if len(added) != 2 {
		t.Fatalf("OnFeatureAdded fired %d times, want 2", len(added))
	}

	store := layer.Store()
	if store.PointCount() != 1 {
		t.Errorf("PointCount = %d, want 1", store.PointCount())
	}
	if store.FillTriangleCount() != 2 {
		t.Errorf("FillTriangleCount = %d, want 2", store.FillTriangleCount())
	}

	// Picking inside the quad resolves back to the ingested feature.
	hits := layer.PickAt(11, 11)
	if len(hits) != 1 {
		t.Fatalf("PickAt(11,11) returned %d features, want 1", len(hits))
	}
	if hits[0] != added[0] {
		t.Error("picked feature is not the ingested quad")
	}
}

func TestLayerRecolorFeature(t *testing.T) {
	var added []*geojson.Feature
	layer := NewLayer(800, 600,
		WithOnFeatureAdded(func(f *geojson.Feature) { added = append(added, f) }),
	)
	if err := layer.Ingest(fc(quadFeature(0, 0, 1), pointFeature(30, 30))); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	red := Color{R: 1}
	packed := red.Pack()

	// Polygon range recolor.
	if !layer.RecolorFeature(added[0], red) {
		t.Fatal("RecolorFeature rejected polygon feature")
	}
	fills := layer.Store().FillVerts()
	for i := 2; i < len(fills); i += VertexStride {
		if fills[i] != packed {
			t.Fatalf("fill vertex %d color = %v, want %v", i/VertexStride, fills[i], packed)
		}
	}

	// Point recolor.
	if !layer.RecolorFeature(added[1], red) {
		t.Fatal("RecolorFeature rejected point feature")
	}
	if got := layer.Store().PointVerts()[2]; got != packed {
		t.Errorf("point color = %v, want %v", got, packed)
	}

	// Unstamped features are reported as such.
	if layer.RecolorFeature(geojson.NewFeature(nil), red) {
		t.Error("RecolorFeature accepted feature without index metadata")
	}
	if layer.RecolorFeature(nil, red) {
		t.Error("RecolorFeature accepted nil feature")
	}
}

func TestLayerRecolorAfterRoundTrip(t *testing.T) {
	// Index metadata read back from serialized GeoJSON arrives as float64.
	layer := NewLayer(100, 100)
	if err := layer.Ingest(fc(quadFeature(0, 0, 1))); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	f := geojson.NewFeature(nil)
	f.Properties = geojson.Properties{
		PropIndexStart: float64(0),
		PropIndexEnd:   float64(2),
	}
	if !layer.RecolorFeature(f, Color{B: 1}) {
		t.Fatal("RecolorFeature rejected float64 index metadata")
	}

	packed := Color{B: 1}.Pack()
	fills := layer.Store().FillVerts()
	if fills[2] != packed {
		t.Errorf("fill color = %v, want %v", fills[2], packed)
	}
}

func TestLayerViewState(t *testing.T) {
	layer := NewLayer(400, 300)

	layer.SetView(0, 0, 0)
	base := OrthoPixelMatrix(400, 300)
	if layer.FrameTransform() != base {
		t.Error("identity view differs from base matrix")
	}

	layer.SetView(2, 10, 20)
	if layer.FrameTransform() != ViewMatrix(base, 2, 10, 20) {
		t.Error("FrameTransform ignores view state")
	}

	// Resizing swaps the base matrix; the view state is kept.
	layer.Resize(800, 600)
	want := ViewMatrix(OrthoPixelMatrix(800, 600), 2, 10, 20)
	if layer.FrameTransform() != want {
		t.Error("FrameTransform ignores resize")
	}
}

func TestLayerTileOptions(t *testing.T) {
	calls := map[string]int{}
	layer := NewLayer(100, 100,
		WithFetcher(countingFetcher(calls)),
		WithTileCacheLimit(1),
	)

	layer.RequestTile("a")
	layer.RequestTile("b") // evicts a
	layer.RequestTile("a")

	if calls["a"] != 2 {
		t.Errorf("fetch calls for a = %d, want 2 (evicted then refetched)", calls["a"])
	}
	if layer.Store().PointCount() != 3 {
		t.Errorf("PointCount = %d, want 3", layer.Store().PointCount())
	}
}

func TestLayerCustomColors(t *testing.T) {
	layer := NewLayer(100, 100,
		WithPointColor(Color{R: 1}),
		WithFillColor(Color{G: 1}),
	)
	if err := layer.Ingest(fc(pointFeature(0, 0), quadFeature(5, 5, 1))); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	if got := layer.Store().PointVerts()[2]; got != (Color{R: 1}).Pack() {
		t.Errorf("point color = %v, want custom red", got)
	}
	if got := layer.Store().FillVerts()[2]; got != (Color{G: 1}).Pack() {
		t.Errorf("fill color = %v, want custom green", got)
	}
}
