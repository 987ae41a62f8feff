package geolayer

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func TestPickIndex(t *testing.T) {
	idx := NewPickIndex()

	quad := geojson.NewFeature(orb.Polygon{{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}})
	quad.Properties = geojson.Properties{"name": "quad"}
	pt := geojson.NewFeature(orb.Point{5, 5})
	pt.Properties = geojson.Properties{"name": "pt"}
	far := geojson.NewFeature(orb.Point{100, 50})
	far.Properties = geojson.Properties{"name": "far"}

	idx.Insert(quad)
	idx.Insert(pt)
	idx.Insert(far)

	if idx.Len() != 3 {
		t.Fatalf("Len = %d, want 3", idx.Len())
	}

	names := func(fs []*geojson.Feature) map[string]bool {
		m := map[string]bool{}
		for _, f := range fs {
			m[f.Properties["name"].(string)] = true
		}
		return m
	}

	// Inside the quad and on the point.
	got := names(idx.At(5, 5))
	if !got["quad"] || !got["pt"] || got["far"] {
		t.Errorf("At(5,5) = %v, want quad and pt", got)
	}

	// Inside the quad only.
	got = names(idx.At(1, 9))
	if !got["quad"] || len(got) != 1 {
		t.Errorf("At(1,9) = %v, want quad only", got)
	}

	// Outside everything.
	if hits := idx.At(-20, -20); len(hits) != 0 {
		t.Errorf("At(-20,-20) returned %d features, want 0", len(hits))
	}

	// Degenerate box: exact point coordinate hits.
	got = names(idx.At(100, 50))
	if !got["far"] {
		t.Errorf("At(100,50) = %v, want far", got)
	}
}

func TestPickAfterIngest(t *testing.T) {
	store := NewBufferStore()
	in := NewIngestor(store)
	in.Picks = NewPickIndex()

	if err := in.Ingest(fc(quadFeature(20, 30, 2), pointFeature(-40, -10))); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if in.Picks.Len() != 2 {
		t.Fatalf("Picks.Len = %d, want 2", in.Picks.Len())
	}

	hits := in.Picks.At(21, 31)
	if len(hits) != 1 {
		t.Fatalf("At(21,31) returned %d features, want 1", len(hits))
	}
	// The picked feature carries the stamped buffer range.
	start, okS := hits[0].Properties[PropIndexStart]
	end, okE := hits[0].Properties[PropIndexEnd]
	if !okS || !okE {
		t.Fatalf("picked feature missing index range: %v", hits[0].Properties)
	}
	if start != 0 || end != 2 {
		t.Errorf("index range = [%v, %v), want [0, 2)", start, end)
	}
}
