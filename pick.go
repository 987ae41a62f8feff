package geolayer

import (
	"github.com/paulmach/orb/geojson"
	"github.com/tidwall/rtree"
)

// PickIndex is a spatial index over ingested features, used to resolve a
// geographic coordinate (a click, typically) back to the features whose
// geometry bounds contain it. The stamped index metadata on a picked
// feature then addresses the matching buffer range for recoloring.
//
// Like the buffer store it is append-only: features are never removed.
type PickIndex struct {
	tree rtree.RTreeG[*geojson.Feature]
}

// NewPickIndex creates an empty index.
func NewPickIndex() *PickIndex {
	return &PickIndex{}
}

// Insert adds a feature under its geometry's bounding box. Point features
// are stored with a degenerate box.
func (p *PickIndex) Insert(f *geojson.Feature) {
	b := f.Geometry.Bound()
	p.tree.Insert(
		[2]float64{b.Min.Lon(), b.Min.Lat()},
		[2]float64{b.Max.Lon(), b.Max.Lat()},
		f,
	)
}

// At returns all features whose bounding boxes contain the coordinate.
func (p *PickIndex) At(lng, lat float64) []*geojson.Feature {
	var out []*geojson.Feature
	p.tree.Search(
		[2]float64{lng, lat},
		[2]float64{lng, lat},
		func(min, max [2]float64, f *geojson.Feature) bool {
			out = append(out, f)
			return true
		},
	)
	return out
}

// Len returns the number of indexed features.
func (p *PickIndex) Len() int {
	return p.tree.Len()
}
