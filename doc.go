// Package geolayer converts geographic vector data into GPU-renderable
// vertex buffers that stay synchronized with a map viewport.
//
// # Overview
//
// geolayer ingests GeoJSON features (Point, Polygon, MultiPolygon), projects
// them to Web-Mercator world pixels, tesselates polygons into triangle lists,
// and maintains three append-only vertex buffers (points, polygon fills,
// polygon borders) ready for GPU upload. Each vertex is a flat
// (x, y, packedColor) triple; per-feature index ranges are stamped back onto
// the feature so callers can recolor individual features later.
//
// # Quick Start
//
//	import "github.com/gogpu/geolayer"
//
//	layer := geolayer.NewLayer(800, 600)
//	if err := layer.Ingest(payload); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Each frame:
//	m := layer.FrameTransform() // bind as the shader uniform
//	if layer.Store().TakeDirty(geolayer.BufferPolygons) {
//	    // re-upload fill and border buffers
//	}
//
// The host widget providing pan/zoom events, the GPU draw calls, and the
// shader source are external collaborators. The upload side is modeled by
// the gpucore subpackage, with a gogpu/wgpu implementation in backend/native.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Layer, BufferStore, Color, Mat4, projection functions
//   - tess: polygon tesselation with self-intersection handling
//   - gpucore: GPU buffer abstraction and dirty-driven upload
//   - backend/native: Pure Go GPU device via gogpu/wgpu
package geolayer
