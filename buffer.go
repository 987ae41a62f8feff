package geolayer

// VertexStride is the number of float32 values per vertex record:
// x, y, packedColor.
const VertexStride = 3

// BufferKind names one of the dirty-tracked buffer groups. The polygon fill
// and border buffers always change together during ingestion, so they share
// one flag.
type BufferKind int

const (
	// BufferPoints covers the point vertex buffer.
	BufferPoints BufferKind = iota

	// BufferPolygons covers both the polygon fill and border buffers.
	BufferPolygons
)

// BufferStore owns the three growable vertex buffers produced by ingestion:
// points, polygon fills (independent triangles), and polygon borders (one
// line loop per polygon part). Buffers are append-only; vertices are never
// removed or reordered, which is what keeps the index ranges stamped onto
// features stable for later recoloring.
//
// BufferStore is not safe for concurrent use. All mutation is expected to
// happen on the single event-loop thread that drives ingestion; see the
// package documentation.
type BufferStore struct {
	points  []float32
	fills   []float32
	borders []float32

	// borderCounts records, per polygon part in insertion order, how many
	// border vertices belong to that part. The renderer issues one line-loop
	// draw call per entry.
	borderCounts []int

	dirtyPoints   bool
	dirtyPolygons bool
}

// NewBufferStore creates an empty BufferStore.
func NewBufferStore() *BufferStore {
	return &BufferStore{}
}

// AppendPoint appends one point vertex and returns its insertion index
// (the number of points present before the append).
func (s *BufferStore) AppendPoint(x, y float64, c Color) int {
	idx := s.PointCount()
	s.points = append(s.points, float32(x), float32(y), c.Pack())
	s.dirtyPoints = true
	return idx
}

// AppendFill appends fill-triangle vertices. xy is a flat sequence of
// (x, y) pairs as produced by the tesselator; its length must be a multiple
// of 6 (three vertices per triangle). Every vertex is tagged with the same
// packed color.
func (s *BufferStore) AppendFill(xy []float64, c Color) {
	packed := c.Pack()
	for i := 0; i+1 < len(xy); i += 2 {
		s.fills = append(s.fills, float32(xy[i]), float32(xy[i+1]), packed)
	}
	s.dirtyPolygons = true
}

// AppendBorder appends border vertices for one polygon part and records one
// new border-count entry. xy is a flat sequence of (x, y) pairs covering all
// rings of the part in ring order.
func (s *BufferStore) AppendBorder(xy []float64, c Color) {
	packed := c.Pack()
	for i := 0; i+1 < len(xy); i += 2 {
		s.borders = append(s.borders, float32(xy[i]), float32(xy[i+1]), packed)
	}
	s.borderCounts = append(s.borderCounts, len(xy)/2)
	s.dirtyPolygons = true
}

// RecolorPoint overwrites the packed color of the idx-th point vertex.
// Out-of-range indices are ignored.
func (s *BufferStore) RecolorPoint(idx int, c Color) {
	if idx < 0 || idx >= s.PointCount() {
		return
	}
	s.points[idx*VertexStride+2] = c.Pack()
	s.dirtyPoints = true
}

// RecolorFillRange overwrites the packed color of every fill vertex in the
// half-open triangle range [start, end), using the triangle units stamped
// onto features during ingestion. The range is clamped to the buffer.
func (s *BufferStore) RecolorFillRange(start, end int, c Color) {
	if start < 0 {
		start = 0
	}
	if n := s.FillTriangleCount(); end > n {
		end = n
	}
	if start >= end {
		return
	}
	packed := c.Pack()
	for i := start * 3 * VertexStride; i < end*3*VertexStride; i += VertexStride {
		s.fills[i+2] = packed
	}
	s.dirtyPolygons = true
}

// PointCount returns the number of point vertices.
func (s *BufferStore) PointCount() int { return len(s.points) / VertexStride }

// FillVertexCount returns the number of fill-triangle vertices.
func (s *BufferStore) FillVertexCount() int { return len(s.fills) / VertexStride }

// FillTriangleCount returns the number of fill triangles. Feature index
// ranges are expressed in these units.
func (s *BufferStore) FillTriangleCount() int { return len(s.fills) / (VertexStride * 3) }

// BorderVertexCount returns the number of border vertices across all parts.
func (s *BufferStore) BorderVertexCount() int { return len(s.borders) / VertexStride }

// PointVerts returns the point vertex buffer. The slice is owned by the
// store and must be treated as read-only; it is valid until the next append.
func (s *BufferStore) PointVerts() []float32 { return s.points }

// FillVerts returns the polygon fill vertex buffer (read-only, see PointVerts).
func (s *BufferStore) FillVerts() []float32 { return s.fills }

// BorderVerts returns the polygon border vertex buffer (read-only, see PointVerts).
func (s *BufferStore) BorderVerts() []float32 { return s.borders }

// BorderCounts returns the per-part border vertex counts in insertion order
// (read-only, see PointVerts).
func (s *BufferStore) BorderCounts() []int { return s.borderCounts }

// Dirty reports whether the buffer group has changed since the flag was
// last taken, without clearing it.
func (s *BufferStore) Dirty(kind BufferKind) bool {
	if kind == BufferPoints {
		return s.dirtyPoints
	}
	return s.dirtyPolygons
}

// TakeDirty returns the dirty flag for the buffer group and clears it. The
// upload step calls this once per frame to decide whether to re-upload.
func (s *BufferStore) TakeDirty(kind BufferKind) bool {
	if kind == BufferPoints {
		d := s.dirtyPoints
		s.dirtyPoints = false
		return d
	}
	d := s.dirtyPolygons
	s.dirtyPolygons = false
	return d
}
