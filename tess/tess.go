// Package tess triangulates polygon contours into independent triangle
// lists suitable for GPU fill rendering.
//
// A polygon-with-holes is fed contour by contour:
//
//	t := tess.New()
//	t.BeginPolygon()
//	t.BeginContour()
//	t.Vertex(x, y) // repeated
//	t.EndContour()
//	// ... more contours (holes) ...
//	out, err := t.EndPolygon()
//
// The output is a flat sequence of (x, y) pairs, three vertices per
// triangle, with no ordering guarantee beyond forming a valid independent
// triangle list. Edges that cross each other are split at the crossing and
// a new vertex is synthesized at the combined position; callers tag
// synthesized vertices with the same fixed color as the rest of the fill
// (no interpolation from the parent edges).
package tess

// Code identifies the failure reported by the triangulation algorithm.
type Code int

const (
	// CodeOrder reports calls made out of sequence, such as Vertex outside
	// a BeginContour/EndContour bracket.
	CodeOrder Code = iota + 1

	// CodeEmptyPolygon reports a polygon with no usable contours.
	CodeEmptyPolygon

	// CodeDegenerateContour reports a contour with fewer than three
	// distinct vertices.
	CodeDegenerateContour

	// CodeNoBridge reports a hole that could not be connected to its outer
	// ring without crossing existing edges.
	CodeNoBridge

	// CodeDegenerate reports input whose triangulation produced no
	// triangles at all.
	CodeDegenerate

	// CodeNonTriangleOutput reports an internal consistency violation: the
	// algorithm emitted something other than whole triangles. The polygon
	// pipeline always requests triangle output, so this should not occur.
	CodeNonTriangleOutput
)

// String returns a short description of the code.
func (c Code) String() string {
	switch c {
	case CodeOrder:
		return "calls out of order"
	case CodeEmptyPolygon:
		return "empty polygon"
	case CodeDegenerateContour:
		return "degenerate contour"
	case CodeNoBridge:
		return "hole cannot reach outer ring"
	case CodeDegenerate:
		return "degenerate input"
	case CodeNonTriangleOutput:
		return "non-triangle output"
	default:
		return "unknown"
	}
}

// Error is a fatal tesselation failure. The caller is expected to drop the
// offending polygon and carry on; one malformed polygon must never abort a
// whole feature load.
type Error struct {
	Code Code
}

func (e *Error) Error() string {
	return "tess: " + e.Code.String()
}

type point struct {
	x, y float64
}

// Tesselator accumulates contours for one polygon-with-holes and
// triangulates them on EndPolygon. The zero value is not ready for use;
// call New. A Tesselator may be reused for subsequent polygons after
// EndPolygon returns.
//
// The first contour of a polygon is the outer ring; any further contours
// are holes.
type Tesselator struct {
	contours  [][]point
	cur       []point
	inPolygon bool
	inContour bool
	err       *Error
}

// New creates a Tesselator.
func New() *Tesselator {
	return &Tesselator{}
}

// BeginPolygon starts a new polygon, discarding any state left over from a
// previous one.
func (t *Tesselator) BeginPolygon() {
	t.contours = t.contours[:0]
	t.cur = nil
	t.inPolygon = true
	t.inContour = false
	t.err = nil
}

// BeginContour starts a new contour within the current polygon.
func (t *Tesselator) BeginContour() {
	if !t.inPolygon || t.inContour {
		t.fail(CodeOrder)
		return
	}
	t.inContour = true
	t.cur = nil
}

// Vertex appends a vertex to the current contour.
func (t *Tesselator) Vertex(x, y float64) {
	if !t.inContour {
		t.fail(CodeOrder)
		return
	}
	t.cur = append(t.cur, point{x, y})
}

// EndContour closes the current contour.
func (t *Tesselator) EndContour() {
	if !t.inContour {
		t.fail(CodeOrder)
		return
	}
	t.inContour = false
	t.contours = append(t.contours, t.cur)
	t.cur = nil
}

// EndPolygon triangulates the accumulated contours and returns the flat
// triangle vertex sequence. On failure it returns a *Error carrying the
// algorithm's code.
func (t *Tesselator) EndPolygon() ([]float64, error) {
	defer func() {
		t.inPolygon = false
		t.inContour = false
	}()
	if t.err != nil {
		return nil, t.err
	}
	if !t.inPolygon {
		return nil, &Error{Code: CodeOrder}
	}

	contours := make([][]point, 0, len(t.contours))
	for _, c := range t.contours {
		c = sanitizeContour(c)
		if c == nil {
			continue
		}
		if len(c) < 3 {
			return nil, &Error{Code: CodeDegenerateContour}
		}
		contours = append(contours, c)
	}
	if len(contours) == 0 {
		return nil, &Error{Code: CodeEmptyPolygon}
	}

	out, err := triangulate(contours)
	if err != nil {
		return nil, err
	}
	if len(out)%6 != 0 {
		return nil, &Error{Code: CodeNonTriangleOutput}
	}
	return out, nil
}

// fail records the first misuse error; it is reported by EndPolygon.
func (t *Tesselator) fail(code Code) {
	if t.err == nil {
		t.err = &Error{Code: code}
	}
}

// sanitizeContour drops consecutive duplicate vertices and the closing
// vertex when it repeats the first. A contour reduced to nothing returns
// nil; fewer than three distinct vertices is left for the caller to reject.
func sanitizeContour(c []point) []point {
	out := make([]point, 0, len(c))
	for _, p := range c {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[len(out)-1] == out[0] {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
