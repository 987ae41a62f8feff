package tess

import (
	"math"
	"sort"
)

// epsArea is the tolerance for cross-product sign tests. Coordinates are
// world pixels, so anything below this is treated as collinear.
const epsArea = 1e-12

// maxSplits bounds intersection resolution so that pathological input with
// float jitter cannot loop forever.
const maxSplits = 1 << 12

// triangulate converts sanitized contours (first outer, rest holes) into a
// flat triangle list. Self-intersecting contours are first split into
// simple loops at synthesized crossing vertices; every resulting region is
// filled, matching odd-winding semantics for figure-eight style input.
func triangulate(contours [][]point) ([]float64, error) {
	var outers, holes [][]point
	for ci, c := range contours {
		ring := resolveIntersections(c)
		for _, loop := range splitLoops(ring) {
			if ci == 0 {
				outers = append(outers, loop)
			} else {
				holes = append(holes, loop)
			}
		}
	}
	if len(outers) == 0 {
		return nil, &Error{Code: CodeDegenerate}
	}

	// Assign each hole to the outer loop that contains it. A hole outside
	// every outer loop is promoted to an outer region of its own.
	holesFor := make([][][]point, len(outers))
	for _, h := range holes {
		placed := false
		for i, o := range outers {
			if pointInRing(h[0], o) {
				holesFor[i] = append(holesFor[i], h)
				placed = true
				break
			}
		}
		if !placed {
			outers = append(outers, h)
			holesFor = append(holesFor, nil)
		}
	}

	var out []float64
	for i, o := range outers {
		ring, err := bridgeHoles(o, holesFor[i])
		if err != nil {
			return nil, err
		}
		out = earClip(ring, out)
	}
	if len(out) == 0 {
		return nil, &Error{Code: CodeDegenerate}
	}
	return out, nil
}

// resolveIntersections splits edges of the ring wherever two non-adjacent
// edges properly cross, inserting the synthesized crossing vertex into both
// edges. The returned ring visits each crossing point twice.
func resolveIntersections(ring []point) []point {
	splits := 0
	for splits < maxSplits {
		n := len(ring)
		found := false
	scan:
		for i := 0; i < n-1; i++ {
			for j := i + 1; j < n; j++ {
				// Skip adjacent edges (shared endpoint, including the wrap).
				if j == i+1 || (i == 0 && j == n-1) {
					continue
				}
				p, ok := segCross(ring[i], ring[(i+1)%n], ring[j], ring[(j+1)%n])
				if !ok {
					continue
				}
				next := make([]point, 0, n+2)
				next = append(next, ring[:i+1]...)
				next = append(next, p)
				next = append(next, ring[i+1:j+1]...)
				next = append(next, p)
				next = append(next, ring[j+1:]...)
				ring = next
				splits++
				found = true
				break scan
			}
		}
		if !found {
			break
		}
	}
	return ring
}

// segCross returns the interior crossing point of segments ab and cd, if
// any. Touching at endpoints does not count.
func segCross(a, b, c, d point) (point, bool) {
	rx, ry := b.x-a.x, b.y-a.y
	sx, sy := d.x-c.x, d.y-c.y
	den := rx*sy - ry*sx
	if math.Abs(den) < epsArea {
		return point{}, false
	}
	qpx, qpy := c.x-a.x, c.y-a.y
	t := (qpx*sy - qpy*sx) / den
	u := (qpx*ry - qpy*rx) / den
	const e = 1e-9
	if t <= e || t >= 1-e || u <= e || u >= 1-e {
		return point{}, false
	}
	return point{a.x + t*rx, a.y + t*ry}, true
}

// splitLoops decomposes a ring containing repeated vertices (from
// intersection splitting) into simple loops. Loops with fewer than three
// vertices are dropped.
func splitLoops(ring []point) [][]point {
	var loops [][]point
	for {
		seen := make(map[point]int, len(ring))
		split := false
		for k, p := range ring {
			f, ok := seen[p]
			if !ok {
				seen[p] = k
				continue
			}
			loop := make([]point, k-f)
			copy(loop, ring[f:k])
			if len(loop) >= 3 {
				loops = append(loops, loop)
			}
			rest := make([]point, 0, len(ring)-(k-f))
			rest = append(rest, ring[:f]...)
			rest = append(rest, ring[k:]...)
			ring = rest
			split = true
			break
		}
		if !split {
			break
		}
	}
	if len(ring) >= 3 {
		loops = append(loops, ring)
	}
	return loops
}

// bridgeHoles connects every hole to the outer ring through a pair of
// mutually visible vertices, producing one simple ring that ear clipping
// can consume. The outer ring is oriented counter-clockwise and holes
// clockwise before splicing.
func bridgeHoles(outer []point, holes [][]point) ([]point, *Error) {
	ring := append([]point(nil), outer...)
	if signedArea(ring) < 0 {
		reverse(ring)
	}
	if len(holes) == 0 {
		return ring, nil
	}

	holes = append([][]point(nil), holes...)
	for i := range holes {
		h := append([]point(nil), holes[i]...)
		if signedArea(h) > 0 {
			reverse(h)
		}
		holes[i] = h
	}
	// Merge left-to-right so earlier bridges cannot occlude later holes.
	sort.Slice(holes, func(i, j int) bool {
		return holes[i][leftmost(holes[i])].x < holes[j][leftmost(holes[j])].x
	})

	for hi, h := range holes {
		m := leftmost(h)
		blockers := append([][]point{h}, holes[hi+1:]...)
		b, ok := visibleVertex(ring, h[m], blockers)
		if !ok {
			return nil, &Error{Code: CodeNoBridge}
		}
		merged := make([]point, 0, len(ring)+len(h)+2)
		merged = append(merged, ring[:b+1]...)
		merged = append(merged, h[m:]...)
		merged = append(merged, h[:m+1]...)
		merged = append(merged, ring[b:]...)
		ring = merged
	}
	return ring, nil
}

// visibleVertex finds a vertex of ring that the point m can be joined to
// without properly crossing ring edges or the edges of any unmerged hole.
// Candidates are tried nearest first.
func visibleVertex(ring []point, m point, pending [][]point) (int, bool) {
	order := make([]int, len(ring))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return distSq(ring[order[a]], m) < distSq(ring[order[b]], m)
	})
	for _, b := range order {
		if crossesRing(m, ring[b], ring) {
			continue
		}
		blocked := false
		for _, h := range pending {
			if crossesRing(m, ring[b], h) {
				blocked = true
				break
			}
		}
		if !blocked {
			return b, true
		}
	}
	return 0, false
}

// crossesRing reports whether segment ab properly crosses any edge of the
// ring. Contacts at edge endpoints do not count, which permits bridges that
// start or end on ring vertices.
func crossesRing(a, b point, ring []point) bool {
	n := len(ring)
	for i := 0; i < n; i++ {
		if _, ok := segCross(a, b, ring[i], ring[(i+1)%n]); ok {
			return true
		}
	}
	return false
}

// earClip triangulates a simple (possibly bridged) ring and appends the
// resulting triangles to out. The ring is oriented counter-clockwise first.
// When no ear can be clipped, the flattest remaining vertex is dropped so
// progress is always made; degenerate slivers simply emit nothing.
func earClip(ring []point, out []float64) []float64 {
	poly := append([]point(nil), ring...)
	if signedArea(poly) < 0 {
		reverse(poly)
	}
	idx := make([]int, len(poly))
	for i := range idx {
		idx[i] = i
	}

	for len(idx) > 3 {
		clipped := false
		for k := 0; k < len(idx); k++ {
			a := poly[idx[(k-1+len(idx))%len(idx)]]
			b := poly[idx[k]]
			c := poly[idx[(k+1)%len(idx)]]
			if cross(a, b, c) <= epsArea {
				continue // reflex or collinear corner
			}
			if earBlocked(poly, idx, k, a, b, c) {
				continue
			}
			out = append(out, a.x, a.y, b.x, b.y, c.x, c.y)
			idx = append(idx[:k], idx[k+1:]...)
			clipped = true
			break
		}
		if !clipped {
			f := flattest(poly, idx)
			idx = append(idx[:f], idx[f+1:]...)
		}
	}
	if len(idx) == 3 {
		a, b, c := poly[idx[0]], poly[idx[1]], poly[idx[2]]
		if math.Abs(cross(a, b, c)) > epsArea {
			out = append(out, a.x, a.y, b.x, b.y, c.x, c.y)
		}
	}
	return out
}

// earBlocked reports whether any remaining vertex lies inside (or on the
// boundary of) the candidate ear abc. Vertices coincident with an ear
// corner are ignored; bridged rings repeat their bridge endpoints.
func earBlocked(poly []point, idx []int, k int, a, b, c point) bool {
	prev := (k - 1 + len(idx)) % len(idx)
	next := (k + 1) % len(idx)
	for r := 0; r < len(idx); r++ {
		if r == prev || r == k || r == next {
			continue
		}
		q := poly[idx[r]]
		if q == a || q == b || q == c {
			continue
		}
		if cross(a, b, q) >= -epsArea && cross(b, c, q) >= -epsArea && cross(c, a, q) >= -epsArea {
			return true
		}
	}
	return false
}

// flattest returns the list position of the remaining vertex with the
// smallest corner area, the safest one to discard when clipping stalls.
func flattest(poly []point, idx []int) int {
	best, bestArea := 0, math.Inf(1)
	for k := range idx {
		a := poly[idx[(k-1+len(idx))%len(idx)]]
		b := poly[idx[k]]
		c := poly[idx[(k+1)%len(idx)]]
		if ar := math.Abs(cross(a, b, c)); ar < bestArea {
			best, bestArea = k, ar
		}
	}
	return best
}

// cross returns the z component of (b-a)×(c-b): positive for a left turn
// in a counter-clockwise ring.
func cross(a, b, c point) float64 {
	return (b.x-a.x)*(c.y-b.y) - (b.y-a.y)*(c.x-b.x)
}

// signedArea returns twice the signed area of the ring, positive for
// counter-clockwise winding in a y-up sense.
func signedArea(ring []point) float64 {
	var s float64
	for i, p := range ring {
		q := ring[(i+1)%len(ring)]
		s += p.x*q.y - q.x*p.y
	}
	return s
}

func reverse(ring []point) {
	for i, j := 0, len(ring)-1; i < j; i, j = i+1, j-1 {
		ring[i], ring[j] = ring[j], ring[i]
	}
}

func leftmost(ring []point) int {
	best := 0
	for i, p := range ring {
		if p.x < ring[best].x {
			best = i
		}
	}
	return best
}

func distSq(a, b point) float64 {
	dx, dy := a.x-b.x, a.y-b.y
	return dx*dx + dy*dy
}

// pointInRing reports whether p is inside the ring, by ray casting toward
// positive x. Boundary behavior is unspecified.
func pointInRing(p point, ring []point) bool {
	inside := false
	n := len(ring)
	for i := 0; i < n; i++ {
		a, b := ring[i], ring[(i+1)%n]
		if (a.y > p.y) != (b.y > p.y) {
			xCross := a.x + (p.y-a.y)/(b.y-a.y)*(b.x-a.x)
			if p.x < xCross {
				inside = !inside
			}
		}
	}
	return inside
}
