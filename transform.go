package geolayer

import "math"

// Mat4 is a 4×4 matrix of 16 float32 values in column-major order, ready to
// bind as a shader uniform. Element (row, col) is at index col*4+row.
type Mat4 [16]float32

// Identity4 returns the 4×4 identity matrix.
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// OrthoPixelMatrix returns the orthographic base matrix mapping y-down pixel
// coordinates, with the origin at the top-left of a width×height viewport,
// to clip space. It only depends on the viewport size and is recomputed on
// resize, not per frame.
func OrthoPixelMatrix(width, height int) Mat4 {
	m := Identity4()
	m[0] = 2 / float32(width)
	m[5] = -2 / float32(height)
	m[12] = -1
	m[13] = 1
	return m
}

// ViewMatrix computes the per-frame view transform: the base matrix with a
// uniform scale of 2^zoom applied to the x/y basis vectors, then a
// translation by the negated viewport top-left, expressed in the scaled
// basis. At zoom 0 with a zero offset the base matrix is returned unchanged.
//
// zoom and the offset are deliberately not cached; callers recompute the
// matrix every frame from the current view state.
func ViewMatrix(base Mat4, zoom, topLeftX, topLeftY float64) Mat4 {
	s := float32(math.Pow(2, zoom))
	m := base
	for r := 0; r < 4; r++ {
		m[r] *= s   // x basis column
		m[4+r] *= s // y basis column
	}
	tx, ty := float32(-topLeftX), float32(-topLeftY)
	for r := 0; r < 4; r++ {
		m[12+r] += m[r]*tx + m[4+r]*ty
	}
	return m
}
