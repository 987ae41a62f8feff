package geolayer

import "math"

// TileSize is the side length in pixels of one map tile at any zoom level.
// World-pixel coordinates span [0, TileSize) in both axes at zoom 0.
const TileSize = 256

// LngToX maps a longitude in degrees to a world-pixel x coordinate at zoom 0.
//
// The mapping is discontinuous at the antimeridian: longitudes above 180°
// wrap to the negative side of the world plane. Callers must not assume
// continuity across ±180°.
func LngToX(lng float64) float64 {
	if lng <= 180 {
		return TileSize * (lng/360 + 0.5)
	}
	return TileSize * (lng/360 - 0.5)
}

// LatToY maps a latitude in degrees to a spherical-Mercator world-pixel y
// coordinate at zoom 0.
//
// The projection diverges at the poles: latitudes at or beyond +90° return
// -Inf and at or beyond -90° return +Inf. The closed-form math cannot be
// trusted there (float64 tan(π/2) is finite), so the domain edge is checked
// explicitly. An infinity would corrupt any vertex buffer it is written
// into; callers must reject polar latitudes upstream, see [CheckLat].
func LatToY(lat float64) float64 {
	if lat >= 90 {
		return math.Inf(-1)
	}
	if lat <= -90 {
		return math.Inf(1)
	}
	return 128 * (1 + -math.Log(math.Tan((0.25+lat/360)*math.Pi))/math.Pi)
}

// Project maps a geographic coordinate to the world-pixel plane at zoom 0.
func Project(lng, lat float64) (x, y float64) {
	return LngToX(lng), LatToY(lat)
}

// CheckLat reports whether a latitude is inside the Mercator domain.
// It returns ErrProjectionDomain for lat <= -90 or lat >= 90.
func CheckLat(lat float64) error {
	if lat <= -90 || lat >= 90 {
		return ErrProjectionDomain
	}
	return nil
}

// TileAt returns the slippy-map tile column and row containing the given
// geographic coordinate at the given integer zoom level.
func TileAt(lng, lat float64, zoom int) (col, row int) {
	n := float64(uint64(1) << uint(zoom))
	col = int(math.Floor(LngToX(lng) / TileSize * n))
	row = int(math.Floor(LatToY(lat) / TileSize * n))
	return col, row
}
