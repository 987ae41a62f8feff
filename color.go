package geolayer

import "math"

// Color represents an RGB color with components in the range [0, 1].
// Vertex colors are carried in the buffers as a single packed scalar; see
// [Color.Pack].
type Color struct {
	R, G, B float64
}

// RGB creates a color from RGB components.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// packLevels is the number of quantization levels per channel. Each channel
// is quantized to round(c*128), giving values 0..128 inclusive, and the
// three channels are combined as a base-129 mixed-radix number.
const packLevels = 129

// Pack encodes the color as a single float32 scalar:
//
//	round(r*128) + round(b*128)*129 + round(g*128)*129²
//
// The channel order (red, then blue, then green) is a wire contract with the
// unpacking performed by the downstream shader and must be preserved
// bit-for-bit. The largest packed value (2,146,688) is exactly representable
// in a float32 mantissa, so the encoding is lossless over the quantization
// grid.
func (c Color) Pack() float32 {
	qr := math.Round(c.R * 128)
	qg := math.Round(c.G * 128)
	qb := math.Round(c.B * 128)
	return float32(qr + qb*packLevels + qg*packLevels*packLevels)
}

// Hex creates a color from a hex string.
// Supports formats: "RGB" and "RRGGBB", with or without a leading '#'.
// Invalid input yields black.
func Hex(hex string) Color {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b uint32

	switch len(hex) {
	case 3: // RGB
		parseHex(hex[0:1], &r)
		parseHex(hex[1:2], &g)
		parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 6: // RRGGBB
		parseHex(hex[0:2], &r)
		parseHex(hex[2:4], &g)
		parseHex(hex[4:6], &b)
	default:
		return Color{}
	}

	return Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}
}

// parseHex parses a hex substring into v. Invalid characters leave v at 0.
func parseHex(s string, v *uint32) {
	*v = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		var d uint32
		switch {
		case c >= '0' && c <= '9':
			d = uint32(c - '0')
		case c >= 'a' && c <= 'f':
			d = uint32(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = uint32(c-'A') + 10
		default:
			*v = 0
			return
		}
		*v = *v<<4 | d
	}
}
