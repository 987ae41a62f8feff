package geolayer

import (
	"math"
	"testing"
)

// unpackQuantized recovers the quantized channels from a packed scalar via
// the mixed-radix decomposition the downstream shader performs.
func unpackQuantized(packed float32) (qr, qg, qb int) {
	v := int(packed)
	qr = v % packLevels
	v /= packLevels
	qb = v % packLevels
	qg = v / packLevels
	return qr, qg, qb
}

func TestColorPackRoundTrip(t *testing.T) {
	// Every quantized channel combination must survive the pack/unpack
	// round trip exactly. Walking the full 129³ grid is slow, so sample
	// channel values across the whole range including both ends.
	steps := []float64{0, 1.0 / 128, 0.25, 0.5, 63.0 / 128, 0.75, 127.0 / 128, 1}
	for _, r := range steps {
		for _, g := range steps {
			for _, b := range steps {
				packed := Color{R: r, G: g, B: b}.Pack()
				qr, qg, qb := unpackQuantized(packed)
				wr := int(math.Round(r * 128))
				wg := int(math.Round(g * 128))
				wb := int(math.Round(b * 128))
				if qr != wr || qg != wg || qb != wb {
					t.Fatalf("Pack(%v,%v,%v) round trip = (%d,%d,%d), want (%d,%d,%d)",
						r, g, b, qr, qg, qb, wr, wg, wb)
				}
			}
		}
	}
}

func TestColorPackDeterministic(t *testing.T) {
	c := Color{R: 0.3, G: 0.6, B: 0.9}
	if c.Pack() != c.Pack() {
		t.Error("Pack is not deterministic")
	}
}

func TestColorPackChannelOrder(t *testing.T) {
	// The packed scalar is qr + qb*129 + qg*129²; red occupies the lowest
	// digit and green the highest. This ordering is a shader contract.
	tests := []struct {
		name string
		c    Color
		want float32
	}{
		{"black", Color{}, 0},
		{"pure red", Color{R: 1}, 128},
		{"pure blue", Color{B: 1}, 128 * 129},
		{"pure green", Color{G: 1}, 128 * 129 * 129},
		{"white", Color{R: 1, G: 1, B: 1}, 128 + 128*129 + 128*129*129},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Pack(); got != tt.want {
				t.Errorf("Pack() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColorPackInjective(t *testing.T) {
	// Distinct quantized triples must pack to distinct scalars.
	seen := make(map[float32][3]int)
	for qr := 0; qr <= 128; qr += 16 {
		for qg := 0; qg <= 128; qg += 16 {
			for qb := 0; qb <= 128; qb += 16 {
				c := Color{R: float64(qr) / 128, G: float64(qg) / 128, B: float64(qb) / 128}
				p := c.Pack()
				if prev, dup := seen[p]; dup {
					t.Fatalf("collision: %v and (%d,%d,%d) both pack to %v", prev, qr, qg, qb, p)
				}
				seen[p] = [3]int{qr, qg, qb}
			}
		}
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Color
	}{
		{"six digit", "#ff0000", Color{R: 1}},
		{"no hash", "00ff00", Color{G: 1}},
		{"three digit", "#00f", Color{B: 1}},
		{"gray", "#808080", Color{R: 128.0 / 255, G: 128.0 / 255, B: 128.0 / 255}},
		{"invalid length", "#ffff", Color{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hex(tt.in)
			if math.Abs(got.R-tt.want.R) > 1e-9 ||
				math.Abs(got.G-tt.want.G) > 1e-9 ||
				math.Abs(got.B-tt.want.B) > 1e-9 {
				t.Errorf("Hex(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}
