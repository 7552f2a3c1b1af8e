package quake

import "strconv"

// bandStep is how much green and blue drop per magnitude band.
const bandStep = 30

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

// White is the color of every magnitude below 1.
var White = Color{R: 255, G: 255, B: 255}

// String formats the color as a CSS rgb() value without spaces.
func (c Color) String() string {
	buf := make([]byte, 0, len("rgb(255,255,255)"))
	buf = append(buf, "rgb("...)
	buf = strconv.AppendUint(buf, uint64(c.R), 10)
	buf = append(buf, ',')
	buf = strconv.AppendUint(buf, uint64(c.G), 10)
	buf = append(buf, ',')
	buf = strconv.AppendUint(buf, uint64(c.B), 10)
	buf = append(buf, ')')

	return string(buf)
}

// MarshalText lets colors travel as their CSS string.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// bandColor returns the red shade of band k, clamped to pure red.
func bandColor(k int) Color {
	v := 255 - bandStep*k
	if v < 0 {
		v = 0
	}

	return Color{R: 255, G: uint8(v), B: uint8(v)}
}

// ColorOf maps a magnitude to its band color. Thresholds are checked from the
// lowest up and the first match wins, so negative magnitudes land in the white band.
// Magnitudes of 9 and above are pure red.
func ColorOf(m float64) Color {
	for k := 1; k <= 9; k++ {
		if m < float64(k) {
			return bandColor(k - 1)
		}
	}

	return bandColor(9)
}
