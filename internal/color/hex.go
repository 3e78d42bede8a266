package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa" (the # is optional) into
// an RGB color. Alpha defaults to 1.
func ParseHex(s string) (RGB, error) {
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}) + "ff"
	case 6:
		hex += "ff"
	case 8:
	default:
		return RGB{}, fmt.Errorf("invalid hex color %q: must be 3, 6 or 8 hex digits", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return RGB{
		R:     float64(v>>24&0xff) / 255,
		G:     float64(v>>16&0xff) / 255,
		B:     float64(v>>8&0xff) / 255,
		Alpha: float64(v&0xff) / 255,
	}, nil
}

// to8 quantises a channel for encoding. Values outside [0, 1] are clamped
// here only; the color itself is never modified.
func to8(v float64) uint8 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// Bytes returns the channels quantised to 8 bits.
func (c RGB) Bytes() (r, g, b, a uint8) {
	return to8(c.R), to8(c.G), to8(c.B), to8(c.Alpha)
}

// Hex returns the color as "#rrggbb". Alpha is dropped.
func (c RGB) Hex() string {
	return "#" + c.HexBare()
}

// HexBare returns the color as "rrggbb".
func (c RGB) HexBare() string {
	r, g, b, _ := c.Bytes()
	return fmt.Sprintf("%02x%02x%02x", r, g, b)
}

// HexAlpha returns the color as "#rrggbbaa".
func (c RGB) HexAlpha() string {
	r, g, b, a := c.Bytes()
	return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, a)
}

// CSS returns "rgb(r, g, b)" for opaque colors and "rgba(r, g, b, a)"
// otherwise.
func (c RGB) CSS() string {
	r, g, b, a := c.Bytes()
	if a == 255 {
		return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(float64(a)/255, 'f', 3, 64))
}
