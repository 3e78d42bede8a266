package color

import (
	"image"
	stdcolor "image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// FromColor extracts an RGB value from a host color. It reports false when
// the host color is not defined in a device RGB model, for example gray,
// CMYK, YCbCr or a pattern-like implementation whose RGBA method is only an
// approximation.
func FromColor(c stdcolor.Color) (RGB, bool) {
	switch v := c.(type) {
	case RGB:
		return v, true
	case stdcolor.NRGBA:
		return RGB{
			R:     float64(v.R) / 0xff,
			G:     float64(v.G) / 0xff,
			B:     float64(v.B) / 0xff,
			Alpha: float64(v.A) / 0xff,
		}, true
	case stdcolor.NRGBA64:
		return RGB{
			R:     float64(v.R) / 0xffff,
			G:     float64(v.G) / 0xffff,
			B:     float64(v.B) / 0xffff,
			Alpha: float64(v.A) / 0xffff,
		}, true
	case stdcolor.RGBA:
		return unpremultiply(float64(v.R), float64(v.G), float64(v.B), float64(v.A), 0xff), true
	case stdcolor.RGBA64:
		return unpremultiply(float64(v.R), float64(v.G), float64(v.B), float64(v.A), 0xffff), true
	case colorful.Color:
		return RGB{R: v.R, G: v.G, B: v.B, Alpha: 1}, true
	case *image.Uniform:
		if v == nil || v.C == nil {
			return RGB{}, false
		}
		return FromColor(v.C)
	default:
		return RGB{}, false
	}
}

func unpremultiply(r, g, b, a, full float64) RGB {
	if a == 0 {
		return RGB{}
	}
	return RGB{R: r / a, G: g / a, B: b / a, Alpha: a / full}
}

// RGBA implements image/color.Color. Channels are clamped to [0, 1] and
// alpha-premultiplied, as that interface requires.
func (c RGB) RGBA() (r, g, b, a uint32) {
	alpha := clampUnit(c.Alpha)
	a = uint32(alpha*0xffff + 0.5)
	r = uint32(clampUnit(c.R)*alpha*0xffff + 0.5)
	g = uint32(clampUnit(c.G)*alpha*0xffff + 0.5)
	b = uint32(clampUnit(c.B)*alpha*0xffff + 0.5)
	return r, g, b, a
}

// NRGBA quantises the color to 8-bit non-premultiplied form.
func (c RGB) NRGBA() stdcolor.NRGBA {
	r, g, b, a := c.Bytes()
	return stdcolor.NRGBA{R: r, G: g, B: b, A: a}
}

func clampUnit(v float64) float64 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
