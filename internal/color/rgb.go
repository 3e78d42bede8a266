package color

import (
	"fmt"
	"math"
)

// RGB is a color in the gamma-companded sRGB encoding. Channels are nominally
// in [0, 1].
type RGB struct {
	R, G, B, Alpha float64
}

// srgbToLinear decompands a single sRGB channel. The sign of v is kept so
// values outside [0, 1] survive a round trip.
func srgbToLinear(v float64) float64 {
	abs := math.Abs(v)
	var out float64
	if abs > srgbDecompandThreshold {
		out = math.Pow((abs+0.055)/1.055, 2.4)
	} else {
		out = abs / 12.92
	}
	if v < 0 {
		return -out
	}
	return out
}

// XYZ converts the color to CIE XYZ (D65).
func (c RGB) XYZ() XYZ {
	r := srgbToLinear(c.R)
	g := srgbToLinear(c.G)
	b := srgbToLinear(c.B)
	return XYZ{
		X:     r*0.4124564 + g*0.3575761 + b*0.1804375,
		Y:     r*0.2126729 + g*0.7151522 + b*0.0721750,
		Z:     r*0.0193339 + g*0.1191920 + b*0.9503041,
		Alpha: c.Alpha,
	}
}

// LAB converts the color to CIE LAB via XYZ.
func (c RGB) LAB() LAB {
	return c.XYZ().LAB()
}

// LCH converts the color to LCH via XYZ and LAB.
func (c RGB) LCH() LCH {
	return c.XYZ().LCH()
}

// Lerp interpolates each channel, alpha included, towards other by t.
// t is not clamped.
func (c RGB) Lerp(other RGB, t float64) RGB {
	return RGB{
		R:     lerp(c.R, other.R, t),
		G:     lerp(c.G, other.G, t),
		B:     lerp(c.B, other.B, t),
		Alpha: lerp(c.Alpha, other.Alpha, t),
	}
}

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%.4f, %.4f, %.4f / %g)", c.R, c.G, c.B, c.Alpha)
}
