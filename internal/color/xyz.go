package color

import (
	"fmt"
	"math"
)

// XYZ is a color in CIE XYZ tristimulus space relative to D65. It is the hub
// every conversion goes through.
type XYZ struct {
	X, Y, Z, Alpha float64
}

// linearToSRGB compands a single linear channel, keeping the sign of v.
func linearToSRGB(v float64) float64 {
	abs := math.Abs(v)
	var out float64
	if abs > srgbCompandThreshold {
		out = 1.055*math.Pow(abs, 1/2.4) - 0.055
	} else {
		out = abs * 12.92
	}
	if v < 0 {
		return -out
	}
	return out
}

// labCompand maps a white-normalised tristimulus ratio onto the LAB axes.
func labCompand(v float64) float64 {
	if v > labEpsilon {
		return math.Pow(v, 1.0/3.0)
	}
	return labKappa*v + labOffset
}

// RGB converts the color to sRGB. Out-of-gamut results are not clamped.
func (c XYZ) RGB() RGB {
	r := c.X*3.2404542 + c.Y*-1.5371385 + c.Z*-0.4985314
	g := c.X*-0.9692660 + c.Y*1.8760108 + c.Z*0.0415560
	b := c.X*0.0556434 + c.Y*-0.2040259 + c.Z*1.0572252
	return RGB{
		R:     linearToSRGB(r),
		G:     linearToSRGB(g),
		B:     linearToSRGB(b),
		Alpha: c.Alpha,
	}
}

// LAB converts the color to CIE LAB.
func (c XYZ) LAB() LAB {
	fx := labCompand(c.X / whiteX)
	fy := labCompand(c.Y / whiteY)
	fz := labCompand(c.Z / whiteZ)
	return LAB{
		L:     116*fy - 16,
		A:     500 * (fx - fy),
		B:     200 * (fy - fz),
		Alpha: c.Alpha,
	}
}

// LCH converts the color to LCH via LAB.
func (c XYZ) LCH() LCH {
	return c.LAB().LCH()
}

// Lerp interpolates each channel, alpha included, towards other by t.
func (c XYZ) Lerp(other XYZ, t float64) XYZ {
	return XYZ{
		X:     lerp(c.X, other.X, t),
		Y:     lerp(c.Y, other.Y, t),
		Z:     lerp(c.Z, other.Z, t),
		Alpha: lerp(c.Alpha, other.Alpha, t),
	}
}

func (c XYZ) String() string {
	return fmt.Sprintf("xyz(%.5f, %.5f, %.5f / %g)", c.X, c.Y, c.Z, c.Alpha)
}
