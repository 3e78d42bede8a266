package color

import (
	"fmt"
	"math"
)

// LAB is a color in CIE L*a*b* (D65). L is in [0, 100]; A and B are nominally
// in [-128, 128].
type LAB struct {
	L, A, B, Alpha float64
}

// labDecompand inverts labCompand.
func labDecompand(v float64) float64 {
	v3 := v * v * v
	if v3 > labEpsilon {
		return v3
	}
	return (v - labOffset) / labKappa
}

// XYZ converts the color to CIE XYZ.
func (c LAB) XYZ() XYZ {
	fy := (c.L + 16) / 116
	fx := fy + c.A/500
	fz := fy - c.B/200
	return XYZ{
		X:     labDecompand(fx) * whiteX,
		Y:     labDecompand(fy) * whiteY,
		Z:     labDecompand(fz) * whiteZ,
		Alpha: c.Alpha,
	}
}

// LCH converts the color to polar form. The hue is in degrees; negative
// angles from atan2 are shifted by 360 so H lands in [0, 360].
func (c LAB) LCH() LCH {
	chroma := math.Sqrt(c.A*c.A + c.B*c.B)
	angle := math.Atan2(c.B, c.A) * radToDeg
	h := angle
	if angle < 0 {
		// An angle smaller in magnitude than half an ulp of 360 rounds to
		// exactly 360, the same hue as 0.
		h = angle + 360
	}
	return LCH{L: c.L, C: chroma, H: h, Alpha: c.Alpha}
}

// RGB converts the color to sRGB via XYZ.
func (c LAB) RGB() RGB {
	return c.XYZ().RGB()
}

// Lerp interpolates L, A, B and alpha towards other by t.
func (c LAB) Lerp(other LAB, t float64) LAB {
	return LAB{
		L:     lerp(c.L, other.L, t),
		A:     lerp(c.A, other.A, t),
		B:     lerp(c.B, other.B, t),
		Alpha: lerp(c.Alpha, other.Alpha, t),
	}
}

func (c LAB) String() string {
	return fmt.Sprintf("lab(%.2f, %.2f, %.2f / %g)", c.L, c.A, c.B, c.Alpha)
}
