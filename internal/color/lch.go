package color

import (
	"fmt"
	"math"
)

// LCH is the polar form of LAB: lightness, chroma and hue in degrees.
type LCH struct {
	L, C, H, Alpha float64
}

// LAB converts the color back to Cartesian LAB.
func (c LCH) LAB() LAB {
	rad := c.H / radToDeg
	return LAB{
		L:     c.L,
		A:     math.Cos(rad) * c.C,
		B:     math.Sin(rad) * c.C,
		Alpha: c.Alpha,
	}
}

// XYZ converts the color to CIE XYZ via LAB.
func (c LCH) XYZ() XYZ {
	return c.LAB().XYZ()
}

// RGB converts the color to sRGB via LAB and XYZ.
func (c LCH) RGB() RGB {
	return c.XYZ().RGB()
}

// Lerp interpolates towards other by t. L, C and alpha are linear. When the
// hues are more than 180 degrees apart the hue travels the wraparound path and
// is reduced modulo 360; otherwise it moves directly and is left unwrapped.
func (c LCH) Lerp(other LCH, t float64) LCH {
	diffH := other.H - c.H
	var h float64
	if math.Abs(diffH) > 180 {
		h = math.Mod(c.H+(diffH+360)*t, 360)
	} else {
		h = c.H + diffH*t
	}
	return LCH{
		L:     lerp(c.L, other.L, t),
		C:     lerp(c.C, other.C, t),
		H:     h,
		Alpha: lerp(c.Alpha, other.Alpha, t),
	}
}

func (c LCH) String() string {
	return fmt.Sprintf("lch(%.2f, %.2f, %.2f / %g)", c.L, c.C, c.H, c.Alpha)
}
