// Package color implements conversions between sRGB, CIE XYZ, CIE LAB and
// cylindrical LCH, plus linear interpolation inside each space.
//
// All four types are plain values. Conversions and interpolations return new
// values and never fail; inputs outside the nominal ranges are carried through
// the math rather than clamped.
package color

import "math"

const radToDeg = 180 / math.Pi

// Reference white (D65) used for XYZ <-> LAB.
const (
	whiteX = 0.95047
	whiteY = 1.0
	whiteZ = 1.08883
)

// LAB companding constants.
const (
	labEpsilon = 0.008856
	labKappa   = 7.787036  // linear-segment slope
	labOffset  = 0.1379310 // 16/116
)

// sRGB companding thresholds.
const (
	srgbDecompandThreshold = 0.04045
	srgbCompandThreshold   = 0.0031308
)

// WhiteD65 is the D65 reference white in XYZ.
var WhiteD65 = XYZ{X: whiteX, Y: whiteY, Z: whiteZ, Alpha: 1}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
