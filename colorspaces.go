// Package colorspaces converts colors between sRGB, CIE XYZ, CIE LAB and
// LCH, interpolates between them, and loads gradient files.
//
// All conversions use the D65 reference white and keep values unclamped, so
// out-of-gamut colors survive round trips.
package colorspaces

import (
	"fmt"
	stdcolor "image/color"

	"github.com/jsvensson/colorspaces/internal/color"
	"github.com/jsvensson/colorspaces/internal/engine"
	"github.com/jsvensson/colorspaces/internal/gradient"
	"github.com/jsvensson/colorspaces/internal/parser"
)

type (
	RGB = color.RGB
	XYZ = color.XYZ
	LAB = color.LAB
	LCH = color.LCH

	// Space selects the color space an interpolation runs in.
	Space = gradient.Space

	// Document is a resolved gradient file.
	Document = parser.Document

	// Engine renders templates against a Document.
	Engine = engine.Engine
)

const (
	SpaceLCH = gradient.SpaceLCH
	SpaceLAB = gradient.SpaceLAB
	SpaceXYZ = gradient.SpaceXYZ
	SpaceRGB = gradient.SpaceRGB
)

// WhiteD65 is the reference white used by every conversion.
var WhiteD65 = color.WhiteD65

// FromColor converts a standard library color to RGB. It reports false for
// colors that have no RGB decomposition, such as gray, CMYK or patterns.
func FromColor(c stdcolor.Color) (RGB, bool) {
	return color.FromColor(c)
}

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa", with or without the hash.
func ParseHex(s string) (RGB, error) {
	return color.ParseHex(s)
}

// ParseSpace parses a space name: lch, lab, xyz or rgb.
func ParseSpace(name string) (Space, error) {
	return gradient.ParseSpace(name)
}

// Mix interpolates between two colors inside the given space.
func Mix(from, to RGB, t float64, space Space) RGB {
	return gradient.Mix(from, to, t, space)
}

// Steps returns n evenly spaced colors from one color to another.
func Steps(from, to RGB, n int, space Space) ([]RGB, error) {
	return gradient.Steps(from, to, n, space)
}

// Load parses a gradient file and returns the resolved document.
func Load(path string) (*Document, error) {
	doc, err := parser.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("loading gradients: %w", err)
	}
	return doc, nil
}
