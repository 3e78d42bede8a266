// Package eval provides the HCL evaluation context shared by the gradient
// file parser and the language server: palette variables plus the color
// functions mix, rgb, xyz, lab and lch.
package eval

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/jsvensson/colorspaces/internal/color"
	"github.com/jsvensson/colorspaces/internal/gradient"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// Encode returns the hex form used for colors inside HCL: "#rrggbb" for
// opaque colors, "#rrggbbaa" otherwise.
func Encode(c color.RGB) string {
	if _, _, _, a := c.Bytes(); a == 0xff {
		return c.Hex()
	}
	return c.HexAlpha()
}

// ResolveColor converts an evaluated HCL value into a color.
func ResolveColor(val cty.Value) (color.RGB, error) {
	if val.IsNull() {
		return color.RGB{}, fmt.Errorf("expected a color, got null")
	}
	if !val.IsKnown() {
		return color.RGB{}, fmt.Errorf("color value is not known")
	}
	if val.Type() != cty.String {
		return color.RGB{}, fmt.Errorf("expected a hex color string, got %s", val.Type().FriendlyName())
	}
	return color.ParseHex(val.AsString())
}

// PaletteToCty converts a palette into an object value so entries can be
// referenced as palette.<name>.
func PaletteToCty(palette map[string]color.RGB) cty.Value {
	if len(palette) == 0 {
		return cty.EmptyObjectVal
	}

	// Sort keys for deterministic output
	keys := make([]string, 0, len(palette))
	for k := range palette {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	vals := make(map[string]cty.Value, len(palette))
	for _, k := range keys {
		vals[k] = cty.StringVal(Encode(palette[k]))
	}
	return cty.ObjectVal(vals)
}

func number(v cty.Value) float64 {
	f, _ := v.AsBigFloat().Float64()
	return f
}

// MakeMixFunc creates the mix function.
// Usage: mix(palette.a, "#ffffff", 0.5, "lch")
func MakeMixFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Interpolates between two colors inside the given color space",
		Params: []function.Parameter{
			{Name: "from", Type: cty.String},
			{Name: "to", Type: cty.String},
			{Name: "t", Type: cty.Number},
			{Name: "space", Type: cty.String},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			from, err := color.ParseHex(args[0].AsString())
			if err != nil {
				return cty.NilVal, function.NewArgError(0, err)
			}
			to, err := color.ParseHex(args[1].AsString())
			if err != nil {
				return cty.NilVal, function.NewArgError(1, err)
			}
			space, err := gradient.ParseSpace(args[3].AsString())
			if err != nil {
				return cty.NilVal, function.NewArgError(3, err)
			}
			return cty.StringVal(Encode(gradient.Mix(from, to, number(args[2]), space))), nil
		},
	})
}

// makeSpaceFunc creates a constructor function that takes three channel
// values in some color space and returns the sRGB hex encoding.
func makeSpaceFunc(desc string, names [3]string, toRGB func(a, b, c float64) color.RGB) function.Function {
	return function.New(&function.Spec{
		Description: desc,
		Params: []function.Parameter{
			{Name: names[0], Type: cty.Number},
			{Name: names[1], Type: cty.Number},
			{Name: names[2], Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c := toRGB(number(args[0]), number(args[1]), number(args[2]))
			return cty.StringVal(Encode(c)), nil
		},
	})
}

// MakeRGBFunc creates rgb(r, g, b) with channels in [0, 1].
func MakeRGBFunc() function.Function {
	return makeSpaceFunc("Builds a color from sRGB channels in [0, 1]", [3]string{"r", "g", "b"},
		func(r, g, b float64) color.RGB { return color.RGB{R: r, G: g, B: b, Alpha: 1} })
}

// MakeXYZFunc creates xyz(x, y, z).
func MakeXYZFunc() function.Function {
	return makeSpaceFunc("Builds a color from CIE XYZ (D65) tristimulus values", [3]string{"x", "y", "z"},
		func(x, y, z float64) color.RGB { return color.XYZ{X: x, Y: y, Z: z, Alpha: 1}.RGB() })
}

// MakeLABFunc creates lab(l, a, b).
func MakeLABFunc() function.Function {
	return makeSpaceFunc("Builds a color from CIE LAB", [3]string{"l", "a", "b"},
		func(l, a, b float64) color.RGB { return color.LAB{L: l, A: a, B: b, Alpha: 1}.RGB() })
}

// MakeLCHFunc creates lch(l, c, h) with the hue in degrees.
func MakeLCHFunc() function.Function {
	return makeSpaceFunc("Builds a color from LCH, hue in degrees", [3]string{"l", "c", "h"},
		func(l, c, h float64) color.RGB { return color.LCH{L: l, C: c, H: h, Alpha: 1}.RGB() })
}

// Functions returns every color function keyed by its HCL name.
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"mix": MakeMixFunc(),
		"rgb": MakeRGBFunc(),
		"xyz": MakeXYZFunc(),
		"lab": MakeLABFunc(),
		"lch": MakeLCHFunc(),
	}
}

// BuildEvalContext creates an HCL evaluation context with palette variables
// and the color functions.
func BuildEvalContext(palette map[string]color.RGB) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"palette": PaletteToCty(palette),
		},
		Functions: Functions(),
	}
}
