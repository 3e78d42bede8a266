package eval

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/colorspaces/internal/color"
	"github.com/zclconf/go-cty/cty"
)

func evalExpr(t *testing.T, src string, palette map[string]color.RGB) (cty.Value, hcl.Diagnostics) {
	t.Helper()
	expr, diags := hclsyntax.ParseExpression([]byte(src), "test.grad", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		t.Fatalf("parsing %q: %s", src, diags.Error())
	}
	return expr.Value(BuildEvalContext(palette))
}

func TestPaletteToCty(t *testing.T) {
	red, _ := color.ParseHex("#ff0000")
	ghost, _ := color.ParseHex("#ffffff80")
	val := PaletteToCty(map[string]color.RGB{"red": red, "ghost": ghost})

	if !val.Type().IsObjectType() {
		t.Fatalf("expected object, got %s", val.Type().FriendlyName())
	}
	if got := val.GetAttr("red").AsString(); got != "#ff0000" {
		t.Errorf("red = %q, want %q", got, "#ff0000")
	}
	if got := val.GetAttr("ghost").AsString(); got != "#ffffff80" {
		t.Errorf("ghost = %q, want %q", got, "#ffffff80")
	}
}

func TestPaletteToCty_Empty(t *testing.T) {
	if val := PaletteToCty(nil); !val.RawEquals(cty.EmptyObjectVal) {
		t.Errorf("got %#v, want empty object", val)
	}
}

func TestResolveColor(t *testing.T) {
	tests := []struct {
		name    string
		val     cty.Value
		want    string
		wantErr bool
	}{
		{"hex string", cty.StringVal("#ff0000"), "#ff0000", false},
		{"bad hex", cty.StringVal("#nothex"), "", true},
		{"number", cty.NumberIntVal(3), "", true},
		{"null", cty.NullVal(cty.String), "", true},
		{"unknown", cty.UnknownVal(cty.String), "", true},
		{"object", cty.ObjectVal(map[string]cty.Value{"color": cty.StringVal("#ff0000")}), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveColor(tt.val)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveColor() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got.Hex() != tt.want {
				t.Errorf("ResolveColor() = %q, want %q", got.Hex(), tt.want)
			}
		})
	}
}

func TestFunctions(t *testing.T) {
	palette := map[string]color.RGB{
		"black": {Alpha: 1},
		"white": {R: 1, G: 1, B: 1, Alpha: 1},
	}

	tests := []struct {
		name string
		expr string
		want string
	}{
		{"rgb", `rgb(1, 0, 0)`, "#ff0000"},
		{"xyz white point", `xyz(0.95047, 1, 1.08883)`, "#ffffff"},
		{"lab white", `lab(100, 0, 0)`, "#ffffff"},
		{"lab black", `lab(0, 0, 0)`, "#000000"},
		{"lch gray", `lch(53.5850, 0, 120)`, "#808080"},
		{"mix rgb", `mix(palette.black, palette.white, 0.5, "rgb")`, "#808080"},
		{"mix endpoints", `mix(palette.black, "#ff0000", 1, "lch")`, "#ff0000"},
		{"mix literal", `mix("#ff0000", "#0000ff", 0, "lab")`, "#ff0000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, diags := evalExpr(t, tt.expr, palette)
			if diags.HasErrors() {
				t.Fatalf("evaluating %s: %s", tt.expr, diags.Error())
			}
			if got := val.AsString(); got != tt.want {
				t.Errorf("%s = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestFunctions_Errors(t *testing.T) {
	exprs := []string{
		`mix("#ff0000", "#0000ff", 0.5, "hsl")`,
		`mix("red", "#0000ff", 0.5, "lch")`,
		`mix("#ff0000", "blue", 0.5, "lch")`,
		`lab("x", 0, 0)`,
		`palette.missing`,
	}
	for _, expr := range exprs {
		t.Run(expr, func(t *testing.T) {
			_, diags := evalExpr(t, expr, nil)
			if !diags.HasErrors() {
				t.Errorf("expected error evaluating %s", expr)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	if got := Encode(color.RGB{R: 1, Alpha: 1}); got != "#ff0000" {
		t.Errorf("Encode(opaque) = %q", got)
	}
	if got := Encode(color.RGB{R: 1, Alpha: 0}); got != "#ff000000" {
		t.Errorf("Encode(transparent) = %q", got)
	}
}
