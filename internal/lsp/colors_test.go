package lsp

import (
	"testing"

	"github.com/jsvensson/colorspaces/internal/color"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestColorToLSP(t *testing.T) {
	tests := []struct {
		name  string
		input color.RGB
		want  protocol.Color
	}{
		{
			name:  "pure red",
			input: color.RGB{R: 1, Alpha: 1},
			want:  protocol.Color{Red: 1.0, Green: 0.0, Blue: 0.0, Alpha: 1.0},
		},
		{
			name:  "translucent white",
			input: color.RGB{R: 1, G: 1, B: 1, Alpha: 0.5},
			want:  protocol.Color{Red: 1.0, Green: 1.0, Blue: 1.0, Alpha: 0.5},
		},
		{
			name:  "out of gamut clamped",
			input: color.RGB{R: 1.3, G: -0.2, B: 0.25, Alpha: 1},
			want:  protocol.Color{Red: 1.0, Green: 0.0, Blue: 0.25, Alpha: 1.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := colorToLSP(tt.input)
			if got != tt.want {
				t.Errorf("colorToLSP(%v) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDocumentColors(t *testing.T) {
	red, _ := color.ParseHex("#ff0000")
	blue, _ := color.ParseHex("#0000ff")

	result := &AnalysisResult{
		Colors: []ColorLocation{
			{
				Range: protocol.Range{
					Start: protocol.Position{Line: 1, Character: 10},
					End:   protocol.Position{Line: 1, Character: 20},
				},
				Color: red,
			},
			{
				Range: protocol.Range{
					Start: protocol.Position{Line: 2, Character: 10},
					End:   protocol.Position{Line: 2, Character: 22},
				},
				Color: blue,
				IsRef: true,
			},
		},
	}

	infos := documentColors(result)
	if len(infos) != 2 {
		t.Fatalf("expected 2 ColorInformation items, got %d", len(infos))
	}
	if infos[0].Color.Red != 1.0 || infos[0].Color.Blue != 0.0 {
		t.Errorf("item 0: expected red, got %+v", infos[0].Color)
	}
	if infos[1].Color.Blue != 1.0 || infos[1].Color.Red != 0.0 {
		t.Errorf("item 1: expected blue, got %+v", infos[1].Color)
	}
	if infos[1].Range.Start.Line != 2 || infos[1].Range.End.Character != 22 {
		t.Errorf("item 1: unexpected range %+v", infos[1].Range)
	}
}

func TestDocumentColors_NilResult(t *testing.T) {
	infos := documentColors(nil)
	if infos == nil {
		t.Fatal("expected non-nil empty slice, got nil")
	}
	if len(infos) != 0 {
		t.Errorf("expected 0 items, got %d", len(infos))
	}
}

func presentationParams(c protocol.Color, line, start, end uint32) *protocol.ColorPresentationParams {
	return &protocol.ColorPresentationParams{
		Color: c,
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: start},
			End:   protocol.Position{Line: line, Character: end},
		},
	}
}

func TestColorPresentation_HexLiteral(t *testing.T) {
	content := "palette {\n  base = \"#191724\"\n}\n"
	params := presentationParams(protocol.Color{Red: 1, Alpha: 1}, 1, 9, 18)

	presentations := colorPresentation(content, params)
	if len(presentations) != 3 {
		t.Fatalf("expected 3 presentations for an opaque literal, got %d", len(presentations))
	}

	want := []struct{ label, text string }{
		{"#ff0000", "\"#ff0000\""},
		{"lab(53.24, 80.09, 67.2)", "lab(53.24, 80.09, 67.2)"},
		{"lch(53.24, 104.55, 40)", "lch(53.24, 104.55, 40)"},
	}
	for i, w := range want {
		p := presentations[i]
		if p.Label != w.label {
			t.Errorf("presentation %d label = %q, want %q", i, p.Label, w.label)
		}
		if p.TextEdit == nil {
			t.Fatalf("presentation %d has no TextEdit", i)
		}
		if p.TextEdit.NewText != w.text {
			t.Errorf("presentation %d NewText = %q, want %q", i, p.TextEdit.NewText, w.text)
		}
		if p.TextEdit.Range != params.Range {
			t.Errorf("presentation %d range = %+v, want %+v", i, p.TextEdit.Range, params.Range)
		}
	}
}

func TestColorPresentation_NonASCIIName(t *testing.T) {
	content := "palette {\n  café = \"#ff7f50\"\n}\n"
	result := Analyze("test.grad", content)
	if len(result.Colors) != 1 {
		t.Fatalf("expected 1 color location, got %d", len(result.Colors))
	}

	// "é" is one UTF-16 unit but two bytes
	r := result.Colors[0].Range
	if r.Start.Character != 9 || r.End.Character != 18 {
		t.Errorf("range = %+v, want characters 9..18", r)
	}
	if got := extractText(content, r); got != `"#ff7f50"` {
		t.Errorf("range text = %q, want %q", got, `"#ff7f50"`)
	}

	params := &protocol.ColorPresentationParams{Color: colorToLSP(result.Colors[0].Color), Range: r}
	presentations := colorPresentation(content, params)
	if len(presentations) != 3 {
		t.Fatalf("expected 3 presentations, got %d", len(presentations))
	}
	if got := presentations[0].TextEdit.NewText; got != "\"#ff7f50\"" {
		t.Errorf("hex NewText = %q, want %q", got, "\"#ff7f50\"")
	}
}

func TestColorPresentation_Translucent(t *testing.T) {
	content := "palette {\n  ghost = \"#ffffff80\"\n}\n"
	params := presentationParams(protocol.Color{Red: 1, Green: 1, Blue: 1, Alpha: 0}, 1, 10, 21)

	presentations := colorPresentation(content, params)
	if len(presentations) != 1 {
		t.Fatalf("expected only a hex presentation, got %d", len(presentations))
	}
	if presentations[0].Label != "#ffffff00" {
		t.Errorf("label = %q, want %q", presentations[0].Label, "#ffffff00")
	}
}

func TestColorPresentation_ConstructorCall(t *testing.T) {
	content := "palette {\n  gray = lab(53.59, 0, 0)\n}\n"
	params := presentationParams(protocol.Color{Alpha: 1}, 1, 9, 25)

	presentations := colorPresentation(content, params)
	if len(presentations) != 3 {
		t.Fatalf("expected 3 presentations, got %d", len(presentations))
	}
	if got := presentations[0].TextEdit.NewText; got != "\"#000000\"" {
		t.Errorf("hex NewText = %q", got)
	}
	if got := presentations[1].Label; got != "lab(0, 0, 0)" {
		t.Errorf("lab label = %q", got)
	}
}

func TestColorPresentation_NoReplacement(t *testing.T) {
	tests := []struct {
		name    string
		content string
		start   uint32
		end     uint32
	}{
		{"palette reference", "gradient \"a\" {\n  from = palette.base\n}\n", 9, 21},
		{"mix call", "palette {\n  mid = mix(palette.a, palette.b, 0.5, \"lch\")\n}\n", 8, 47},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := presentationParams(protocol.Color{Red: 0.1, Green: 0.2, Blue: 0.3, Alpha: 1}, 1, tt.start, tt.end)
			presentations := colorPresentation(tt.content, params)
			if presentations == nil {
				t.Fatal("expected non-nil empty slice")
			}
			if len(presentations) != 0 {
				t.Errorf("expected no presentations, got %d", len(presentations))
			}
		})
	}
}

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{-0.001, "0"},
		{53.2408, "53.24"},
		{67.2032, "67.2"},
		{-12.346, "-12.35"},
	}
	for _, tt := range tests {
		if got := num(tt.in); got != tt.want {
			t.Errorf("num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
