package engine

import (
	"testing"

	"github.com/jsvensson/colorspaces/internal/color"
)

func pathTestData() templateData {
	return templateData{
		Palette: map[string]color.RGB{
			"base": {R: 25.0 / 255, G: 23.0 / 255, B: 36.0 / 255, Alpha: 1},
			"love": {R: 235.0 / 255, G: 111.0 / 255, B: 146.0 / 255, Alpha: 1},
		},
		Gradients: []gradientData{
			{
				Name:  "mono",
				Space: "rgb",
				Stops: []color.RGB{{Alpha: 1}, {R: 0.5, G: 0.5, B: 0.5, Alpha: 1}, {R: 1, G: 1, B: 1, Alpha: 1}},
			},
		},
	}
}

func TestResolveColorPath(t *testing.T) {
	data := pathTestData()

	tests := []struct {
		path string
		want string
	}{
		{"palette.base", "#191724"},
		{"love", "#eb6f92"},
		{"#00ff00", "#00ff00"},
		{"gradient.mono.0", "#000000"},
		{"gradient.mono.1", "#808080"},
		{"gradient.mono.2", "#ffffff"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := resolveColorPath(tt.path, data)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Hex() != tt.want {
				t.Errorf("got %s, want %s", got.Hex(), tt.want)
			}
		})
	}
}

func TestResolveColorPath_Errors(t *testing.T) {
	data := pathTestData()

	paths := []string{
		"palette.missing",
		"palette.base.extra",
		"gradient.mono",
		"gradient.mono.x",
		"gradient.mono.3",
		"gradient.mono.-1",
		"gradient.nope.0",
		"theme.background",
		"#zz",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			if _, err := resolveColorPath(path, data); err == nil {
				t.Errorf("expected error for %q", path)
			}
		})
	}
}

func TestToColor(t *testing.T) {
	data := pathTestData()

	if c, err := toColor(color.RGB{R: 1, Alpha: 1}, data); err != nil || c.Hex() != "#ff0000" {
		t.Errorf("toColor(RGB) = %v, %v", c, err)
	}
	if c, err := toColor("base", data); err != nil || c.Hex() != "#191724" {
		t.Errorf("toColor(path) = %v, %v", c, err)
	}
	if _, err := toColor(42, data); err == nil {
		t.Error("expected error for unsupported type")
	}
}
