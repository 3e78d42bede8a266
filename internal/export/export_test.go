package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/jsvensson/colorspaces/internal/color"
	"github.com/jsvensson/colorspaces/internal/gradient"
	"github.com/jsvensson/colorspaces/internal/parser"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testDocument() *parser.Document {
	return &parser.Document{
		Meta: parser.Meta{Name: "Mono", Author: "Tester"},
		Palette: map[string]color.RGB{
			"black": {Alpha: 1},
			"ghost": {R: 1, G: 1, B: 1, Alpha: 0},
		},
		Gradients: []parser.Gradient{{
			Name:  "gray",
			From:  color.RGB{Alpha: 1},
			To:    color.RGB{R: 1, G: 1, B: 1, Alpha: 1},
			Space: gradient.SpaceRGB,
			Steps: 3,
		}},
	}
}

var wantFile = File{
	Name:    "Mono",
	Author:  "Tester",
	Palette: map[string]string{"black": "#000000", "ghost": "#ffffff00"},
	Gradients: []Gradient{{
		Name:  "gray",
		Space: "rgb",
		Stops: []string{"#000000", "#808080", "#ffffff"},
	}},
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"json", "JSON", "yaml", "yml", "toml"} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	tests := []struct {
		format    Format
		unmarshal func([]byte, any) error
	}{
		{JSON, json.Unmarshal},
		{YAML, yaml.Unmarshal},
		{TOML, toml.Unmarshal},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, testDocument(), tt.format))

			var got File
			require.NoError(t, tt.unmarshal(buf.Bytes(), &got))
			assert.Equal(t, wantFile, got)
		})
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, testDocument(), Format("xml")))
}

func TestWrite_BadGradient(t *testing.T) {
	doc := testDocument()
	doc.Gradients[0].Steps = 1
	var buf bytes.Buffer
	err := Write(&buf, doc, JSON)
	assert.ErrorContains(t, err, "gradient gray")
}
