// Package export writes resolved gradients in machine-readable formats.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jsvensson/colorspaces/internal/eval"
	"github.com/jsvensson/colorspaces/internal/parser"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is an output encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
)

// Formats lists the supported formats.
var Formats = []Format{JSON, YAML, TOML}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case JSON, YAML, TOML:
		return f, nil
	case "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("unknown export format %q (valid: json, yaml, toml)", s)
	}
}

// File is the exported document.
type File struct {
	Name      string            `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Author    string            `json:"author,omitempty" yaml:"author,omitempty" toml:"author,omitempty"`
	Palette   map[string]string `json:"palette" yaml:"palette" toml:"palette"`
	Gradients []Gradient        `json:"gradients" yaml:"gradients" toml:"gradients"`
}

// Gradient is an exported gradient: its space and hex-encoded stops.
type Gradient struct {
	Name  string   `json:"name" yaml:"name" toml:"name"`
	Space string   `json:"space" yaml:"space" toml:"space"`
	Stops []string `json:"stops" yaml:"stops" toml:"stops"`
}

// Build converts a document to its exported form.
func Build(doc *parser.Document) (*File, error) {
	f := &File{
		Name:      doc.Meta.Name,
		Author:    doc.Meta.Author,
		Palette:   make(map[string]string, len(doc.Palette)),
		Gradients: make([]Gradient, 0, len(doc.Gradients)),
	}
	for name, c := range doc.Palette {
		f.Palette[name] = eval.Encode(c)
	}
	for _, g := range doc.Gradients {
		stops, err := g.Stops()
		if err != nil {
			return nil, fmt.Errorf("gradient %s: %w", g.Name, err)
		}
		hexes := make([]string, len(stops))
		for i, s := range stops {
			hexes[i] = eval.Encode(s)
		}
		f.Gradients = append(f.Gradients, Gradient{Name: g.Name, Space: g.Space.String(), Stops: hexes})
	}
	return f, nil
}

// Write encodes doc to w in the given format.
func Write(w io.Writer, doc *parser.Document, format Format) error {
	f, err := Build(doc)
	if err != nil {
		return fmt.Errorf("building export: %w", err)
	}

	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(f)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = enc.Encode(f)
		if err == nil {
			err = enc.Close()
		}
	case TOML:
		err = toml.NewEncoder(w).Encode(f)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", format, err)
	}
	return nil
}
