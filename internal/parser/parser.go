// Package parser reads gradient files: an HCL document with an optional meta
// block, a mandatory palette block and any number of gradient blocks.
package parser

import (
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/colorspaces/internal/color"
	"github.com/jsvensson/colorspaces/internal/eval"
	"github.com/jsvensson/colorspaces/internal/gradient"
)

const (
	// DefaultSteps is used when a gradient block has no steps attribute.
	DefaultSteps = 5
	// DefaultSpace is used when a gradient block has no space attribute.
	DefaultSpace = gradient.SpaceLCH
)

// Document is a fully resolved gradient file.
type Document struct {
	Meta         Meta
	Palette      map[string]color.RGB
	PaletteOrder []string // palette names in source order
	Gradients    []Gradient
}

// Gradient is a resolved gradient block.
type Gradient struct {
	Name  string
	From  color.RGB
	To    color.RGB
	Space gradient.Space
	Steps int
}

// Stops returns the gradient's evenly spaced colors.
func (g Gradient) Stops() ([]color.RGB, error) {
	return gradient.Steps(g.From, g.To, g.Steps, g.Space)
}

// Gradient returns the gradient with the given name.
func (d *Document) Gradient(name string) (Gradient, bool) {
	for _, g := range d.Gradients {
		if g.Name == name {
			return g, true
		}
	}
	return Gradient{}, false
}

// Meta holds document metadata.
type Meta struct {
	Name        string `hcl:"name,optional"`
	Author      string `hcl:"author,optional"`
	Description string `hcl:"description,optional"`
	URL         string `hcl:"url,optional"`
}

// PaletteBlock wraps the palette block for gohcl decoding.
type PaletteBlock struct {
	Entries hcl.Body `hcl:",remain"`
}

// RawConfig captures the palette block first (no EvalContext needed).
type RawConfig struct {
	Palette *PaletteBlock `hcl:"palette,block"`
	Remain  hcl.Body      `hcl:",remain"`
}

// GradientBlock is a gradient block as written in the file.
type GradientBlock struct {
	Name  string  `hcl:"name,label"`
	From  string  `hcl:"from"`
	To    string  `hcl:"to"`
	Space *string `hcl:"space,optional"`
	Steps *int    `hcl:"steps,optional"`
}

// ResolvedConfig decodes the blocks that may reference the palette.
type ResolvedConfig struct {
	Meta      *Meta           `hcl:"meta,block"`
	Gradients []GradientBlock `hcl:"gradient,block"`
}

// Parse reads and resolves the gradient file at path.
func Parse(path string) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading gradient file: %w", err)
	}
	return ParseSource(src, path)
}

// ParseSource resolves gradient file source. filename is only used in
// diagnostics.
func ParseSource(src []byte, filename string) (*Document, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing HCL: %s", diags.Error())
	}

	// First pass: extract palette
	var raw RawConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("decoding palette: %s", diags.Error())
	}
	if raw.Palette == nil {
		return nil, fmt.Errorf("no palette block found")
	}

	paletteBody, ok := raw.Palette.Entries.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("palette block is not an hclsyntax.Body")
	}
	palette, order, err := parsePaletteBody(paletteBody)
	if err != nil {
		return nil, fmt.Errorf("parsing palette: %w", err)
	}

	// Second pass: decode blocks that reference palette
	ctx := eval.BuildEvalContext(palette)
	var resolved ResolvedConfig
	if diags := gohcl.DecodeBody(raw.Remain, ctx, &resolved); diags.HasErrors() {
		return nil, fmt.Errorf("decoding: %s", diags.Error())
	}

	gradients, err := resolveGradients(resolved.Gradients)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Palette:      palette,
		PaletteOrder: order,
		Gradients:    gradients,
	}
	if resolved.Meta != nil {
		doc.Meta = *resolved.Meta
	}
	return doc, nil
}

// parsePaletteBody evaluates palette attributes in source order so each
// entry can reference the ones defined above it.
func parsePaletteBody(body *hclsyntax.Body) (map[string]color.RGB, []string, error) {
	if len(body.Blocks) > 0 {
		b := body.Blocks[0]
		return nil, nil, fmt.Errorf("%s: nested blocks are not supported in palette", b.Type)
	}

	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, attr := range body.Attributes {
		attrs = append(attrs, attr)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].SrcRange.Start.Byte < attrs[j].SrcRange.Start.Byte
	})

	palette := make(map[string]color.RGB, len(attrs))
	order := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		val, diags := attr.Expr.Value(eval.BuildEvalContext(palette))
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("evaluating palette.%s: %s", attr.Name, diags.Error())
		}
		c, err := eval.ResolveColor(val)
		if err != nil {
			return nil, nil, fmt.Errorf("palette.%s: %w", attr.Name, err)
		}
		palette[attr.Name] = c
		order = append(order, attr.Name)
	}
	return palette, order, nil
}

func resolveGradients(blocks []GradientBlock) ([]Gradient, error) {
	seen := make(map[string]bool, len(blocks))
	gradients := make([]Gradient, 0, len(blocks))

	for _, b := range blocks {
		if seen[b.Name] {
			return nil, fmt.Errorf("gradient %q defined more than once", b.Name)
		}
		seen[b.Name] = true

		g := Gradient{Name: b.Name, Space: DefaultSpace, Steps: DefaultSteps}

		var err error
		if g.From, err = color.ParseHex(b.From); err != nil {
			return nil, fmt.Errorf("gradient.%s.from: %w", b.Name, err)
		}
		if g.To, err = color.ParseHex(b.To); err != nil {
			return nil, fmt.Errorf("gradient.%s.to: %w", b.Name, err)
		}
		if b.Space != nil {
			if g.Space, err = gradient.ParseSpace(*b.Space); err != nil {
				return nil, fmt.Errorf("gradient.%s.space: %w", b.Name, err)
			}
		}
		if b.Steps != nil {
			if *b.Steps < 2 {
				return nil, fmt.Errorf("gradient.%s.steps: must be at least 2, got %d", b.Name, *b.Steps)
			}
			g.Steps = *b.Steps
		}

		gradients = append(gradients, g)
	}
	return gradients, nil
}
