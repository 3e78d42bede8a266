// Package engine renders Go templates against a resolved gradient document.
package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"github.com/jsvensson/colorspaces/internal/color"
	"github.com/jsvensson/colorspaces/internal/gradient"
	"github.com/jsvensson/colorspaces/internal/parser"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("colorspaces.engine")

// Engine loads and executes Go templates against a gradient document.
type Engine struct {
	TemplatesDir string
	OutputDir    string
	Templates    []string // if non-empty, only render these template basenames
	Gradients    []string // if non-empty, only expose these gradients
}

// Run loads all .tmpl files from the templates directory, executes them
// with the document data, and writes output files.
func (e *Engine) Run(doc *parser.Document) error {
	pattern := filepath.Join(e.TemplatesDir, "*.tmpl")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("globbing templates: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no .tmpl files found in %s", e.TemplatesDir)
	}

	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	data, err := e.buildTemplateData(doc)
	if err != nil {
		return err
	}

	for _, tmplPath := range matches {
		baseName := strings.TrimSuffix(filepath.Base(tmplPath), ".tmpl")

		if !e.shouldRender(baseName) {
			log.Debugf("skipping template %s", baseName)
			continue
		}

		if err := e.renderTemplate(tmplPath, baseName, data); err != nil {
			return err
		}
	}

	return nil
}

func (e *Engine) shouldRender(name string) bool {
	// If no templates are specified, render all.
	if len(e.Templates) == 0 {
		return true
	}
	return slices.Contains(e.Templates, name)
}

func (e *Engine) renderTemplate(tmplPath, outputName string, data templateData) error {
	tmpl, err := template.New(filepath.Base(tmplPath)).Funcs(data.FuncMap).ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", tmplPath, err)
	}

	outPath := filepath.Join(e.OutputDir, outputName)
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", outPath, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("executing template %s: %w", tmplPath, err)
	}

	log.Infof("rendered %s", outPath)
	return nil
}

// templateData is the data passed to templates.
type templateData struct {
	Meta      parser.Meta
	Palette   map[string]color.RGB
	Gradients []gradientData
	FuncMap   template.FuncMap
}

// gradientData is a gradient with its stops already computed.
type gradientData struct {
	Name  string
	Space string
	From  color.RGB
	To    color.RGB
	Stops []color.RGB
}

func (e *Engine) buildTemplateData(doc *parser.Document) (templateData, error) {
	data := templateData{
		Meta:    doc.Meta,
		Palette: doc.Palette,
	}

	for _, g := range doc.Gradients {
		if len(e.Gradients) > 0 && !slices.Contains(e.Gradients, g.Name) {
			continue
		}
		stops, err := g.Stops()
		if err != nil {
			return templateData{}, fmt.Errorf("gradient %s: %w", g.Name, err)
		}
		data.Gradients = append(data.Gradients, gradientData{
			Name:  g.Name,
			Space: g.Space.String(),
			From:  g.From,
			To:    g.To,
			Stops: stops,
		})
	}
	for _, name := range e.Gradients {
		if _, ok := doc.Gradient(name); !ok {
			return templateData{}, fmt.Errorf("gradient %q not found", name)
		}
	}

	data.FuncMap = template.FuncMap{
		"hex":      formatter(data, color.RGB.Hex),
		"hexBare":  formatter(data, color.RGB.HexBare),
		"hexAlpha": formatter(data, color.RGB.HexAlpha),
		"css":      formatter(data, color.RGB.CSS),
		"xyz":      formatter(data, func(c color.RGB) string { return c.XYZ().String() }),
		"lab":      formatter(data, func(c color.RGB) string { return c.LAB().String() }),
		"lch":      formatter(data, func(c color.RGB) string { return c.LCH().String() }),
		"palette": func(name string) (color.RGB, error) {
			return resolveColorPath("palette."+name, data)
		},
		"stops": func(name string) ([]color.RGB, error) {
			for _, g := range data.Gradients {
				if g.Name == name {
					return g.Stops, nil
				}
			}
			return nil, fmt.Errorf("gradient not found: %s", name)
		},
		"mix": func(from, to any, t float64, space string) (color.RGB, error) {
			a, err := toColor(from, data)
			if err != nil {
				return color.RGB{}, err
			}
			b, err := toColor(to, data)
			if err != nil {
				return color.RGB{}, err
			}
			s, err := gradient.ParseSpace(space)
			if err != nil {
				return color.RGB{}, err
			}
			return gradient.Mix(a, b, t, s), nil
		},
	}
	return data, nil
}

// formatter wraps a color formatting function so templates can pass either
// a color value or a dot path string.
func formatter(data templateData, format func(color.RGB) string) func(any) (string, error) {
	return func(v any) (string, error) {
		c, err := toColor(v, data)
		if err != nil {
			return "", err
		}
		return format(c), nil
	}
}

func toColor(v any, data templateData) (color.RGB, error) {
	switch c := v.(type) {
	case color.RGB:
		return c, nil
	case string:
		return resolveColorPath(c, data)
	default:
		return color.RGB{}, fmt.Errorf("expected a color or a color path, got %T", v)
	}
}

// resolveColorPath resolves a dot-notation path to a color.
// Supports "palette.<name>", "gradient.<name>.<index>" and bare palette
// names or hex literals.
func resolveColorPath(path string, data templateData) (color.RGB, error) {
	if strings.HasPrefix(path, "#") {
		return color.ParseHex(path)
	}

	parts := strings.Split(path, ".")
	if len(parts) == 1 {
		parts = []string{"palette", parts[0]}
	}

	switch parts[0] {
	case "palette":
		if len(parts) != 2 {
			return color.RGB{}, fmt.Errorf("palette paths must be single-level: %s", path)
		}
		c, ok := data.Palette[parts[1]]
		if !ok {
			return color.RGB{}, fmt.Errorf("palette color not found: %s", parts[1])
		}
		return c, nil

	case "gradient":
		if len(parts) != 3 {
			return color.RGB{}, fmt.Errorf("gradient paths must be gradient.<name>.<index>: %s", path)
		}
		idx, err := strconv.Atoi(parts[2])
		if err != nil {
			return color.RGB{}, fmt.Errorf("invalid stop index in %s: %w", path, err)
		}
		for _, g := range data.Gradients {
			if g.Name != parts[1] {
				continue
			}
			if idx < 0 || idx >= len(g.Stops) {
				return color.RGB{}, fmt.Errorf("stop index %d out of range for gradient %s (%d stops)", idx, g.Name, len(g.Stops))
			}
			return g.Stops[idx], nil
		}
		return color.RGB{}, fmt.Errorf("gradient not found: %s", parts[1])

	default:
		return color.RGB{}, fmt.Errorf("unknown block %q (valid: palette, gradient)", parts[0])
	}
}
