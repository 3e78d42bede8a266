package lsp

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/colorspaces/internal/color"
	"github.com/jsvensson/colorspaces/internal/eval"
	"github.com/jsvensson/colorspaces/internal/gradient"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/zclconf/go-cty/cty"
)

const diagSource = "colorspaces"

var (
	DiagError   = protocol.DiagnosticSeverityError
	DiagWarning = protocol.DiagnosticSeverityWarning
)

// gradientAttributes lists the attributes allowed in a gradient block.
var gradientAttributes = map[string]bool{
	"from":  true,
	"to":    true,
	"space": true,
	"steps": true,
}

// AnalysisResult holds all information produced by analyzing a gradient file.
type AnalysisResult struct {
	Diagnostics []protocol.Diagnostic
	Palette     map[string]color.RGB
	Gradients   map[string]protocol.Range // gradient name -> block header range
	Symbols     map[string]protocol.Range // "palette.base" -> definition range
	Colors      []ColorLocation

	index *lineIndex
}

// ColorLocation records a resolved color at a specific source position.
type ColorLocation struct {
	Range protocol.Range
	Color color.RGB
	IsRef bool // true if this is a palette reference (not a literal or call)
}

// Analyze parses gradient file content from memory and produces diagnostics
// and color locations. It collects ALL errors rather than short-circuiting on
// the first.
func Analyze(filename, content string) *AnalysisResult {
	result := &AnalysisResult{
		Palette:   make(map[string]color.RGB),
		Gradients: make(map[string]protocol.Range),
		Symbols:   make(map[string]protocol.Range),
		index:     newLineIndex(content),
	}

	file, diags := hclsyntax.ParseConfig([]byte(content), filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		for _, d := range diags {
			result.Diagnostics = append(result.Diagnostics, result.hclDiagToLSP(d))
		}
		// Cannot proceed with semantic analysis if syntax is broken
		return result
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		result.addError(hcl.Range{}, "internal error: parsed body is not *hclsyntax.Body")
		return result
	}

	var paletteBody *hclsyntax.Body
	var gradients []*hclsyntax.Block

	for _, block := range body.Blocks {
		switch block.Type {
		case "palette":
			if paletteBody != nil {
				result.addError(block.DefRange(), "duplicate palette block")
				continue
			}
			paletteBody = block.Body
		case "gradient":
			gradients = append(gradients, block)
		case "meta":
			// meta is handled by gohcl in the parser; we skip it here
		default:
			result.addWarning(block.DefRange(), fmt.Sprintf("unknown block type %q", block.Type))
		}
	}

	if paletteBody == nil {
		result.addError(hcl.Range{
			Filename: filename,
			Start:    hcl.Pos{Line: 1, Column: 1},
			End:      hcl.Pos{Line: 1, Column: 1},
		}, "missing required palette block")
		return result
	}

	result.analyzePaletteBody(paletteBody)

	ctx := eval.BuildEvalContext(result.Palette)
	for _, block := range gradients {
		result.analyzeGradientBlock(block, ctx)
	}

	return result
}

// hclDiagToLSP converts an HCL diagnostic to an LSP diagnostic.
func (r *AnalysisResult) hclDiagToLSP(d *hcl.Diagnostic) protocol.Diagnostic {
	sev := DiagError
	if d.Severity == hcl.DiagWarning {
		sev = DiagWarning
	}

	diag := protocol.Diagnostic{
		Severity: &sev,
		Message:  d.Summary,
		Source:   strPtr(diagSource),
	}

	if d.Detail != "" {
		diag.Message = d.Summary + ": " + d.Detail
	}

	if d.Subject != nil {
		diag.Range = r.index.rangeOf(*d.Subject)
	}

	return diag
}

// addError adds an error-level diagnostic at the given range.
func (r *AnalysisResult) addError(rng hcl.Range, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    r.index.rangeOf(rng),
		Severity: &DiagError,
		Source:   strPtr(diagSource),
		Message:  msg,
	})
}

// addWarning adds a warning-level diagnostic at the given range.
func (r *AnalysisResult) addWarning(rng hcl.Range, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    r.index.rangeOf(rng),
		Severity: &DiagWarning,
		Source:   strPtr(diagSource),
		Message:  msg,
	})
}

func strPtr(s string) *string {
	return &s
}

// analyzePaletteBody evaluates palette entries in source order so later
// entries can reference earlier ones. Entries that fail are reported and left
// out of the palette, which turns references to them into further errors.
func (r *AnalysisResult) analyzePaletteBody(body *hclsyntax.Body) {
	for _, block := range body.Blocks {
		r.addError(block.DefRange(), fmt.Sprintf("palette.%s: nested blocks are not supported in palette", block.Type))
	}

	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, attr := range body.Attributes {
		attrs = append(attrs, attr)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].SrcRange.Start.Byte < attrs[j].SrcRange.Start.Byte
	})

	for _, attr := range attrs {
		name := "palette." + attr.Name
		r.Symbols[name] = r.index.rangeOf(attr.SrcRange)
		c, ok := r.resolveColorAttr(attr, eval.BuildEvalContext(r.Palette), name)
		if ok {
			r.Palette[attr.Name] = c
		}
	}
}

// analyzeGradientBlock checks one gradient block.
func (r *AnalysisResult) analyzeGradientBlock(block *hclsyntax.Block, ctx *hcl.EvalContext) {
	if len(block.Labels) != 1 {
		r.addError(block.DefRange(), "gradient block needs exactly one name label")
		return
	}
	name := block.Labels[0]
	prefix := "gradient." + name

	if _, dup := r.Gradients[name]; dup {
		r.addError(block.DefRange(), fmt.Sprintf("gradient %q defined more than once", name))
	} else {
		r.Gradients[name] = r.index.rangeOf(block.DefRange())
	}

	for _, nested := range block.Body.Blocks {
		r.addError(nested.DefRange(), fmt.Sprintf("%s: unexpected block %q", prefix, nested.Type))
	}

	for _, required := range []string{"from", "to"} {
		if _, ok := block.Body.Attributes[required]; !ok {
			r.addError(block.DefRange(), fmt.Sprintf("%s: missing required attribute %q", prefix, required))
		}
	}

	for attrName, attr := range block.Body.Attributes {
		if !gradientAttributes[attrName] {
			r.addError(attr.NameRange, fmt.Sprintf("%s: unsupported attribute %q", prefix, attrName))
		}
	}

	for _, colorAttr := range []string{"from", "to"} {
		if attr, ok := block.Body.Attributes[colorAttr]; ok {
			r.resolveColorAttr(attr, ctx, prefix+"."+colorAttr)
		}
	}

	if attr, ok := block.Body.Attributes["space"]; ok {
		val, diags := attr.Expr.Value(ctx)
		switch {
		case diags.HasErrors():
			r.addError(attr.SrcRange, fmt.Sprintf("evaluating %s.space: %s", prefix, diags.Error()))
		case val.IsNull() || !val.IsKnown() || val.Type() != cty.String:
			r.addError(attr.SrcRange, fmt.Sprintf("%s.space: expected a string", prefix))
		default:
			if _, err := gradient.ParseSpace(val.AsString()); err != nil {
				r.addError(attr.Expr.Range(), fmt.Sprintf("%s.space: %s", prefix, err))
			}
		}
	}

	if attr, ok := block.Body.Attributes["steps"]; ok {
		val, diags := attr.Expr.Value(ctx)
		switch {
		case diags.HasErrors():
			r.addError(attr.SrcRange, fmt.Sprintf("evaluating %s.steps: %s", prefix, diags.Error()))
		case val.IsNull() || !val.IsKnown() || val.Type() != cty.Number:
			r.addError(attr.SrcRange, fmt.Sprintf("%s.steps: expected a number", prefix))
		default:
			bf := val.AsBigFloat()
			n, _ := bf.Int64()
			if !bf.IsInt() {
				r.addError(attr.Expr.Range(), fmt.Sprintf("%s.steps: must be a whole number", prefix))
			} else if n < 2 {
				r.addError(attr.Expr.Range(), fmt.Sprintf("%s.steps: must be at least 2, got %d", prefix, n))
			}
		}
	}
}

// resolveColorAttr evaluates a color-valued attribute, recording either a
// diagnostic or a color location.
func (r *AnalysisResult) resolveColorAttr(attr *hclsyntax.Attribute, ctx *hcl.EvalContext, name string) (color.RGB, bool) {
	val, diags := attr.Expr.Value(ctx)
	if diags.HasErrors() {
		r.addError(attr.SrcRange, fmt.Sprintf("evaluating %s: %s", name, diags.Error()))
		return color.RGB{}, false
	}

	c, err := eval.ResolveColor(val)
	if err != nil {
		r.addError(attr.SrcRange, fmt.Sprintf("%s: %s", name, err.Error()))
		return color.RGB{}, false
	}

	r.Colors = append(r.Colors, ColorLocation{
		Range: r.index.rangeOf(attr.Expr.Range()),
		Color: c,
		IsRef: isReferenceExpr(attr.Expr),
	})
	return c, true
}

// isReferenceExpr returns true if the expression is a scope traversal
// (e.g. palette.base) rather than a literal value.
func isReferenceExpr(expr hclsyntax.Expression) bool {
	switch expr.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		return true
	case *hclsyntax.RelativeTraversalExpr:
		return true
	default:
		return false
	}
}
