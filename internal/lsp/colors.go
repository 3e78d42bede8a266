package lsp

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jsvensson/colorspaces/internal/color"
	"github.com/jsvensson/colorspaces/internal/eval"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// literalPrefixes mark source text that may be replaced by a presentation.
var literalPrefixes = []string{`"`, "#", "rgb(", "xyz(", "lab(", "lch("}

// colorToLSP converts a color to a protocol.Color, clamping each channel to
// the [0, 1] range editors expect.
func colorToLSP(c color.RGB) protocol.Color {
	return protocol.Color{
		Red:   float32(unit(c.R)),
		Green: float32(unit(c.G)),
		Blue:  float32(unit(c.B)),
		Alpha: float32(unit(c.Alpha)),
	}
}

func unit(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

// colorFromLSP converts an editor color back into sRGB.
func colorFromLSP(c protocol.Color) color.RGB {
	return color.RGB{
		R:     float64(c.Red),
		G:     float64(c.Green),
		B:     float64(c.Blue),
		Alpha: float64(c.Alpha),
	}
}

// documentColors converts the analysis result's color locations into LSP ColorInformation items.
func documentColors(result *AnalysisResult) []protocol.ColorInformation {
	if result == nil {
		return []protocol.ColorInformation{}
	}

	infos := make([]protocol.ColorInformation, 0, len(result.Colors))
	for _, cl := range result.Colors {
		infos = append(infos, protocol.ColorInformation{
			Range: cl.Range,
			Color: colorToLSP(cl.Color),
		})
	}
	return infos
}

// num formats a channel rounded to two decimals without trailing zeros.
func num(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// colorPresentation produces color presentation options for a given color and range.
// Literals (quoted hex or one of the space constructors) get a hex presentation
// plus lab() and lch() calls for opaque colors. Palette references and other
// expressions get none, so a reference is never replaced by a literal value.
func colorPresentation(content string, params *protocol.ColorPresentationParams) []protocol.ColorPresentation {
	c := colorFromLSP(params.Color)
	hexStr := eval.Encode(c)

	text := extractText(content, params.Range)

	literal := false
	for _, prefix := range literalPrefixes {
		if strings.HasPrefix(text, prefix) {
			literal = true
			break
		}
	}
	if !literal {
		return []protocol.ColorPresentation{}
	}

	// Keep bare hex bare; everything else becomes a quoted string
	hexText := "\"" + hexStr + "\""
	if strings.HasPrefix(text, "#") {
		hexText = hexStr
	}

	presentations := []protocol.ColorPresentation{
		{
			Label:    hexStr,
			TextEdit: &protocol.TextEdit{Range: params.Range, NewText: hexText},
		},
	}

	// The constructor functions build opaque colors only
	if _, _, _, a := c.Bytes(); a == 0xff && !strings.HasPrefix(text, "#") {
		lab := c.LAB()
		lch := c.LCH()
		for _, call := range []string{
			fmt.Sprintf("lab(%s, %s, %s)", num(lab.L), num(lab.A), num(lab.B)),
			fmt.Sprintf("lch(%s, %s, %s)", num(lch.L), num(lch.C), num(lch.H)),
		} {
			presentations = append(presentations, protocol.ColorPresentation{
				Label:    call,
				TextEdit: &protocol.TextEdit{Range: params.Range, NewText: call},
			})
		}
	}

	return presentations
}

// textDocumentDocumentColor handles textDocument/documentColor requests.
func (s *Server) textDocumentDocumentColor(_ *glsp.Context, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	uri := string(params.TextDocument.URI)
	result := s.getResult(uri)
	return documentColors(result), nil
}

// textDocumentColorPresentation handles textDocument/colorPresentation requests.
func (s *Server) textDocumentColorPresentation(_ *glsp.Context, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	uri := string(params.TextDocument.URI)
	content, ok := s.docs.Get(uri)
	if !ok {
		return []protocol.ColorPresentation{}, nil
	}
	return colorPresentation(content, params), nil
}
