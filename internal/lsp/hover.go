package lsp

import (
	"fmt"
	"strings"

	"github.com/jsvensson/colorspaces/internal/eval"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// posInRange returns true if pos is within the range [r.Start, r.End).
// The end position is exclusive.
func posInRange(pos protocol.Position, r protocol.Range) bool {
	if pos.Line < r.Start.Line || pos.Line > r.End.Line {
		return false
	}
	if pos.Line == r.Start.Line && pos.Character < r.Start.Character {
		return false
	}
	if pos.Line == r.End.Line && pos.Character >= r.End.Character {
		return false
	}
	return true
}

// extractText extracts the source text at a given LSP range from document
// content. Characters in the range are UTF-16 code units.
func extractText(content string, r protocol.Range) string {
	ix := newLineIndex(content)
	start, end := ix.offset(r.Start), ix.offset(r.End)
	if start > end {
		return ""
	}
	return content[start:end]
}

// hover produces a Hover response for the given cursor position.
// It shows the color's hex encoding followed by its value in every
// supported space. Palette references are headed by their source text.
// Returns nil if no color is found at the position.
func hover(result *AnalysisResult, content string, pos protocol.Position) *protocol.Hover {
	if result == nil {
		return nil
	}

	for _, cl := range result.Colors {
		if !posInRange(pos, cl.Range) {
			continue
		}

		var b strings.Builder
		if cl.IsRef {
			fmt.Fprintf(&b, "**%s**\n\n", extractText(content, cl.Range))
		}
		c := cl.Color
		fmt.Fprintf(&b, "`%s`\n\n```\n%s\n%s\n%s\n%s\n```", eval.Encode(c), c, c.XYZ(), c.LAB(), c.LCH())

		return &protocol.Hover{
			Contents: protocol.MarkupContent{
				Kind:  protocol.MarkupKindMarkdown,
				Value: b.String(),
			},
			Range: &cl.Range,
		}
	}

	return nil
}

// textDocumentHover handles textDocument/hover requests.
func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	uri := string(params.TextDocument.URI)

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	return hover(s.getResult(uri), content, params.Position), nil
}
