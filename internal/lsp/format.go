package lsp

import (
	"github.com/jsvensson/colorspaces/internal/format"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// fullRange returns the range covering all of content.
func fullRange(content string) protocol.Range {
	ix := newLineIndex(content)
	last := ix.lastLine()
	return protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End: protocol.Position{
			Line:      uint32(last),
			Character: uint32(utf16Len(ix.line(last))),
		},
	}
}

// formatEdits returns a single edit replacing the whole document, or none
// when the document is already formatted.
func formatEdits(content string) ([]protocol.TextEdit, error) {
	formatted, err := format.Format(content)
	if err != nil {
		return nil, err
	}
	if formatted == content {
		return []protocol.TextEdit{}, nil
	}
	return []protocol.TextEdit{
		{Range: fullRange(content), NewText: formatted},
	}, nil
}

// textDocumentFormatting handles textDocument/formatting requests.
func (s *Server) textDocumentFormatting(_ *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	content, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok {
		return nil, nil
	}
	return formatEdits(content)
}
