package lsp

import (
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// referenceRoots are the block names that expressions can traverse into.
var referenceRoots = map[string]bool{
	"palette": true,
}

// blockRefAtCursor extracts the reference path up to the cursor position,
// where col is a byte offset into line.
// If the cursor is on "palette" in "palette.base", it returns "palette".
// If the cursor is on "base", it returns "palette.base".
// Returns "" if the cursor is not on a reference.
func blockRefAtCursor(line string, col int) string {
	if col < 0 || col >= len(line) {
		return ""
	}

	end := col
	for end < len(line) && isIdentChar(line[end]) {
		end++
	}
	start := col
	for start > 0 && isIdentChar(line[start-1]) {
		start--
	}

	word := line[start:end]
	parts := strings.Split(word, ".")
	if !referenceRoots[parts[0]] {
		return ""
	}

	// A bare block name only counts when a dot follows it
	if len(parts) == 1 {
		return ""
	}

	cursorInWord := col - start
	var resultParts []string
	currentPos := 0
	for _, part := range parts {
		if currentPos <= cursorInWord {
			resultParts = append(resultParts, part)
		}
		currentPos += len(part) + 1 // +1 for dot
	}

	return strings.Join(resultParts, ".")
}

// isIdentChar returns true if the byte can be part of a dotted reference.
// Bytes of multi-byte UTF-8 sequences count, since HCL identifiers may
// contain any Unicode letter.
func isIdentChar(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b == '_' || b == '-' || b == '.' ||
		b >= 0x80
}

// definition returns the location of the palette entry referenced at the
// cursor. Returns nil if the cursor is not on a reference or the entry is
// not defined.
func definition(result *AnalysisResult, content string, uri string, pos protocol.Position) *protocol.Location {
	if result == nil {
		return nil
	}

	ix := newLineIndex(content)
	if int(pos.Line) > ix.lastLine() {
		return nil
	}

	ref := blockRefAtCursor(ix.line(int(pos.Line)), ix.column(pos))
	if ref == "" {
		return nil
	}

	symRange, ok := result.Symbols[ref]
	if !ok {
		return nil
	}

	return &protocol.Location{
		URI:   protocol.DocumentUri(uri),
		Range: symRange,
	}
}

// textDocumentDefinition handles textDocument/definition requests.
func (s *Server) textDocumentDefinition(_ *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	uri := string(params.TextDocument.URI)

	result := s.getResult(uri)
	if result == nil {
		return nil, nil
	}

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	loc := definition(result, content, uri, params.Position)
	if loc == nil {
		return nil, nil
	}
	return loc, nil
}
