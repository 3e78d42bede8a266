package lsp

import (
	"unicode/utf16"

	"github.com/hashicorp/hcl/v2"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// lineIndex maps between byte offsets in a document and LSP positions.
// LSP characters count UTF-16 code units within a line, while HCL tracks
// byte offsets, so every conversion goes through the line text.
type lineIndex struct {
	content string
	starts  []int // byte offset of the first byte of each line
}

func newLineIndex(content string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{content: content, starts: starts}
}

// utf16Len returns the number of UTF-16 code units needed to encode s.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// lineBounds returns the byte offsets of the start and end of line n,
// excluding the trailing newline. Lines past the end of the document
// collapse to the end of content.
func (ix *lineIndex) lineBounds(n int) (int, int) {
	if n < 0 || n >= len(ix.starts) {
		return len(ix.content), len(ix.content)
	}
	start := ix.starts[n]
	end := len(ix.content)
	if n+1 < len(ix.starts) {
		end = ix.starts[n+1] - 1
	}
	return start, end
}

// line returns the text of line n without its newline.
func (ix *lineIndex) line(n int) string {
	start, end := ix.lineBounds(n)
	return ix.content[start:end]
}

// lastLine returns the zero-based number of the final line.
func (ix *lineIndex) lastLine() int {
	return len(ix.starts) - 1
}

// position converts an HCL position to an LSP position. The character is
// derived from pos.Byte rather than pos.Column, which HCL counts in
// grapheme clusters.
func (ix *lineIndex) position(pos hcl.Pos) protocol.Position {
	line := min(max(pos.Line-1, 0), ix.lastLine())
	start, end := ix.lineBounds(line)
	b := min(max(pos.Byte, start), end)
	return protocol.Position{
		Line:      uint32(line),
		Character: uint32(utf16Len(ix.content[start:b])),
	}
}

// rangeOf converts an HCL range to an LSP range.
func (ix *lineIndex) rangeOf(r hcl.Range) protocol.Range {
	return protocol.Range{
		Start: ix.position(r.Start),
		End:   ix.position(r.End),
	}
}

// offset converts an LSP position to a byte offset into content. A
// character past the end of its line clamps to the line end; a position
// inside a surrogate pair rounds up to the next rune.
func (ix *lineIndex) offset(p protocol.Position) int {
	start, end := ix.lineBounds(int(p.Line))
	want := int(p.Character)
	units := 0
	for i, r := range ix.content[start:end] {
		if units >= want {
			return start + i
		}
		units += utf16.RuneLen(r)
	}
	return end
}

// column returns the byte offset of p within its line.
func (ix *lineIndex) column(p protocol.Position) int {
	start, _ := ix.lineBounds(int(p.Line))
	return ix.offset(p) - start
}
