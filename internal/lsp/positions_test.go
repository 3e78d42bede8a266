package lsp

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestLineIndex_Position(t *testing.T) {
	// Line 1 holds a two-byte "é" and a four-byte emoji
	content := "palette {\n  café = \"\U0001F308\"\n}"
	ix := newLineIndex(content)

	tests := []struct {
		name string
		pos  hcl.Pos
		want protocol.Position
	}{
		{"origin", hcl.Pos{Line: 1, Column: 1, Byte: 0}, protocol.Position{Line: 0, Character: 0}},
		{"ascii", hcl.Pos{Line: 1, Column: 9, Byte: 8}, protocol.Position{Line: 0, Character: 8}},
		{"after two-byte rune", hcl.Pos{Line: 2, Column: 7, Byte: 17}, protocol.Position{Line: 1, Character: 6}},
		{"after surrogate pair", hcl.Pos{Line: 2, Column: 11, Byte: 25}, protocol.Position{Line: 1, Character: 12}},
		{"zero position", hcl.Pos{}, protocol.Position{Line: 0, Character: 0}},
		{"line past end", hcl.Pos{Line: 9, Column: 1, Byte: 40}, protocol.Position{Line: 2, Character: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ix.position(tt.pos); got != tt.want {
				t.Errorf("position(%+v) = %+v, want %+v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestLineIndex_Offset(t *testing.T) {
	content := "palette {\n  café = \"\U0001F308\"\n}"
	ix := newLineIndex(content)

	tests := []struct {
		name string
		pos  protocol.Position
		want int
	}{
		{"origin", protocol.Position{Line: 0, Character: 0}, 0},
		{"after two-byte rune", protocol.Position{Line: 1, Character: 6}, 17},
		{"after surrogate pair", protocol.Position{Line: 1, Character: 12}, 25},
		{"inside surrogate pair rounds up", protocol.Position{Line: 1, Character: 11}, 25},
		{"past end of line clamps", protocol.Position{Line: 1, Character: 80}, 26},
		{"past end of document", protocol.Position{Line: 7, Character: 0}, len(content)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ix.offset(tt.pos); got != tt.want {
				t.Errorf("offset(%+v) = %d, want %d", tt.pos, got, tt.want)
			}
		})
	}
}

func TestLineIndex_RoundTrip(t *testing.T) {
	content := "a\n  \"\U0001F308\" é x\n"
	ix := newLineIndex(content)

	for b := range len(content) + 1 {
		start, end := ix.lineBounds(lineOf(content, b))
		if b < start || b > end {
			continue
		}
		// Skip offsets in the middle of a multi-byte rune
		if b < len(content) && content[b]&0xc0 == 0x80 {
			continue
		}
		p := ix.position(hcl.Pos{Line: lineOf(content, b) + 1, Byte: b})
		if got := ix.offset(p); got != b {
			t.Errorf("offset(position(%d)) = %d", b, got)
		}
	}
}

func lineOf(content string, b int) int {
	n := 0
	for i := 0; i < b && i < len(content); i++ {
		if content[i] == '\n' {
			n++
		}
	}
	return n
}
