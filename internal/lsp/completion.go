package lsp

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/jsvensson/colorspaces/internal/color"
	"github.com/jsvensson/colorspaces/internal/eval"
	"github.com/jsvensson/colorspaces/internal/gradient"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/zclconf/go-cty/cty/function"
)

// blockContext represents the kind of block the cursor is in.
type blockContext int

const (
	contextRoot     blockContext = iota
	contextMeta                  // inside meta {}
	contextPalette               // inside palette {}
	contextGradient              // inside gradient "name" {}
)

// metaAttributes are the attributes a meta block accepts.
var metaAttributes = []string{"name", "author", "description", "url"}

// gradientAttributeOrder lists gradient attributes in the order they are
// usually written.
var gradientAttributeOrder = []string{"from", "to", "space", "steps"}

// topLevelSnippets are the snippets offered outside any block.
var topLevelSnippets = []struct{ label, snippet string }{
	{"meta", "meta {\n  name = \"$1\"\n}"},
	{"palette", "palette {\n  $0\n}"},
	{"gradient", "gradient \"${1:name}\" {\n  from = $2\n  to   = $3\n}"},
}

// complete produces completion items given the document's palette, its
// content and the cursor position.
func complete(palette map[string]color.RGB, content string, pos protocol.Position) []protocol.CompletionItem {
	ix := newLineIndex(content)
	if int(pos.Line) > ix.lastLine() {
		return nil
	}

	line := ix.line(int(pos.Line))
	textBeforeCursor := line[:ix.column(pos)]

	if items := tryPaletteCompletion(palette, textBeforeCursor); items != nil {
		return items
	}

	lines := strings.Split(content, "\n")
	ctx := determineBlockContext(lines, int(pos.Line))

	attr, value, isValue := valueAtCursor(textBeforeCursor)
	if isValue {
		switch {
		case ctx == contextGradient && attr == "space":
			return spaceCompletions(value)
		case ctx == contextGradient && attr == "steps":
			return nil
		case ctx == contextMeta:
			return nil
		case value == "":
			return valueCompletions()
		}
		return nil
	}

	switch ctx {
	case contextRoot:
		return topLevelCompletions()
	case contextMeta:
		return attributeCompletions(metaAttributes, findDefinedAttributes(lines, int(pos.Line)))
	case contextGradient:
		return attributeCompletions(gradientAttributeOrder, findDefinedAttributes(lines, int(pos.Line)))
	}

	return nil
}

// tryPaletteCompletion returns palette entries when the text before the
// cursor ends in "palette." or a partial entry name after it. The client
// filters on the partial name.
func tryPaletteCompletion(palette map[string]color.RGB, textBeforeCursor string) []protocol.CompletionItem {
	if len(palette) == 0 {
		return nil
	}

	idx := strings.LastIndex(textBeforeCursor, "palette.")
	if idx == -1 {
		return nil
	}
	// "xpalette." is some other identifier
	if idx > 0 && isIdentChar(textBeforeCursor[idx-1]) {
		return nil
	}

	partial := textBeforeCursor[idx+len("palette."):]
	if strings.IndexFunc(partial, func(r rune) bool { return !isIdentRune(r) }) != -1 {
		return nil
	}

	names := make([]string, 0, len(palette))
	for name := range palette {
		names = append(names, name)
	}
	sort.Strings(names)

	kind := protocol.CompletionItemKindColor
	items := make([]protocol.CompletionItem, 0, len(names))
	for _, name := range names {
		hex := eval.Encode(palette[name])
		items = append(items, protocol.CompletionItem{
			Label:  name,
			Kind:   &kind,
			Detail: &hex,
		})
	}
	return items
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// valueAtCursor reports whether the cursor is in the value of an
// attribute, returning the attribute name and the value typed so far.
func valueAtCursor(textBeforeCursor string) (attr, value string, ok bool) {
	name, value, found := strings.Cut(textBeforeCursor, "=")
	if !found {
		return "", "", false
	}
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, " \t{}\"") {
		return "", "", false
	}
	return name, strings.TrimSpace(value), true
}

// spaceCompletions offers the interpolation space names. When no quote has
// been typed yet the names are inserted quoted.
func spaceCompletions(value string) []protocol.CompletionItem {
	quoted := false
	if value != "" {
		rest, ok := strings.CutPrefix(value, `"`)
		if !ok || strings.Contains(rest, `"`) {
			return nil
		}
		quoted = true
	}

	kind := protocol.CompletionItemKindEnumMember
	items := make([]protocol.CompletionItem, 0, len(gradient.SpaceNames))
	for _, name := range gradient.SpaceNames {
		item := protocol.CompletionItem{
			Label: name,
			Kind:  &kind,
		}
		if !quoted {
			text := `"` + name + `"`
			item.InsertText = &text
		}
		items = append(items, item)
	}
	return items
}

// valueCompletions returns completion items for a color value position:
// one snippet per color function plus a palette reference trigger.
func valueCompletions() []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet

	funcs := eval.Functions()
	names := make([]string, 0, len(funcs))
	for name := range funcs {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]protocol.CompletionItem, 0, len(names)+1)
	for _, name := range names {
		snippet, detail := functionSnippet(name, funcs[name])
		items = append(items, protocol.CompletionItem{
			Label:            name,
			Kind:             completionKindPtr(protocol.CompletionItemKindFunction),
			Detail:           &detail,
			Documentation:    funcs[name].Description(),
			InsertText:       &snippet,
			InsertTextFormat: &snippetFormat,
		})
	}

	paletteSnippet := "palette."
	items = append(items, protocol.CompletionItem{
		Label:      "palette",
		Kind:       completionKindPtr(protocol.CompletionItemKindVariable),
		Detail:     strPtr("palette reference"),
		InsertText: &paletteSnippet,
	})

	return items
}

// functionSnippet builds a snippet with one tab stop per parameter, and the
// signature shown as detail. A space parameter defaults to "lch".
func functionSnippet(name string, fn function.Function) (snippet, detail string) {
	params := fn.Params()
	stops := make([]string, len(params))
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
		stops[i] = fmt.Sprintf("${%d:%s}", i+1, p.Name)
		if p.Name == "space" {
			stops[i] = fmt.Sprintf(`"${%d:lch}"`, i+1)
		}
	}
	snippet = name + "(" + strings.Join(stops, ", ") + ")"
	detail = name + "(" + strings.Join(names, ", ") + ")"
	return snippet, detail
}

// determineBlockContext scans from the top of the file down to the cursor
// line to determine which block the cursor is in, using brace nesting.
func determineBlockContext(lines []string, cursorLine int) blockContext {
	var stack []string

	for i := 0; i <= cursorLine && i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		opens := strings.Count(line, "{")
		closes := strings.Count(line, "}")

		if opens > 0 {
			if parts := strings.Fields(line); len(parts) >= 1 {
				for range opens {
					stack = append(stack, parts[0])
				}
			}
		}

		for range closes {
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if len(stack) == 0 {
		return contextRoot
	}

	switch stack[len(stack)-1] {
	case "meta":
		return contextMeta
	case "palette":
		return contextPalette
	case "gradient":
		return contextGradient
	default:
		return contextRoot
	}
}

// attributeCompletions offers the given attribute names, skipping those
// already defined in the block.
func attributeCompletions(names []string, defined map[string]bool) []protocol.CompletionItem {
	kind := protocol.CompletionItemKindProperty

	var items []protocol.CompletionItem
	for _, name := range names {
		if defined[name] {
			continue
		}
		text := name + " = "
		items = append(items, protocol.CompletionItem{
			Label:      name,
			Kind:       &kind,
			InsertText: &text,
		})
	}
	return items
}

// findDefinedAttributes scans the current block (from the nearest opening
// brace before cursorLine to the closing brace after it) and returns the
// attribute names already defined.
func findDefinedAttributes(lines []string, cursorLine int) map[string]bool {
	defined := make(map[string]bool)

	startLine := 0
	depth := 0
	for i := cursorLine; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		depth += strings.Count(line, "}") - strings.Count(line, "{")
		if depth < 0 {
			startLine = i
			break
		}
	}

	endLine := len(lines) - 1
	depth = 0
	for i := cursorLine; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if depth < 0 {
			endLine = i
			break
		}
	}

	for i := startLine; i <= endLine; i++ {
		line := strings.TrimSpace(lines[i])
		if eqIdx := strings.Index(line, "="); eqIdx > 0 {
			name := strings.TrimSpace(line[:eqIdx])
			if !strings.ContainsAny(name, " {") {
				defined[name] = true
			}
		}
	}

	return defined
}

// topLevelCompletions returns block snippets for the top level.
func topLevelCompletions() []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet
	kind := protocol.CompletionItemKindSnippet

	items := make([]protocol.CompletionItem, 0, len(topLevelSnippets))
	for _, s := range topLevelSnippets {
		snippet := s.snippet
		items = append(items, protocol.CompletionItem{
			Label:            s.label,
			Kind:             &kind,
			InsertText:       &snippet,
			InsertTextFormat: &snippetFormat,
		})
	}
	return items
}

func completionKindPtr(k protocol.CompletionItemKind) *protocol.CompletionItemKind {
	return &k
}

// textDocumentCompletion handles textDocument/completion requests.
func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	uri := string(params.TextDocument.URI)

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	return complete(s.docs.Palette(uri), content, params.Position), nil
}
