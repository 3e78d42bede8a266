package lsp

import (
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/zclconf/go-cty/cty"
)

// Semantic token types, indexed by position in the legend
var semanticTokenTypes = []string{
	"keyword",   // 0: block types (meta, palette, gradient)
	"property",  // 1: attribute names and traversal steps
	"variable",  // 2: roots of traversals that aren't palette
	"namespace", // 3: the "palette" root
	"string",    // 4: string literals and gradient names
	"function",  // 5: mix(), rgb(), xyz(), lab(), lch()
	"number",    // 6: numeric literals
}

// Semantic token modifiers (bit flags)
var semanticTokenModifiers = []string{
	"declaration", // bit 0: defining a new symbol
}

const modDeclaration uint32 = 1 << 0

var tokenTypeIndices map[string]uint32

func init() {
	tokenTypeIndices = make(map[string]uint32, len(semanticTokenTypes))
	for i, t := range semanticTokenTypes {
		tokenTypeIndices[t] = uint32(i)
	}
}

// SemanticToken is a single token before delta encoding. StartChar and
// Length count UTF-16 code units.
type SemanticToken struct {
	Line      uint32
	StartChar uint32
	Length    uint32
	Type      uint32 // index into semanticTokenTypes
	Modifiers uint32 // bit flags
}

// encodeTokens converts tokens to LSP format (5 integers per token),
// delta encoding lines and start characters.
func encodeTokens(tokens []SemanticToken) []uint32 {
	if len(tokens) == 0 {
		return []uint32{}
	}

	sort.Slice(tokens, func(i, j int) bool {
		if tokens[i].Line != tokens[j].Line {
			return tokens[i].Line < tokens[j].Line
		}
		return tokens[i].StartChar < tokens[j].StartChar
	})

	data := make([]uint32, 0, len(tokens)*5)

	var prevLine, prevChar uint32
	for _, tok := range tokens {
		deltaLine := tok.Line - prevLine
		deltaStart := tok.StartChar
		if deltaLine == 0 {
			deltaStart = tok.StartChar - prevChar
		}

		data = append(data, deltaLine, deltaStart, tok.Length, tok.Type, tok.Modifiers)

		prevLine = tok.Line
		prevChar = tok.StartChar
	}

	return data
}

// semanticTokensFull generates semantic tokens for the entire document.
// Documents that fail to parse get no tokens.
func semanticTokensFull(content string) []uint32 {
	file, diags := hclsyntax.ParseConfig([]byte(content), "", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return []uint32{}
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return []uint32{}
	}

	c := &tokenCollector{ix: newLineIndex(content)}
	c.body(body)
	return encodeTokens(c.tokens)
}

type tokenCollector struct {
	ix     *lineIndex
	tokens []SemanticToken
}

// add records a token over rng. Tokens spanning lines are dropped since
// clients without multiline support reject them.
func (c *tokenCollector) add(rng hcl.Range, typ string, mods uint32) {
	start := c.ix.position(rng.Start)
	end := c.ix.position(rng.End)
	if start.Line != end.Line || end.Character <= start.Character {
		return
	}
	c.tokens = append(c.tokens, SemanticToken{
		Line:      start.Line,
		StartChar: start.Character,
		Length:    end.Character - start.Character,
		Type:      tokenTypeIndices[typ],
		Modifiers: mods,
	})
}

func (c *tokenCollector) body(body *hclsyntax.Body) {
	for _, block := range body.Blocks {
		c.add(block.TypeRange, "keyword", 0)
		for _, lr := range block.LabelRanges {
			c.add(lr, "string", modDeclaration)
		}
		c.body(block.Body)
	}

	for _, attr := range body.Attributes {
		c.add(attr.NameRange, "property", modDeclaration)
		c.expr(attr.Expr)
	}
}

func (c *tokenCollector) expr(expr hclsyntax.Expression) {
	switch e := expr.(type) {
	case *hclsyntax.LiteralValueExpr:
		c.literal(e.Val, e.SrcRange)
	case *hclsyntax.TemplateExpr:
		if e.IsStringLiteral() {
			c.add(e.SrcRange, "string", 0)
		}
	case *hclsyntax.TemplateWrapExpr:
		c.expr(e.Wrapped)
	case *hclsyntax.ScopeTraversalExpr:
		c.traversal(e.Traversal)
	case *hclsyntax.RelativeTraversalExpr:
		c.expr(e.Source)
		c.steps(e.Traversal)
	case *hclsyntax.FunctionCallExpr:
		c.add(e.NameRange, "function", 0)
		for _, arg := range e.Args {
			c.expr(arg)
		}
	case *hclsyntax.UnaryOpExpr:
		c.expr(e.Val)
	case *hclsyntax.ParenthesesExpr:
		c.expr(e.Expression)
	}
}

func (c *tokenCollector) literal(val cty.Value, rng hcl.Range) {
	if val.IsNull() || !val.IsKnown() {
		return
	}
	switch val.Type() {
	case cty.String:
		c.add(rng, "string", 0)
	case cty.Number:
		c.add(rng, "number", 0)
	}
}

// traversal tokenizes a reference like palette.base: the root is a
// namespace when it names a referenceable block, each step a property.
func (c *tokenCollector) traversal(trav hcl.Traversal) {
	if len(trav) == 0 {
		return
	}
	if root, ok := trav[0].(hcl.TraverseRoot); ok {
		typ := "variable"
		if referenceRoots[root.Name] {
			typ = "namespace"
		}
		c.add(root.SrcRange, typ, 0)
	}
	c.steps(trav[1:])
}

func (c *tokenCollector) steps(trav hcl.Traversal) {
	for _, step := range trav {
		attr, ok := step.(hcl.TraverseAttr)
		if !ok {
			continue
		}
		// The step's range starts at the dot; the name ends it
		end := attr.SrcRange.End
		start := hcl.Pos{Line: end.Line, Byte: end.Byte - len(attr.Name)}
		c.add(hcl.Range{Start: start, End: end}, "property", 0)
	}
}

// textDocumentSemanticTokensFull handles textDocument/semanticTokens/full requests.
func (s *Server) textDocumentSemanticTokensFull(_ *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	content, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok {
		return &protocol.SemanticTokens{Data: []protocol.UInteger{}}, nil
	}
	return &protocol.SemanticTokens{Data: semanticTokensFull(content)}, nil
}
