package detector

import (
	"github.com/cespare/xxhash/v2"

	"quality-analyzer/src/ast"
)

// Generic markers that replace names and literal values in token streams
const (
	identifierToken = "IDENTIFIER"
	literalToken    = "LITERAL"
)

var extractableTypes = map[string]bool{
	"FunctionDeclaration":     true,
	"FunctionExpression":      true,
	"ArrowFunctionExpression": true,
	"MethodDefinition":        true,
	"BlockStatement":          true,
	"IfStatement":             true,
	"ForStatement":            true,
	"ForInStatement":          true,
	"ForOfStatement":          true,
	"WhileStatement":          true,
	"DoWhileStatement":        true,
	"SwitchStatement":         true,
}

var tokenSeparator = []byte{0}

// CodeBlock is a normalized region of a file eligible for duplicate matching
type CodeBlock struct {
	File        string
	Type        string
	StartLine   int
	EndLine     int
	Tokens      []string
	Fingerprint uint64

	distinct map[string]struct{}
	seq      int
}

// Lines returns the inclusive number of lines the block covers
func (b *CodeBlock) Lines() int {
	return b.EndLine - b.StartLine + 1
}

// extractBlocks returns the blocks of a tree that reach both size minimums
func extractBlocks(path string, root *ast.Node, minLines, minTokens int) []*CodeBlock {
	var blocks []*CodeBlock
	ast.Walk(root, func(n, _ *ast.Node) bool {
		if !extractableTypes[n.Type] || n.Loc == nil {
			return true
		}
		if n.LineSpan() < minLines {
			return true
		}

		tokens := tokenize(n, nil)
		if len(tokens) < minTokens {
			return true
		}

		blocks = append(blocks, newCodeBlock(path, n, tokens))
		return true
	})
	return blocks
}

func newCodeBlock(path string, n *ast.Node, tokens []string) *CodeBlock {
	distinct := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		distinct[t] = struct{}{}
	}
	return &CodeBlock{
		File:        path,
		Type:        n.Type,
		StartLine:   n.StartLine(),
		EndLine:     n.EndLine(),
		Tokens:      tokens,
		Fingerprint: fingerprint(tokens),
		distinct:    distinct,
	}
}

// tokenize linearizes a subtree. Names and literal values are replaced by
// generic markers so renamed copies produce the same stream.
func tokenize(n *ast.Node, out []string) []string {
	if n.Type != "" {
		out = append(out, n.Type)
	}
	if op := n.String("operator"); op != "" {
		out = append(out, op)
	}

	switch n.Type {
	case "Identifier", "PrivateIdentifier", "JSXIdentifier":
		return append(out, identifierToken)
	case "Literal", "TemplateElement":
		return append(out, literalToken)
	}

	for _, f := range n.Fields() {
		if ast.IsSkippedField(f.Key) {
			continue
		}
		switch v := f.Value.(type) {
		case *ast.Node:
			out = tokenize(v, out)
		case []any:
			for _, item := range v {
				if c, ok := item.(*ast.Node); ok {
					out = tokenize(c, out)
				}
			}
		}
	}
	return out
}

// fingerprint is an order-sensitive hash of a token stream
func fingerprint(tokens []string) uint64 {
	h := xxhash.New()
	for _, t := range tokens {
		_, _ = h.WriteString(t)
		_, _ = h.Write(tokenSeparator)
	}
	return h.Sum64()
}

// similarity is 1 for equal fingerprints, otherwise the count of shared
// distinct tokens over the longer stream length
func similarity(a, b *CodeBlock) float64 {
	if a.Fingerprint == b.Fingerprint {
		return 1
	}

	small, large := a.distinct, b.distinct
	if len(small) > len(large) {
		small, large = large, small
	}
	shared := 0
	for t := range small {
		if _, ok := large[t]; ok {
			shared++
		}
	}

	longest := max(len(a.Tokens), len(b.Tokens))
	if longest == 0 {
		return 0
	}
	return float64(shared) / float64(longest)
}
