package model

import (
	"strings"

	"quality-analyzer/src/ast"
)

// ParsedFile is a source file together with its syntax tree. It is
// immutable once produced and owned by the caller for one detection pass.
type ParsedFile struct {
	Path        string
	Language    string
	Content     string
	AST         *ast.Node
	LinesOfCode int
}

// Snippet returns the source lines start..end (1-based, inclusive), clamped
// to the file
func (f *ParsedFile) Snippet(start, end int) string {
	if f == nil || f.Content == "" || start < 1 {
		return ""
	}
	lines := strings.Split(f.Content, "\n")
	if end > len(lines) {
		end = len(lines)
	}
	if start > end {
		return ""
	}
	return strings.Join(lines[start-1:end], "\n")
}
