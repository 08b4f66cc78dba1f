package parser

import (
	"context"
	"fmt"
	"os"

	"quality-analyzer/src/ast"
)

// DefaultSidecarSuffix is appended to a source path to find its tree
const DefaultSidecarSuffix = ".estree.json"

// SidecarParser reads trees a build step has already written next to each
// source file
type SidecarParser struct {
	suffix string
}

// NewSidecarParser creates a parser reading <file><suffix>
func NewSidecarParser(suffix string) *SidecarParser {
	if suffix == "" {
		suffix = DefaultSidecarSuffix
	}
	return &SidecarParser{suffix: suffix}
}

// Parse loads and decodes the sidecar tree; content is not used
func (p *SidecarParser) Parse(ctx context.Context, path string, _ []byte) (*ast.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, deadlineErr(ctx, path, err)
	}

	data, err := os.ReadFile(path + p.suffix)
	if err != nil {
		return nil, fmt.Errorf("reading syntax tree for %s: %w", path, err)
	}

	tree, err := ast.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}
