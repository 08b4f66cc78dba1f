// Package parser connects the engine to the external parser that turns
// source text into ESTree syntax trees.
package parser

import (
	"context"
	"errors"
	"fmt"

	"quality-analyzer/src/ast"
	"quality-analyzer/src/config"
)

// ErrTimeout is returned when a parse does not finish before its deadline
var ErrTimeout = errors.New("parse timed out")

// Parser produces the syntax tree of one source file
type Parser interface {
	Parse(ctx context.Context, path string, content []byte) (*ast.Node, error)
}

// New creates the parser selected by cfg.Mode
func New(cfg config.ParserConfig) (Parser, error) {
	switch cfg.Mode {
	case "command":
		if cfg.Command == "" {
			return nil, fmt.Errorf("parser mode %q requires parser.command", cfg.Mode)
		}
		return NewCommandParser(cfg.Command, cfg.Args), nil
	case "http":
		if cfg.URL == "" {
			return nil, fmt.Errorf("parser mode %q requires parser.url", cfg.Mode)
		}
		return NewHTTPParser(cfg), nil
	case "sidecar", "":
		return NewSidecarParser(cfg.SidecarSuffix), nil
	default:
		return nil, fmt.Errorf("unknown parser mode %q", cfg.Mode)
	}
}

// deadlineErr maps context expiry onto ErrTimeout
func deadlineErr(ctx context.Context, path string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", path, ErrTimeout)
	}
	return err
}
