package parser

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"quality-analyzer/src/ast"
	"quality-analyzer/src/util"
)

// CommandParser runs an external program with the source on stdin and reads
// the ESTree JSON it writes to stdout. The file path is appended as the last
// argument so the program can pick a grammar.
type CommandParser struct {
	command string
	args    []string
}

// NewCommandParser creates a parser backed by an external command
func NewCommandParser(command string, args []string) *CommandParser {
	return &CommandParser{command: command, args: args}
}

// Parse runs the command. The process is killed when ctx expires.
func (p *CommandParser) Parse(ctx context.Context, path string, content []byte) (*ast.Node, error) {
	args := append(append([]string{}, p.args...), path)
	cmd := exec.CommandContext(ctx, p.command, args...)
	cmd.Stdin = bytes.NewReader(content)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	util.Debug("Running parser %s for %s", p.command, path)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, deadlineErr(ctx, path, ctx.Err())
		}
		return nil, fmt.Errorf("parser command failed for %s: %w: %s", path, err, strings.TrimSpace(stderr.String()))
	}

	tree, err := ast.Decode(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}
