package detector

import (
	"quality-analyzer/src/ast"
	"quality-analyzer/src/config"
	"quality-analyzer/src/model"
)

func ident(name string, line int) *ast.Node {
	return ast.New("Identifier").Lines(line, line).Set("name", name)
}

func literal(v float64, line int) *ast.Node {
	return ast.New("Literal").Lines(line, line).Set("value", v)
}

func block(start, end int, stmts ...*ast.Node) *ast.Node {
	return ast.New("BlockStatement").Lines(start, end).Set("body", stmts)
}

func funcDecl(name string, start, end int, params []*ast.Node, stmts ...*ast.Node) *ast.Node {
	return ast.New("FunctionDeclaration").Lines(start, end).
		Set("id", ident(name, start)).
		Set("params", params).
		Set("body", block(start, end, stmts...))
}

func program(body ...*ast.Node) *ast.Node {
	end := 1
	for _, n := range body {
		end = max(end, n.EndLine())
	}
	return ast.New("Program").Lines(1, end).Set("body", body)
}

func parsedFile(path string, root *ast.Node) *model.ParsedFile {
	return &model.ParsedFile{Path: path, Language: "javascript", AST: root, LinesOfCode: root.LineSpan()}
}

// assignment builds `<target> = <source> + 1` on one line
func assignment(target, source string, line int) *ast.Node {
	sum := ast.New("BinaryExpression").Lines(line, line).
		Set("operator", "+").
		Set("left", ident(source, line)).
		Set("right", literal(1, line))
	expr := ast.New("AssignmentExpression").Lines(line, line).
		Set("operator", "=").
		Set("left", ident(target, line)).
		Set("right", sum)
	return ast.New("ExpressionStatement").Lines(line, line).Set("expression", expr)
}

// repetitiveFunction spans lines start..start+lines-1 with one assignment per
// inner line; prefix changes every identifier name
func repetitiveFunction(prefix string, start, lines int) *ast.Node {
	var stmts []*ast.Node
	for line := start + 1; line < start+lines-1; line++ {
		stmts = append(stmts, assignment(prefix+"Total", prefix+"Value", line))
	}
	return funcDecl(prefix+"Compute", start, start+lines-1, []*ast.Node{ident(prefix+"Input", start)}, stmts...)
}

func detectorConfig(thresholds config.Thresholds) config.DetectorConfig {
	return config.DetectorConfig{Enabled: true, Thresholds: thresholds}
}

func rules(issues []model.Issue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.Rule
	}
	return out
}
