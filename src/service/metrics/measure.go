package metrics

import (
	"quality-analyzer/src/ast"
	"quality-analyzer/src/model"
)

const anonymousName = "<anonymous>"

// IsFunctionLike reports whether n declares a function body
func IsFunctionLike(n *ast.Node) bool {
	switch n.Type {
	case "FunctionDeclaration", "FunctionExpression", "ArrowFunctionExpression":
		return true
	}
	return false
}

// IsClass reports whether n is a class declaration or expression
func IsClass(n *ast.Node) bool {
	return n.Type == "ClassDeclaration" || n.Type == "ClassExpression"
}

// Functions measures every function-like node in tree order
func Functions(root *ast.Node) []model.FunctionMetrics {
	owners := methodOwners(root)

	var out []model.FunctionMetrics
	ast.Walk(root, func(n, parent *ast.Node) bool {
		if !IsFunctionLike(n) {
			return true
		}

		fm := model.FunctionMetrics{
			Name:           functionName(n, parent),
			Kind:           functionKind(n, parent),
			StartLine:      n.StartLine(),
			EndLine:        n.EndLine(),
			LineCount:      n.LineSpan(),
			ParameterCount: n.Len("params"),
			ClassName:      owners[n],
		}
		if n.Loc != nil {
			fm.Column = n.Loc.Start.Column
		}
		countBranches(n, &fm)

		out = append(out, fm)
		return true
	})
	return out
}

// countBranches computes cyclomatic complexity over the whole subtree,
// nested functions included
func countBranches(fn *ast.Node, fm *model.FunctionMetrics) {
	fm.CyclomaticComplexity = 1
	ast.Walk(fn, func(n, _ *ast.Node) bool {
		switch n.Type {
		case "IfStatement", "ConditionalExpression":
			fm.ConditionalCount++
		case "SwitchCase":
			// default: has a null test and adds no path
			if n.Child("test") == nil {
				return true
			}
			fm.ConditionalCount++
		case "ForStatement", "ForInStatement", "ForOfStatement", "WhileStatement", "DoWhileStatement":
			fm.LoopCount++
		case "CatchClause":
			fm.ConditionalCount++
		case "LogicalExpression":
			op := n.String("operator")
			if op != "&&" && op != "||" {
				return true
			}
			fm.LogicalCount++
		default:
			return true
		}
		fm.CyclomaticComplexity++
		return true
	})
}

func functionKind(n, parent *ast.Node) string {
	switch {
	case parent != nil && parent.Type == "MethodDefinition":
		return "method"
	case n.Type == "ArrowFunctionExpression":
		return "arrow"
	default:
		return "function"
	}
}

// functionName resolves a name from the node or the binding that holds it
func functionName(n, parent *ast.Node) string {
	if name := n.Name("id"); name != "" {
		return name
	}
	if parent == nil {
		return anonymousName
	}

	var name string
	switch parent.Type {
	case "MethodDefinition", "Property", "PropertyDefinition":
		name = keyName(parent)
	case "VariableDeclarator":
		name = parent.Name("id")
	case "AssignmentExpression":
		left := parent.Child("left")
		if left != nil && left.Type == "MemberExpression" {
			name = keyNameOf(left, "property", left.Bool("computed"))
		} else if left != nil && left.Type == "Identifier" {
			name = left.String("name")
		}
	}
	if name == "" {
		return anonymousName
	}
	return name
}

// keyName returns the static key of a property-like node
func keyName(n *ast.Node) string {
	return keyNameOf(n, "key", n.Bool("computed"))
}

func keyNameOf(n *ast.Node, field string, computed bool) string {
	if computed {
		return ""
	}
	key := n.Child(field)
	if key == nil {
		return ""
	}
	switch key.Type {
	case "Identifier", "PrivateIdentifier":
		return key.String("name")
	case "Literal":
		return key.String("value")
	}
	return ""
}

// methodOwners maps method function values to their class name
func methodOwners(root *ast.Node) map[*ast.Node]string {
	owners := make(map[*ast.Node]string)
	for _, class := range ast.Inspect(root, IsClass) {
		name := class.Name("id")
		if name == "" {
			name = anonymousName
		}
		body := class.Child("body")
		for _, member := range body.Children("body") {
			if member.Type != "MethodDefinition" {
				continue
			}
			if value := member.Child("value"); value != nil {
				owners[value] = name
			}
		}
	}
	return owners
}

// Classes measures every class declaration or expression
func Classes(root *ast.Node) []model.ClassMetrics {
	var out []model.ClassMetrics
	for _, class := range ast.Inspect(root, IsClass) {
		cm := model.ClassMetrics{
			Name:      class.Name("id"),
			StartLine: class.StartLine(),
			EndLine:   class.EndLine(),
			LineCount: class.LineSpan(),
		}
		if cm.Name == "" {
			cm.Name = anonymousName
		}
		if class.Loc != nil {
			cm.Column = class.Loc.Start.Column
		}
		for _, member := range class.Child("body").Children("body") {
			if member.Type == "MethodDefinition" {
				cm.MethodCount++
			}
		}
		out = append(out, cm)
	}
	return out
}
