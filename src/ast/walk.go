package ast

// skippedFields are never traversed. The tree is only reachable through
// child-pointing fields; parent back-references and position metadata are
// excluded so traversal can never loop.
var skippedFields = map[string]bool{
	"parent": true,
	"loc":    true,
	"range":  true,
	"start":  true,
	"end":    true,
}

// IsSkippedField reports whether a field is excluded from traversal
func IsSkippedField(key string) bool {
	return skippedFields[key]
}

// Visitor is called for every node with its parent (nil for the root).
// Returning false skips the node's children.
type Visitor func(n, parent *Node) bool

// Walk traverses the tree depth-first in field order
func Walk(root *Node, visit Visitor) {
	walk(root, nil, visit)
}

func walk(n, parent *Node, visit Visitor) {
	if n == nil {
		return
	}
	if !visit(n, parent) {
		return
	}
	for _, f := range n.fields {
		if skippedFields[f.Key] {
			continue
		}
		switch v := f.Value.(type) {
		case *Node:
			walk(v, n, visit)
		case []any:
			for _, item := range v {
				if c, ok := item.(*Node); ok {
					walk(c, n, visit)
				}
			}
		}
	}
}

// Inspect traverses the subtree below n (n included) and collects every node
// for which match returns true
func Inspect(n *Node, match func(*Node) bool) []*Node {
	var out []*Node
	Walk(n, func(c, _ *Node) bool {
		if match(c) {
			out = append(out, c)
		}
		return true
	})
	return out
}
