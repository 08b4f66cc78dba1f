// Package ast models the ESTree-shaped syntax tree produced by the external
// parser. The engine only consumes trees; it never builds them from source.
package ast

// Position is a 1-based line and 0-based column, as ESTree reports them
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// SourceLocation is the span of a node
type SourceLocation struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Field is a single named field of a node. Value is one of *Node, []any,
// string, float64, bool or nil.
type Field struct {
	Key   string
	Value any
}

// Node is a syntax tree node. Fields keep the order the parser emitted them
// in, so traversals and token streams are deterministic.
type Node struct {
	Type   string
	Loc    *SourceLocation
	fields []Field
}

// New creates a node of the given type
func New(typ string) *Node {
	return &Node{Type: typ}
}

// At sets the node location and returns the node
func (n *Node) At(startLine, startCol, endLine, endCol int) *Node {
	n.Loc = &SourceLocation{
		Start: Position{Line: startLine, Column: startCol},
		End:   Position{Line: endLine, Column: endCol},
	}
	return n
}

// Lines sets a line-only location and returns the node
func (n *Node) Lines(startLine, endLine int) *Node {
	return n.At(startLine, 0, endLine, 0)
}

// Set adds or replaces a field and returns the node
func (n *Node) Set(key string, value any) *Node {
	if nodes, ok := value.([]*Node); ok {
		items := make([]any, len(nodes))
		for i, c := range nodes {
			items[i] = c
		}
		value = items
	}
	for i := range n.fields {
		if n.fields[i].Key == key {
			n.fields[i].Value = value
			return n
		}
	}
	n.fields = append(n.fields, Field{Key: key, Value: value})
	return n
}

// Fields returns the node fields in parser order
func (n *Node) Fields() []Field {
	return n.fields
}

// Get returns the raw value of a field, or nil
func (n *Node) Get(key string) any {
	if n == nil {
		return nil
	}
	for _, f := range n.fields {
		if f.Key == key {
			return f.Value
		}
	}
	return nil
}

// Child returns a field holding a single node, or nil
func (n *Node) Child(key string) *Node {
	c, _ := n.Get(key).(*Node)
	return c
}

// Children returns the nodes held in an array field
func (n *Node) Children(key string) []*Node {
	items, _ := n.Get(key).([]any)
	var out []*Node
	for _, item := range items {
		if c, ok := item.(*Node); ok && c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the length of an array field
func (n *Node) Len(key string) int {
	items, _ := n.Get(key).([]any)
	return len(items)
}

// String returns a string field, or ""
func (n *Node) String(key string) string {
	s, _ := n.Get(key).(string)
	return s
}

// Bool returns a bool field, or false
func (n *Node) Bool(key string) bool {
	b, _ := n.Get(key).(bool)
	return b
}

// Name returns the identifier name stored under key (e.g. "id" or "key")
func (n *Node) Name(key string) string {
	c := n.Child(key)
	if c == nil || c.Type != "Identifier" && c.Type != "PrivateIdentifier" {
		return ""
	}
	return c.String("name")
}

// StartLine returns the first line of the node, or 0 without a location
func (n *Node) StartLine() int {
	if n == nil || n.Loc == nil {
		return 0
	}
	return n.Loc.Start.Line
}

// EndLine returns the last line of the node, or 0 without a location
func (n *Node) EndLine() int {
	if n == nil || n.Loc == nil {
		return 0
	}
	return n.Loc.End.Line
}

// LineSpan returns the inclusive number of lines the node covers
func (n *Node) LineSpan() int {
	if n == nil || n.Loc == nil {
		return 0
	}
	return n.Loc.End.Line - n.Loc.Start.Line + 1
}
