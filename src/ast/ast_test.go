package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTree = `{
  "type": "Program",
  "loc": {"start": {"line": 1, "column": 0}, "end": {"line": 4, "column": 1}},
  "range": [0, 42],
  "body": [
    {
      "type": "FunctionDeclaration",
      "loc": {"start": {"line": 1, "column": 0}, "end": {"line": 4, "column": 1}},
      "id": {"type": "Identifier", "name": "compute"},
      "params": [{"type": "Identifier", "name": "a"}, {"type": "Identifier", "name": "b"}],
      "parent": {"type": "Program"},
      "body": {
        "type": "BlockStatement",
        "body": [
          {"type": "ReturnStatement", "argument": {
            "type": "BinaryExpression", "operator": "+",
            "left": {"type": "Identifier", "name": "a"},
            "right": {"type": "Literal", "value": 1, "raw": "1"}
          }}
        ]
      }
    }
  ]
}`

func TestDecode(t *testing.T) {
	root, err := Decode([]byte(sampleTree))
	require.NoError(t, err)

	assert.Equal(t, "Program", root.Type)
	assert.Equal(t, 1, root.StartLine())
	assert.Equal(t, 4, root.EndLine())

	fns := root.Children("body")
	require.Len(t, fns, 1)
	fn := fns[0]
	assert.Equal(t, "FunctionDeclaration", fn.Type)
	assert.Equal(t, "compute", fn.Name("id"))
	assert.Equal(t, 2, fn.Len("params"))
	assert.Nil(t, fn.Get("parent"), "parent back-reference must be dropped")
	assert.Equal(t, 4, fn.LineSpan())

	var keys []string
	for _, f := range fn.Fields() {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{"id", "params", "body"}, keys, "document order is preserved")

	lit := Inspect(root, func(n *Node) bool { return n.Type == "Literal" })
	require.Len(t, lit, 1)
	assert.Equal(t, float64(1), lit[0].Get("value"))
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `{"type": "Program"`},
		{"array root", `[1, 2]`},
		{"untyped root", `{"body": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			assert.ErrorIs(t, err, ErrInvalidTree)
		})
	}
}

func TestWalk_SkipsBackReferences(t *testing.T) {
	parent := New("Program")
	child := New("ExpressionStatement")
	// A cyclic back-reference would recurse forever if traversed.
	child.Set("parent", parent)
	parent.Set("body", []*Node{child})
	parent.Set("loc", New("Bogus"))

	var seen []string
	Walk(parent, func(n, p *Node) bool {
		seen = append(seen, n.Type)
		if n == child {
			assert.Same(t, parent, p)
		}
		return true
	})
	assert.Equal(t, []string{"Program", "ExpressionStatement"}, seen)
}

func TestWalk_PruneChildren(t *testing.T) {
	inner := New("Identifier").Set("name", "x")
	fn := New("FunctionDeclaration").Set("id", inner)
	root := New("Program").Set("body", []*Node{fn})

	var seen []string
	Walk(root, func(n, _ *Node) bool {
		seen = append(seen, n.Type)
		return n.Type != "FunctionDeclaration"
	})
	assert.Equal(t, []string{"Program", "FunctionDeclaration"}, seen)
}

func TestSet_ReplacesField(t *testing.T) {
	n := New("Literal").Set("value", "a").Set("value", "b")
	assert.Len(t, n.Fields(), 1)
	assert.Equal(t, "b", n.String("value"))
}

func TestName_IgnoresNonIdentifiers(t *testing.T) {
	n := New("Property").Set("key", New("Literal").Set("value", "x"))
	assert.Equal(t, "", n.Name("key"))
}
