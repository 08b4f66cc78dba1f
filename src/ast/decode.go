package ast

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrInvalidTree is returned when the parser output is not an ESTree object
var ErrInvalidTree = errors.New("invalid syntax tree")

// Decode builds a tree from ESTree JSON. Object keys keep their document
// order; unknown fields are carried as opaque values.
func Decode(data []byte) (*Node, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidTree)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: root is not an object", ErrInvalidTree)
	}
	n := decodeObject(root)
	if n.Type == "" {
		return nil, fmt.Errorf("%w: root has no type", ErrInvalidTree)
	}
	return n, nil
}

func decodeObject(obj gjson.Result) *Node {
	n := &Node{}
	obj.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		switch {
		case k == "type" && value.Type == gjson.String:
			n.Type = value.String()
		case k == "loc" && value.IsObject():
			n.Loc = decodeLoc(value)
		case k == "parent":
			// back-reference, dropped
		default:
			n.fields = append(n.fields, Field{Key: k, Value: decodeValue(value)})
		}
		return true
	})
	return n
}

func decodeValue(v gjson.Result) any {
	switch {
	case v.IsObject():
		return decodeObject(v)
	case v.IsArray():
		items := v.Array()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = decodeValue(item)
		}
		return out
	}
	switch v.Type {
	case gjson.String:
		return v.String()
	case gjson.Number:
		return v.Float()
	case gjson.True:
		return true
	case gjson.False:
		return false
	default:
		return nil
	}
}

func decodeLoc(v gjson.Result) *SourceLocation {
	return &SourceLocation{
		Start: Position{
			Line:   int(v.Get("start.line").Int()),
			Column: int(v.Get("start.column").Int()),
		},
		End: Position{
			Line:   int(v.Get("end.line").Int()),
			Column: int(v.Get("end.column").Int()),
		},
	}
}
