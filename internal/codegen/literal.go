package codegen

import (
	"strconv"

	"github.com/vk/vsgen/internal/graph"
)

// RenderLiteral writes a literal as Python source. Strings are expected to be valid
// UTF-8, which graph.AddNode enforces; Go escapes such as \u00e9 and \U0001f600 read the
// same in Python.
func RenderLiteral(l graph.Literal) string {
	switch l.Kind {
	case graph.LiteralString:
		return strconv.Quote(l.Text)
	case graph.LiteralNumber:
		if l.Text == "" {
			return "None"
		}
		return l.Text
	case graph.LiteralBool:
		if l.Truthy() {
			return "True"
		}
		return "False"
	case graph.LiteralExpression:
		if l.Text == "" {
			return "None"
		}
		return l.Text
	default:
		return "None"
	}
}
