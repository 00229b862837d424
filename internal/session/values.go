package session

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/vk/vsgen/internal/codegen"
	"github.com/vk/vsgen/internal/graph"
)

// literalFromJSON converts a raw property value into a literal. Arrays and objects
// become Python expression literals with object keys sorted.
func literalFromJSON(raw json.RawMessage) (graph.Literal, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return graph.None(), err
	}
	return literalFromValue(v)
}

func literalFromValue(v any) (graph.Literal, error) {
	switch val := v.(type) {
	case nil:
		return graph.None(), nil
	case string:
		return graph.String(val), nil
	case json.Number:
		return graph.Number(val.String()), nil
	case bool:
		return graph.Bool(val), nil
	case []any:
		items := make([]string, 0, len(val))
		for _, item := range val {
			lit, err := literalFromValue(item)
			if err != nil {
				return graph.None(), err
			}
			items = append(items, codegen.RenderLiteral(lit))
		}
		return graph.Expression("[" + strings.Join(items, ", ") + "]"), nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		items := make([]string, 0, len(keys))
		for _, k := range keys {
			lit, err := literalFromValue(val[k])
			if err != nil {
				return graph.None(), err
			}
			items = append(items, codegen.RenderLiteral(graph.String(k))+": "+codegen.RenderLiteral(lit))
		}
		return graph.Expression("{" + strings.Join(items, ", ") + "}"), nil
	default:
		return graph.None(), fmt.Errorf("unsupported value of type %T", v)
	}
}
