package hcl

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/vsgen/internal/codegen"
	"github.com/vk/vsgen/internal/graph"
)

// isExprDefined reports whether an optional attribute was present in the source. The
// decoder fills omitted hcl.Expression fields with a static null expression.
func isExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	if len(expr.Variables()) > 0 {
		return true
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return true
	}
	return !val.IsNull()
}

// literalFromCty converts a constant HCL value into a literal. Collections become
// Python expression literals.
func literalFromCty(v cty.Value) (graph.Literal, error) {
	if v.IsNull() {
		return graph.None(), nil
	}
	if !v.IsWhollyKnown() {
		return graph.None(), fmt.Errorf("value must be known at load time")
	}

	ty := v.Type()
	switch {
	case ty.Equals(cty.String):
		return graph.String(v.AsString()), nil
	case ty.Equals(cty.Number):
		return graph.Number(numberText(v)), nil
	case ty.Equals(cty.Bool):
		return graph.Bool(v.True()), nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		var items []string
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			lit, err := literalFromCty(ev)
			if err != nil {
				return graph.None(), err
			}
			items = append(items, codegen.RenderLiteral(lit))
		}
		return graph.Expression("[" + strings.Join(items, ", ") + "]"), nil
	case ty.IsMapType() || ty.IsObjectType():
		var items []string
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			lit, err := literalFromCty(ev)
			if err != nil {
				return graph.None(), err
			}
			items = append(items, codegen.RenderLiteral(graph.String(k.AsString()))+": "+codegen.RenderLiteral(lit))
		}
		return graph.Expression("{" + strings.Join(items, ", ") + "}"), nil
	}
	return graph.None(), fmt.Errorf("unsupported value type %s", ty.FriendlyName())
}

// numberText keeps integers integral, however large, and writes other numbers in their
// shortest form.
func numberText(v cty.Value) string {
	var i int64
	if err := gocty.FromCtyValue(v, &i); err == nil {
		return fmt.Sprintf("%d", i)
	}
	f := v.AsBigFloat()
	if f.IsInt() {
		return f.Text('f', 0)
	}
	return f.Text('g', -1)
}

// evalLiteral evaluates a constant expression into a literal.
func evalLiteral(expr hcl.Expression) (graph.Literal, error) {
	if !isExprDefined(expr) {
		return graph.None(), nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return graph.None(), diags
	}
	return literalFromCty(val)
}

// evalProperties evaluates a `properties = { ... }` object into literals.
func evalProperties(expr hcl.Expression) (map[string]graph.Literal, error) {
	out := make(map[string]graph.Literal)
	if !isExprDefined(expr) {
		return out, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	ty := val.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("properties must be an object, got %s", ty.FriendlyName())
	}
	for it := val.ElementIterator(); it.Next(); {
		k, ev := it.Element()
		lit, err := literalFromCty(ev)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", k.AsString(), err)
		}
		out[k.AsString()] = lit
	}
	return out, nil
}

// literalToCty is the inverse used for template property variables: strings keep their
// raw text, everything else is rendered as Python source.
func literalToCty(l graph.Literal) cty.Value {
	if l.Kind == graph.LiteralString {
		return cty.StringVal(l.Text)
	}
	return cty.StringVal(codegen.RenderLiteral(l))
}
