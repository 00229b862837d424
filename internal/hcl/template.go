package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/vsgen/internal/config"
	"github.com/vk/vsgen/internal/graph"
)

// propertyVar is the template variable holding a node's properties, e.g.
// ${property.value}.
const propertyVar = "property"

// inlineTemplate is the unevaluated `inline` expression of a kind.
type inlineTemplate struct {
	kind string
	expr hcl.Expression
}

var _ config.InlineSource = (*inlineTemplate)(nil)

// newInlineTemplate checks that the template only references declared inputs,
// declared properties and the template functions.
func newInlineTemplate(kind string, expr hcl.Expression, inputs, properties map[string]bool) (*inlineTemplate, error) {
	for _, tr := range expr.Variables() {
		root := tr.RootName()
		if root == propertyVar {
			if len(tr) < 2 {
				continue
			}
			if attr, ok := tr[1].(hcl.TraverseAttr); ok && !properties[attr.Name] {
				return nil, fmt.Errorf("inline template of kind %q references undeclared property %q at %s", kind, attr.Name, tr.SourceRange())
			}
			continue
		}
		if !inputs[root] {
			return nil, fmt.Errorf("inline template of kind %q references unknown input %q at %s", kind, root, tr.SourceRange())
		}
	}
	return &inlineTemplate{kind: kind, expr: expr}, nil
}

// Instantiate binds the properties of one node.
func (t *inlineTemplate) Instantiate(properties map[string]graph.Literal) graph.InlineTemplate {
	props := make(map[string]cty.Value, len(properties))
	for name, l := range properties {
		props[name] = literalToCty(l)
	}
	return &boundTemplate{inlineTemplate: t, props: props}
}

// boundTemplate is an inline template with its node's properties bound.
type boundTemplate struct {
	*inlineTemplate
	props map[string]cty.Value
}

// Expand evaluates the template with the resolved argument expressions.
func (b *boundTemplate) Expand(args map[string]string) (string, error) {
	vars := make(map[string]cty.Value, len(args)+1)
	for name, expr := range args {
		vars[name] = cty.StringVal(expr)
	}
	vars[propertyVar] = cty.ObjectVal(b.props)

	val, diags := b.expr.Value(&hcl.EvalContext{
		Variables: vars,
		Functions: templateFunctions(),
	})
	if diags.HasErrors() {
		return "", fmt.Errorf("evaluating inline template of kind %q: %w", b.kind, diags)
	}
	str, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("inline template of kind %q must produce a string: %w", b.kind, err)
	}
	if str.IsNull() {
		return "", nil
	}
	return str.AsString(), nil
}
