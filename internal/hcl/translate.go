// This file contains the logic for translating HCL schema structs into the
// format-agnostic configuration model defined in the config package.

package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"

	"github.com/vk/vsgen/internal/config"
	"github.com/vk/vsgen/internal/ctxlog"
	"github.com/vk/vsgen/internal/graph"
	"github.com/vk/vsgen/internal/portref"
)

// translateKind converts a `node_kind` block into the agnostic model.
func (l *Loader) translateKind(ctx context.Context, k *kindBlock) (*config.KindDefinition, error) {
	logger := ctxlog.FromContext(ctx).With("kind", k.Name)
	logger.Debug("Translating HCL node kind to internal config model.")

	def := &config.KindDefinition{
		Name:        k.Name,
		Category:    k.Category,
		Description: k.Description,
		Executable:  k.Executable,
		Entry:       k.Entry,
		Callable:    k.Callable,
		Control:     k.Control,
		Generator:   k.Generator,
		Imports:     k.Imports,
		ExecInputs:  k.ExecInputs,
		ExecOutputs: k.ExecOutputs,
		Source:      location(k.DefRange),
	}

	hasInline := isExprDefined(k.Inline)
	selectors := 0
	for _, set := range []bool{k.Callable != "", hasInline, k.Control != "", k.Generator != ""} {
		if set {
			selectors++
		}
	}
	if selectors > 1 {
		return nil, fmt.Errorf("kind %q at %s: only one of callable, inline, control and generator may be set", k.Name, def.Source)
	}
	if selectors == 0 && !k.Executable {
		return nil, fmt.Errorf("kind %q at %s: one of callable, inline, control or generator is required for non-executable kinds", k.Name, def.Source)
	}
	if k.Control != "" && (k.Executable || len(k.Inputs) > 0 || len(k.Outputs) > 0) {
		return nil, fmt.Errorf("kind %q at %s: control kinds have a fixed port layout", k.Name, def.Source)
	}

	inputs := make(map[string]bool, len(k.Inputs))
	for _, in := range k.Inputs {
		if in.Name == propertyVar {
			return nil, fmt.Errorf("kind %q at %s: input name %q is reserved", k.Name, def.Source, propertyVar)
		}
		if inputs[in.Name] {
			return nil, fmt.Errorf("kind %q at %s: duplicate input %q", k.Name, def.Source, in.Name)
		}
		inputs[in.Name] = true
		translated, err := translateInputDefinition(in, k.Name)
		if err != nil {
			return nil, err
		}
		def.Inputs = append(def.Inputs, translated)
	}

	outputs := make(map[string]bool, len(k.Outputs))
	for _, out := range k.Outputs {
		if outputs[out.Name] {
			return nil, fmt.Errorf("kind %q at %s: duplicate output %q", k.Name, def.Source, out.Name)
		}
		outputs[out.Name] = true
		def.Outputs = append(def.Outputs, &config.OutputDefinition{Name: out.Name, Description: out.Description})
	}

	properties := make(map[string]bool, len(k.Properties))
	for _, p := range k.Properties {
		properties[p.Name] = true
		translated, err := translateInputDefinition(p, k.Name)
		if err != nil {
			return nil, err
		}
		def.Properties = append(def.Properties, translated)
	}

	if hasInline {
		tpl, err := newInlineTemplate(k.Name, k.Inline, inputs, properties)
		if err != nil {
			return nil, err
		}
		def.Inline = tpl
	}
	return def, nil
}

// translateInputDefinition processes a single input or property block, handling its
// default value.
func translateInputDefinition(in *inputBlock, kind string) (*config.InputDefinition, error) {
	def := &config.InputDefinition{
		Name:        in.Name,
		Description: in.Description,
		Multi:       in.Multi,
	}
	if in.DefaultExpr != "" {
		def.Default = graph.Expression(in.DefaultExpr)
		return def, nil
	}
	lit, err := evalLiteral(in.Default)
	if err != nil {
		return nil, fmt.Errorf("invalid default value for %q in kind %q: %w", in.Name, kind, err)
	}
	def.Default = lit
	return def, nil
}

// translateGraph converts a `graph` block into the agnostic model.
func (l *Loader) translateGraph(ctx context.Context, g *graphBlock) (*config.GraphDefinition, error) {
	logger := ctxlog.FromContext(ctx).With("graph", g.Name)
	logger.Debug("Translating HCL graph to internal config model.", "nodes", len(g.Nodes), "connections", len(g.Connects))

	def := &config.GraphDefinition{
		Name:   g.Name,
		Entry:  g.Entry,
		Source: location(g.DefRange),
	}

	for _, n := range g.Nodes {
		props, err := evalProperties(n.Properties)
		if err != nil {
			return nil, fmt.Errorf("graph %q, node %q: %w", g.Name, n.ID, err)
		}
		for name, src := range n.Expressions {
			if _, dup := props[name]; dup {
				return nil, fmt.Errorf("graph %q, node %q: property %q set both as value and expression", g.Name, n.ID, name)
			}
			props[name] = graph.Expression(src)
		}
		def.Nodes = append(def.Nodes, &config.NodeDefinition{
			ID:         n.ID,
			Kind:       n.Kind,
			Name:       n.Name,
			Properties: props,
		})
	}

	for _, c := range g.Connects {
		from, err := portref.Parse(c.From)
		if err != nil {
			return nil, fmt.Errorf("graph %q: connect from: %w", g.Name, err)
		}
		to, err := portref.Parse(c.To)
		if err != nil {
			return nil, fmt.Errorf("graph %q: connect to: %w", g.Name, err)
		}
		def.Connections = append(def.Connections, &config.ConnectionDefinition{From: from, To: to})
	}
	return def, nil
}

func location(r hcl.Range) string {
	return fmt.Sprintf("%s:%d", r.Filename, r.Start.Line)
}
