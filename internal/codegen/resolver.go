package codegen

import (
	"fmt"

	"github.com/vk/vsgen/internal/graph"
)

// resolveInput returns the expression that supplies a Data/In port: a function
// parameter, the port's default literal, an inline expansion, or a variable bound by an
// upstream producer. Pure producers that were not emitted yet are emitted at indent
// first.
func (p *pass) resolveInput(in *graph.Port, indent int) (string, error) {
	if name, ok := p.params[in.ID]; ok {
		return name, nil
	}
	conn, ok, err := p.g.ConnectionFrom(in.ID)
	if err != nil {
		return "", err
	}
	if !ok {
		return RenderLiteral(in.Default), nil
	}

	src, err := p.g.Port(conn.From)
	if err != nil {
		return "", err
	}
	producer, err := p.g.Node(src.Node)
	if err != nil {
		return "", err
	}

	if producer.Kind == graph.KindInline {
		return p.expandInline(producer, indent)
	}

	vars, err := p.ensureEmitted(producer, indent)
	if err != nil {
		return "", err
	}
	idx, err := p.dataIndex(producer, src)
	if err != nil {
		return "", err
	}
	if idx >= len(vars) || vars[idx] == "" {
		return "", fmt.Errorf("%w: output %s has no bound variable", ErrInvalidGraphReference, src)
	}
	return vars[idx], nil
}

// resolveArgs resolves every Data/In port of n in declaration order. The map keys the
// same expressions by port name.
func (p *pass) resolveArgs(n *graph.Node, indent int) ([]string, map[string]string, error) {
	ins, err := p.g.InputsOf(n.ID)
	if err != nil {
		return nil, nil, err
	}
	args := make([]string, 0, len(ins))
	named := make(map[string]string, len(ins))
	for _, in := range ins {
		if in.IsExec() {
			continue
		}
		expr, err := p.resolveInput(in, indent)
		if err != nil {
			return nil, nil, err
		}
		args = append(args, expr)
		named[in.Name] = expr
	}
	return args, named, nil
}

// resolveNamed resolves the Data/In port of n with the given name.
func (p *pass) resolveNamed(n *graph.Node, name string, indent int) (string, error) {
	in, err := p.g.PortByName(n.ID, graph.In, name)
	if err != nil {
		return "", err
	}
	if in.IsExec() {
		return "", fmt.Errorf("%w: %s is not a data input", ErrInvalidGraphReference, in)
	}
	return p.resolveInput(in, indent)
}

// expandInline renders an inline node as an expression. Inline nodes bind no variables,
// so every use site recomputes the expression.
func (p *pass) expandInline(n *graph.Node, indent int) (string, error) {
	if err := p.enter(n.ID); err != nil {
		return "", err
	}
	defer p.leave(n.ID)

	if n.Inline == nil {
		return "", fmt.Errorf("%w: inline node %q has no template", ErrIncompleteNode, n.ID)
	}
	_, named, err := p.resolveArgs(n, indent)
	if err != nil {
		return "", err
	}
	expr, err := n.Inline.Expand(named)
	if err != nil {
		return "", fmt.Errorf("expanding inline node %q: %w", n.ID, err)
	}
	return expr, nil
}

// ensureEmitted returns the variables bound by producer, emitting its statement at
// indent if this is the first use. A producer on an Exec chain is only ever written by
// its chain, so an early use refers to the names it will bind there.
func (p *pass) ensureEmitted(producer *graph.Node, indent int) ([]string, error) {
	if vars, ok := p.memo[producer.ID]; ok {
		return vars, nil
	}
	if p.hasExecPorts(producer) {
		p.log.Debug("Referencing chain node before its emission.", "node", producer.ID)
		return p.chainVars(producer)
	}
	if err := p.enter(producer.ID); err != nil {
		return nil, err
	}
	defer p.leave(producer.ID)

	p.log.Debug("Emitting data producer.", "node", producer.ID, "indent", indent)
	if err := p.emitNode(producer, indent); err != nil {
		return nil, err
	}
	return p.memo[producer.ID], nil
}

// dataIndex is the position of out among the Data/Out ports of n.
func (p *pass) dataIndex(n *graph.Node, out *graph.Port) (int, error) {
	outs, err := p.g.DataOutputsOf(n.ID)
	if err != nil {
		return 0, err
	}
	for i, o := range outs {
		if o.ID == out.ID {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s is not a data output of %q", ErrInvalidGraphReference, out, n.ID)
}
