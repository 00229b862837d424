package codegen

import (
	"fmt"

	"github.com/vk/vsgen/internal/graph"
)

// run compiles the Exec chain starting at n. Nodes already memoized are not written
// again, but the chain still continues through them.
func (p *pass) run(n *graph.Node, indent int) error {
	for n != nil {
		if p.chained[n.ID] {
			return fmt.Errorf("%w: node %q reached twice", ErrExecCycle, n.ID)
		}
		p.chained[n.ID] = true

		if _, done := p.memo[n.ID]; !done {
			if err := p.enter(n.ID); err != nil {
				return err
			}
			p.log.Debug("Emitting node.", "node", n.ID, "kind", n.Kind, "indent", indent)
			err := p.emitNode(n, indent)
			p.leave(n.ID)
			if err != nil {
				return err
			}
		}

		next, ok := p.next[n.ID]
		if !ok || next == graph.NoPort {
			return nil
		}
		succ, err := p.g.ExecSuccessor(next)
		if err != nil {
			return err
		}
		n = succ
	}
	return nil
}

// emitNode writes the statement or construct of n and records its bound variables and
// its chain continuation.
func (p *pass) emitNode(n *graph.Node, indent int) error {
	switch n.Kind {
	case graph.KindExecutable, graph.KindInline:
		return p.emitStatement(n, indent)
	case graph.KindCustomCode:
		return p.emitCustom(n, indent)
	case graph.KindControlFlow:
		switch n.Control {
		case graph.ControlIf:
			return p.emitIf(n, indent)
		case graph.ControlForLoop:
			return p.emitForLoop(n, indent)
		case graph.ControlForEachLoop:
			return p.emitForEachLoop(n, indent)
		case graph.ControlWhileLoop:
			return p.emitWhileLoop(n, indent)
		case graph.ControlTryExceptFinally:
			return p.emitTry(n, indent)
		}
		return fmt.Errorf("%w: node %q has control variant %q", ErrUnresolvedControlFlowKind, n.ID, n.ControlName)
	}
	return fmt.Errorf("%w: node %q has kind %s", ErrUnresolvedControlFlowKind, n.ID, n.Kind)
}

// branch expands the chain behind the named Exec/Out port of n at indent. A branch that
// writes nothing is closed with pass.
func (p *pass) branch(n *graph.Node, port string, indent int, pre ...string) error {
	out, err := p.g.PortByName(n.ID, graph.Out, port)
	if err != nil {
		return err
	}
	succ, err := p.g.ExecSuccessor(out.ID)
	if err != nil {
		return err
	}

	start := len(p.lines)
	for _, l := range pre {
		p.emit(indent, l)
	}
	if succ != nil {
		if err := p.run(succ, indent); err != nil {
			return err
		}
	}
	if len(p.lines) == start {
		p.emit(indent, "pass")
	}
	return nil
}

// continueFrom makes the chain resume at the named Exec/Out port of n.
func (p *pass) continueFrom(n *graph.Node, port string) error {
	out, err := p.g.PortByName(n.ID, graph.Out, port)
	if err != nil {
		return err
	}
	if !out.IsExec() {
		return fmt.Errorf("%w: %s is not an exec output", ErrInvalidGraphReference, out)
	}
	p.next[n.ID] = out.ID
	return nil
}

// bindLoopVar memoizes every Data output of n as the single variable var_<id>.
func (p *pass) bindLoopVar(n *graph.Node) (string, error) {
	vars, err := p.chainVars(n)
	if err != nil {
		return "", err
	}
	p.memo[n.ID] = vars
	return loopVarName(n.ID), nil
}

func (p *pass) emitIf(n *graph.Node, indent int) error {
	cond, err := p.resolveNamed(n, PortCondition, indent)
	if err != nil {
		return err
	}
	p.memo[n.ID] = []string{}
	p.next[n.ID] = graph.NoPort

	p.emit(indent, "if "+cond+":")
	if err := p.branch(n, PortTrue, indent+1); err != nil {
		return err
	}
	p.emit(indent, "else:")
	return p.branch(n, PortFalse, indent+1)
}

func (p *pass) emitForLoop(n *graph.Node, indent int) error {
	start, err := p.resolveNamed(n, PortStart, indent)
	if err != nil {
		return err
	}
	end, err := p.resolveNamed(n, PortEnd, indent)
	if err != nil {
		return err
	}
	v, err := p.bindLoopVar(n)
	if err != nil {
		return err
	}
	if err := p.continueFrom(n, PortCompleted); err != nil {
		return err
	}

	p.emit(indent, fmt.Sprintf("for %s in range(%s,%s):", v, start, end))
	return p.branch(n, PortBody, indent+1)
}

func (p *pass) emitForEachLoop(n *graph.Node, indent int) error {
	collection, err := p.resolveNamed(n, PortCollection, indent)
	if err != nil {
		return err
	}
	v, err := p.bindLoopVar(n)
	if err != nil {
		return err
	}
	if err := p.continueFrom(n, PortCompleted); err != nil {
		return err
	}

	p.emit(indent, fmt.Sprintf("for %s in %s:", v, collection))
	return p.branch(n, PortBody, indent+1)
}

// emitWhileLoop resolves the condition once before the loop and, after the body,
// recomputes the pure data producers feeding it so that the next test sees fresh values.
func (p *pass) emitWhileLoop(n *graph.Node, indent int) error {
	condPort, err := p.g.PortByName(n.ID, graph.In, PortCondition)
	if err != nil {
		return err
	}
	cond, err := p.resolveInput(condPort, indent)
	if err != nil {
		return err
	}
	p.memo[n.ID] = []string{}
	if err := p.continueFrom(n, PortCompleted); err != nil {
		return err
	}

	p.emit(indent, "while "+cond+":")
	if err := p.branch(n, PortBody, indent+1); err != nil {
		return err
	}
	return p.reemitProducers(condPort, indent+1, make(map[graph.NodeID]bool))
}

// reemitProducers writes again, in dependency order, the statements of the pure data
// producers upstream of in. Nodes on an Exec chain keep their single emission.
func (p *pass) reemitProducers(in *graph.Port, indent int, seen map[graph.NodeID]bool) error {
	conn, ok, err := p.g.ConnectionFrom(in.ID)
	if err != nil || !ok {
		return err
	}
	src, err := p.g.Port(conn.From)
	if err != nil {
		return err
	}
	producer, err := p.g.Node(src.Node)
	if err != nil {
		return err
	}
	if seen[producer.ID] || p.hasExecPorts(producer) {
		return nil
	}
	if producer.Kind == graph.KindControlFlow || producer.Kind == graph.KindCustomCode {
		return nil
	}
	seen[producer.ID] = true

	ins, err := p.g.InputsOf(producer.ID)
	if err != nil {
		return err
	}
	for _, up := range ins {
		if up.IsExec() {
			continue
		}
		if err := p.reemitProducers(up, indent, seen); err != nil {
			return err
		}
	}

	if producer.Kind == graph.KindInline {
		return nil
	}
	text, _, err := p.statement(producer, indent)
	if err != nil {
		return err
	}
	p.emit(indent, text)
	return nil
}

func (p *pass) emitTry(n *graph.Node, indent int) error {
	v, err := p.bindLoopVar(n)
	if err != nil {
		return err
	}
	if err := p.continueFrom(n, PortAfter); err != nil {
		return err
	}

	p.emit(indent, "try:")
	if err := p.branch(n, PortTry, indent+1); err != nil {
		return err
	}

	except := "except Exception:"
	if exc, err := p.g.PortByName(n.ID, graph.Out, PortException); err == nil && p.g.IsConnected(exc.ID) {
		except = "except Exception as " + v + ":"
	}
	p.emit(indent, except)
	if err := p.branch(n, PortExcept, indent+1); err != nil {
		return err
	}
	p.emit(indent, "finally:")
	return p.branch(n, PortFinally, indent+1)
}

func (p *pass) emitCustom(n *graph.Node, indent int) error {
	if p.generators == nil {
		return fmt.Errorf("%w: no generators available for node %q", ErrIncompleteNode, n.ID)
	}
	gen, ok := p.generators.Generator(n.Generator)
	if !ok {
		return fmt.Errorf("%w: node %q uses unregistered generator %q", ErrIncompleteNode, n.ID, n.Generator)
	}
	vars, err := p.standardVars(n)
	if err != nil {
		return err
	}
	p.memo[n.ID] = vars
	p.next[n.ID] = graph.NoPort

	return gen.Generate(&Block{p: p, node: n, indent: indent})
}
