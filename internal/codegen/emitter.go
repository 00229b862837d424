package codegen

import (
	"fmt"
	"strings"

	"github.com/vk/vsgen/internal/graph"
)

// statement builds the source line of an executable or inline node.
func (p *pass) statement(n *graph.Node, indent int) (string, []string, error) {
	args, named, err := p.resolveArgs(n, indent)
	if err != nil {
		return "", nil, err
	}

	var expr string
	if n.Kind == graph.KindInline {
		if n.Inline == nil {
			return "", nil, fmt.Errorf("%w: inline node %q has no template", ErrIncompleteNode, n.ID)
		}
		if expr, err = n.Inline.Expand(named); err != nil {
			return "", nil, fmt.Errorf("expanding inline node %q: %w", n.ID, err)
		}
	}

	vars, err := p.standardVars(n)
	if err != nil {
		return "", nil, err
	}

	if n.Kind == graph.KindExecutable {
		if n.Callable == "" {
			// Marker nodes such as the script start only sequence the chain.
			if len(vars) == 0 {
				return "", vars, nil
			}
			return "", nil, fmt.Errorf("%w: executable node %q has outputs but no callable", ErrIncompleteNode, n.ID)
		}
		expr = n.Callable + "(" + strings.Join(args, ", ") + ")"
	}
	if len(vars) == 0 {
		return expr, vars, nil
	}
	return strings.Join(vars, ", ") + " = " + expr, vars, nil
}

func (p *pass) emitStatement(n *graph.Node, indent int) error {
	text, vars, err := p.statement(n, indent)
	if err != nil {
		return err
	}
	if text != "" {
		p.emit(indent, text)
	}
	p.memo[n.ID] = vars
	p.next[n.ID] = p.firstExecOut(n)
	return nil
}
