package codegen

import (
	"fmt"
	"log/slog"

	"github.com/vk/vsgen/internal/graph"
)

// line is one emitted statement. Indent counts levels inside the function body.
type line struct {
	indent int
	text   string
}

// pass holds the state of a single compilation. It is created per Compile call and
// discarded afterwards.
type pass struct {
	g          *graph.Graph
	log        *slog.Logger
	generators GeneratorSource

	// memo maps every emitted producer to the variables bound to its Data outputs,
	// indexed like graph.DataOutputsOf.
	memo map[graph.NodeID][]string
	// next records the Exec/Out port the chain continues from after a node, or
	// graph.NoPort if the node ends its chain.
	next map[graph.NodeID]graph.PortID
	// params maps the entry node's unconnected inputs to function parameter names.
	params map[graph.PortID]string

	// stack is the chain of nodes whose resolution is in progress.
	stack   []graph.NodeID
	onStack map[graph.NodeID]bool

	// chained marks nodes already visited as part of an Exec chain.
	chained   map[graph.NodeID]bool
	reachable map[graph.NodeID]bool
	lines     []line
}

func newPass(g *graph.Graph, log *slog.Logger, generators GeneratorSource) *pass {
	return &pass{
		g:          g,
		log:        log,
		generators: generators,
		memo:       make(map[graph.NodeID][]string),
		next:       make(map[graph.NodeID]graph.PortID),
		params:     make(map[graph.PortID]string),
		onStack:    make(map[graph.NodeID]bool),
		chained:    make(map[graph.NodeID]bool),
		reachable:  make(map[graph.NodeID]bool),
	}
}

func (p *pass) emit(indent int, text string) {
	p.lines = append(p.lines, line{indent: indent, text: text})
}

// enter pushes id onto the resolution stack, failing if it is already there.
func (p *pass) enter(id graph.NodeID) error {
	if p.onStack[id] {
		start := 0
		for i, s := range p.stack {
			if s == id {
				start = i
				break
			}
		}
		path := append(append([]graph.NodeID{}, p.stack[start:]...), id)
		return &CycleError{Path: path}
	}
	p.stack = append(p.stack, id)
	p.onStack[id] = true
	p.reachable[id] = true
	return nil
}

func (p *pass) leave(id graph.NodeID) {
	p.stack = p.stack[:len(p.stack)-1]
	delete(p.onStack, id)
}

// varName is the variable bound to the idx-th Data output of a node.
func varName(id graph.NodeID, idx int) string {
	return fmt.Sprintf("var_%s_%d", id, idx)
}

// loopVarName is the variable bound by a loop or an except clause.
func loopVarName(id graph.NodeID) string {
	return "var_" + string(id)
}

// standardVars returns var_<id>_<i> for every Data output of n.
func (p *pass) standardVars(n *graph.Node) ([]string, error) {
	outs, err := p.g.DataOutputsOf(n.ID)
	if err != nil {
		return nil, err
	}
	vars := make([]string, len(outs))
	for i := range outs {
		vars[i] = varName(n.ID, i)
	}
	return vars, nil
}

// chainVars returns the names n binds once its chain emits it: var_<id> for every Data
// output of a control construct, var_<id>_<i> otherwise.
func (p *pass) chainVars(n *graph.Node) ([]string, error) {
	vars, err := p.standardVars(n)
	if err != nil {
		return nil, err
	}
	if n.Kind == graph.KindControlFlow {
		for i := range vars {
			vars[i] = loopVarName(n.ID)
		}
	}
	return vars, nil
}

// firstExecOut returns the first Exec/Out port of n, or graph.NoPort.
func (p *pass) firstExecOut(n *graph.Node) graph.PortID {
	for _, id := range n.Outputs {
		port, err := p.g.Port(id)
		if err == nil && port.IsExec() {
			return id
		}
	}
	return graph.NoPort
}

// hasExecPorts reports whether n takes part in an Exec chain at all.
func (p *pass) hasExecPorts(n *graph.Node) bool {
	for _, ids := range [][]graph.PortID{n.Inputs, n.Outputs} {
		for _, id := range ids {
			port, err := p.g.Port(id)
			if err == nil && port.IsExec() {
				return true
			}
		}
	}
	return false
}
