package graph

import (
	"fmt"
	"regexp"
	"slices"
)

// nodeIDRegex restricts ids to characters that are valid inside an identifier.
var nodeIDRegex = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Graph is the node, port and connection set of one visual script plus its entry node.
type Graph struct {
	Name string

	nodes map[NodeID]*Node
	order []NodeID
	ports []*Port
	conns []Connection

	// inbound maps an In port to the indexes of its connections, in insertion order.
	inbound map[PortID][]int
	// outbound maps an Out port to the indexes of its connections, in insertion order.
	outbound map[PortID][]int

	entry NodeID
}

// New creates an empty graph.
func New(name string) *Graph {
	return &Graph{
		Name:     name,
		nodes:    make(map[NodeID]*Node),
		inbound:  make(map[PortID][]int),
		outbound: make(map[PortID][]int),
	}
}

// AddNode stores a copy of n and creates its ports from specs, in order. Any Inputs or
// Outputs already set on n are ignored.
func (g *Graph) AddNode(n Node, specs ...PortSpec) (*Node, error) {
	if !nodeIDRegex.MatchString(string(n.ID)) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNodeID, n.ID)
	}
	if _, ok := g.nodes[n.ID]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateNode, n.ID)
	}

	names := make([]string, 0, len(n.Properties))
	for name := range n.Properties {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if err := n.Properties[name].Validate(); err != nil {
			return nil, fmt.Errorf("node %q, property %q: %w", n.ID, name, err)
		}
	}

	node := n
	node.Inputs = nil
	node.Outputs = nil
	if node.Properties == nil {
		node.Properties = make(map[string]Literal)
	}

	seen := make(map[string]struct{}, len(specs))
	for _, spec := range specs {
		key := spec.Direction.String() + ":" + spec.Name
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: node %q already has %s port %q", ErrDuplicatePort, n.ID, spec.Direction, spec.Name)
		}
		seen[key] = struct{}{}
		if err := spec.Default.Validate(); err != nil {
			return nil, fmt.Errorf("node %q, port %q: %w", n.ID, spec.Name, err)
		}

		p := &Port{
			ID:        PortID(len(g.ports)),
			Node:      n.ID,
			Name:      spec.Name,
			Direction: spec.Direction,
			Channel:   spec.Channel,
			Default:   spec.Default,
			Multi:     spec.Multi,
		}
		g.ports = append(g.ports, p)
		if p.Direction == In {
			node.Inputs = append(node.Inputs, p.ID)
		} else {
			node.Outputs = append(node.Outputs, p.ID)
		}
	}

	g.nodes[n.ID] = &node
	g.order = append(g.order, n.ID)
	return &node, nil
}

// Connect adds a connection from an Out port to an In port of the same channel.
func (g *Graph) Connect(from, to PortID) error {
	src, err := g.Port(from)
	if err != nil {
		return err
	}
	dst, err := g.Port(to)
	if err != nil {
		return err
	}

	switch {
	case src.Direction != Out:
		return fmt.Errorf("%w: source %s is not an output", ErrInvalidConnection, src)
	case dst.Direction != In:
		return fmt.Errorf("%w: target %s is not an input", ErrInvalidConnection, dst)
	case src.Channel != dst.Channel:
		return fmt.Errorf("%w: cannot connect %s port %s to %s port %s", ErrInvalidConnection, src.Channel, src, dst.Channel, dst)
	case src.Node == dst.Node:
		return fmt.Errorf("%w: self-referential connection on node %q", ErrInvalidConnection, src.Node)
	case src.Channel == Exec && len(g.outbound[from]) > 0:
		return fmt.Errorf("%w: exec output %s already has a successor", ErrInvalidConnection, src)
	case len(g.inbound[to]) > 0 && (dst.Channel == Exec || !dst.Multi):
		return fmt.Errorf("%w: input %s is already connected", ErrInvalidConnection, dst)
	}

	idx := len(g.conns)
	g.conns = append(g.conns, Connection{From: from, To: to})
	g.outbound[from] = append(g.outbound[from], idx)
	g.inbound[to] = append(g.inbound[to], idx)
	return nil
}

// SetEntry designates the node at which code generation starts.
func (g *Graph) SetEntry(id NodeID) error {
	if _, ok := g.nodes[id]; !ok {
		return fmt.Errorf("%w: entry node %q", ErrInvalidReference, id)
	}
	g.entry = id
	return nil
}

// Entry returns the designated entry node id, or "" if none was set.
func (g *Graph) Entry() NodeID {
	return g.entry
}

// Node returns the node with the given id.
func (g *Graph) Node(id NodeID) (*Node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: node %q", ErrInvalidReference, id)
	}
	return n, nil
}

// Port returns the port with the given id.
func (g *Graph) Port(id PortID) (*Port, error) {
	if id < 0 || int(id) >= len(g.ports) {
		return nil, fmt.Errorf("%w: port %d", ErrInvalidReference, id)
	}
	return g.ports[id], nil
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Connections returns a copy of the edge list.
func (g *Graph) Connections() []Connection {
	out := make([]Connection, len(g.conns))
	copy(out, g.conns)
	return out
}

// InputsOf returns the input ports of a node in declaration order.
func (g *Graph) InputsOf(id NodeID) ([]*Port, error) {
	n, err := g.Node(id)
	if err != nil {
		return nil, err
	}
	return g.portsOf(n.Inputs), nil
}

// OutputsOf returns the output ports of a node in declaration order.
func (g *Graph) OutputsOf(id NodeID) ([]*Port, error) {
	n, err := g.Node(id)
	if err != nil {
		return nil, err
	}
	return g.portsOf(n.Outputs), nil
}

// DataOutputsOf returns the Data/Out ports of a node. A port's position in this slice
// is its output index in generated variable names.
func (g *Graph) DataOutputsOf(id NodeID) ([]*Port, error) {
	outs, err := g.OutputsOf(id)
	if err != nil {
		return nil, err
	}
	data := make([]*Port, 0, len(outs))
	for _, p := range outs {
		if p.Channel == Data {
			data = append(data, p)
		}
	}
	return data, nil
}

// PortByName finds a port of a node by direction and name.
func (g *Graph) PortByName(id NodeID, dir Direction, name string) (*Port, error) {
	n, err := g.Node(id)
	if err != nil {
		return nil, err
	}
	ids := n.Outputs
	if dir == In {
		ids = n.Inputs
	}
	for _, pid := range ids {
		if g.ports[pid].Name == name {
			return g.ports[pid], nil
		}
	}
	return nil, fmt.Errorf("%w: node %q has no %s port %q", ErrInvalidReference, id, dir, name)
}

// ConnectionFrom returns the upstream connection feeding an In port. Multi-connection
// ports report their first connection. The boolean is false if the port is unconnected.
func (g *Graph) ConnectionFrom(in PortID) (Connection, bool, error) {
	p, err := g.Port(in)
	if err != nil {
		return Connection{}, false, err
	}
	if p.Direction != In {
		return Connection{}, false, fmt.Errorf("%w: %s is not an input", ErrInvalidReference, p)
	}
	idx := g.inbound[in]
	if len(idx) == 0 {
		return Connection{}, false, nil
	}
	return g.conns[idx[0]], true, nil
}

// ExecSuccessor returns the node on the other end of an Exec/Out port, or nil if the
// port has no successor.
func (g *Graph) ExecSuccessor(out PortID) (*Node, error) {
	p, err := g.Port(out)
	if err != nil {
		return nil, err
	}
	if p.Direction != Out || p.Channel != Exec {
		return nil, fmt.Errorf("%w: %s is not an exec output", ErrInvalidReference, p)
	}
	idx := g.outbound[out]
	if len(idx) == 0 {
		return nil, nil
	}
	target := g.ports[g.conns[idx[0]].To]
	return g.Node(target.Node)
}

// IsConnected reports whether any connection touches the port.
func (g *Graph) IsConnected(id PortID) bool {
	return len(g.inbound[id]) > 0 || len(g.outbound[id]) > 0
}

// HasExecInput reports whether the node has an Exec/In port with a predecessor.
func (g *Graph) HasExecInput(id NodeID) (bool, error) {
	ins, err := g.InputsOf(id)
	if err != nil {
		return false, err
	}
	for _, p := range ins {
		if p.Channel == Exec && len(g.inbound[p.ID]) > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (g *Graph) portsOf(ids []PortID) []*Port {
	out := make([]*Port, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.ports[id])
	}
	return out
}
