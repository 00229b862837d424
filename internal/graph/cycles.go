package graph

import "fmt"

// DetectDataCycles checks the subgraph induced by Data connections for cycles. It
// returns an error wrapping ErrDataCycle that names the first node found on a cycle.
// Exec connections are ignored: loops are expressed by control nodes, not by edges.
func (g *Graph) DetectDataCycles() error {
	// Classic three-set depth-first search:
	// permanent: fully visited, not on a cycle.
	// temporary: on the current recursion stack.
	permanent := make(map[NodeID]bool)
	temporary := make(map[NodeID]bool)

	var visit func(id NodeID) error
	visit = func(id NodeID) error {
		if permanent[id] {
			return nil
		}
		if temporary[id] {
			return fmt.Errorf("%w: involving node %q", ErrDataCycle, id)
		}
		temporary[id] = true

		for _, next := range g.dataDependents(id) {
			if err := visit(next); err != nil {
				return err
			}
		}

		delete(temporary, id)
		permanent[id] = true
		return nil
	}

	// Insertion order keeps the reported node stable across runs.
	for _, id := range g.order {
		if err := visit(id); err != nil {
			return err
		}
	}
	return nil
}

// dataDependents returns the nodes consuming any Data output of id.
func (g *Graph) dataDependents(id NodeID) []NodeID {
	n := g.nodes[id]
	var out []NodeID
	for _, pid := range n.Outputs {
		if g.ports[pid].Channel != Data {
			continue
		}
		for _, idx := range g.outbound[pid] {
			out = append(out, g.ports[g.conns[idx].To].Node)
		}
	}
	return out
}
