package builder

import (
	"context"
	"fmt"

	"github.com/vk/vsgen/internal/config"
	"github.com/vk/vsgen/internal/ctxlog"
	"github.com/vk/vsgen/internal/graph"
	"github.com/vk/vsgen/internal/registry"
)

// createNodes performs the first pass of graph creation, adding one node per
// definition. It returns the nodes whose kind is an entry kind.
func createNodes(ctx context.Context, def *config.GraphDefinition, r *registry.Registry, g *graph.Graph) ([]graph.NodeID, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting node creation pass.")

	var entries []graph.NodeID
	for _, nd := range def.Nodes {
		kind, err := r.Kind(nd.Kind)
		if err != nil {
			return nil, fmt.Errorf("graph %q, node %q: %w", def.Name, nd.ID, err)
		}
		node, specs := instantiate(nd, kind)
		logger.Debug("Creating node.", "id", nd.ID, "kind", nd.Kind, "category", node.Kind)
		if _, err := g.AddNode(node, specs...); err != nil {
			return nil, fmt.Errorf("graph %q: %w", def.Name, err)
		}
		if kind.Entry {
			entries = append(entries, node.ID)
		}
	}
	return entries, nil
}

// instantiate creates a node record and its port specs from a kind.
func instantiate(nd *config.NodeDefinition, kind *config.KindDefinition) (graph.Node, []graph.PortSpec) {
	layout := registry.LayoutOf(kind)

	props := make(map[string]graph.Literal, len(kind.Properties)+len(nd.Properties))
	for _, p := range kind.Properties {
		props[p.Name] = p.Default
	}
	for name, v := range nd.Properties {
		props[name] = v
	}

	// Properties that name an input become the port's default.
	specs := make([]graph.PortSpec, len(layout.Ports))
	copy(specs, layout.Ports)
	for i := range specs {
		s := &specs[i]
		if s.Direction != graph.In || s.Channel != graph.Data {
			continue
		}
		if v, ok := props[s.Name]; ok {
			s.Default = v
			delete(props, s.Name)
		}
	}

	name := nd.Name
	if name == "" {
		name = nd.ID
	}
	node := graph.Node{
		ID:          graph.NodeID(nd.ID),
		Name:        name,
		Kind:        layout.Kind,
		Control:     layout.Control,
		ControlName: layout.ControlName,
		Callable:    kind.Callable,
		Imports:     kind.Imports,
		Generator:   kind.Generator,
		Properties:  props,
	}
	if kind.Inline != nil {
		node.Inline = kind.Inline.Instantiate(props)
	}
	return node, specs
}
