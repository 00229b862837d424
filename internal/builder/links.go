package builder

import (
	"context"
	"fmt"

	"github.com/vk/vsgen/internal/config"
	"github.com/vk/vsgen/internal/ctxlog"
	"github.com/vk/vsgen/internal/graph"
	"github.com/vk/vsgen/internal/portref"
)

// linkNodes performs the second pass of graph creation, resolving each connection's
// port references and connecting them.
func linkNodes(ctx context.Context, def *config.GraphDefinition, g *graph.Graph) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting connection linking pass.")

	for _, c := range def.Connections {
		from, err := resolvePort(g, c.From, graph.Out)
		if err != nil {
			return fmt.Errorf("graph %q: connect %s -> %s: %w", def.Name, c.From, c.To, err)
		}
		to, err := resolvePort(g, c.To, graph.In)
		if err != nil {
			return fmt.Errorf("graph %q: connect %s -> %s: %w", def.Name, c.From, c.To, err)
		}
		if err := g.Connect(from, to); err != nil {
			return fmt.Errorf("graph %q: connect %s -> %s: %w", def.Name, c.From, c.To, err)
		}
		logger.Debug("Linked ports.", "from", c.From.String(), "to", c.To.String())
	}
	return nil
}

func resolvePort(g *graph.Graph, ref portref.Ref, dir graph.Direction) (graph.PortID, error) {
	p, err := g.PortByName(graph.NodeID(ref.Node), dir, ref.Port)
	if err != nil {
		return graph.NoPort, err
	}
	return p.ID, nil
}
