package builder

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/vsgen/internal/config"
	"github.com/vk/vsgen/internal/ctxlog"
	"github.com/vk/vsgen/internal/graph"
	"github.com/vk/vsgen/internal/registry"
)

// ErrAmbiguousEntry is returned when no entry is configured and several nodes could
// serve as one.
var ErrAmbiguousEntry = errors.New("ambiguous entry node")

// Build constructs a complete graph from a graph definition. A non-empty entry
// overrides the one in the definition.
func Build(ctx context.Context, def *config.GraphDefinition, r *registry.Registry, entry string) (*graph.Graph, error) {
	logger := ctxlog.FromContext(ctx).With("graph", def.Name)
	logger.Debug("Build: Starting graph construction.")
	g := graph.New(def.Name)

	// First pass: create all nodes with their ports.
	entryCandidates, err := createNodes(ctx, def, r, g)
	if err != nil {
		return nil, err
	}
	logger.Debug("Build: Node creation complete.", "node_count", len(def.Nodes))

	// Second pass: link ports.
	if err := linkNodes(ctx, def, g); err != nil {
		return nil, err
	}
	logger.Debug("Build: Connection linking complete.", "connection_count", len(def.Connections))

	// Final pass: entry selection.
	if entry == "" {
		entry = def.Entry
	}
	if entry == "" {
		switch len(entryCandidates) {
		case 0:
		case 1:
			entry = string(entryCandidates[0])
			logger.Debug("Build: Using the only entry node.", "entry", entry)
		default:
			return nil, fmt.Errorf("graph %q: %w: %v, set one explicitly", def.Name, ErrAmbiguousEntry, entryCandidates)
		}
	}
	if entry != "" {
		if err := g.SetEntry(graph.NodeID(entry)); err != nil {
			return nil, fmt.Errorf("graph %q: %w", def.Name, err)
		}
	}

	logger.Info("Build: Graph construction successful.", "entry", entry)
	return g, nil
}
