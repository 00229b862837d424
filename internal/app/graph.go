package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/vk/vsgen/internal/config"
	"github.com/vk/vsgen/internal/ctxlog"
	"github.com/vk/vsgen/internal/session"
)

// loadGraph reads the graph definition from GraphPath. A .json file is a session, any
// other file is HCL, and a directory may hold either.
func (a *App) loadGraph(ctx context.Context) (*config.GraphDefinition, error) {
	logger := ctxlog.FromContext(ctx)
	path := a.config.GraphPath

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("graph path: %w", err)
	}

	model := &config.Model{}
	switch {
	case info.IsDir():
		for _, loader := range []config.Loader{a.hclLoader, a.sessionLoader} {
			part, err := loader.Load(ctx, path)
			if err != nil {
				return nil, err
			}
			model.Merge(part)
		}
	case strings.HasSuffix(path, session.FileExtension):
		if model, err = a.sessionLoader.Load(ctx, path); err != nil {
			return nil, err
		}
	default:
		if model, err = a.hclLoader.Load(ctx, path); err != nil {
			return nil, err
		}
	}

	if len(model.Kinds) > 0 {
		logger.Warn("Kind definitions next to the graph are ignored; pass them with -modules-path.", "count", len(model.Kinds))
	}
	def, err := model.Graph("")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("Graph definition loaded.", "graph", def.Name, "source", def.Source)
	return def, nil
}

// ModuleNameFor derives the module name of a graph: its name with spaces removed.
func ModuleNameFor(graphName string) string {
	return strings.ReplaceAll(graphName, " ", "")
}
