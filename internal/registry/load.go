package registry

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/vk/vsgen/internal/config"
	"github.com/vk/vsgen/internal/ctxlog"
)

// FSLoader reads manifests from an fs.FS, such as the embedded standard library.
type FSLoader interface {
	LoadFS(ctx context.Context, fsys fs.FS) (*config.Model, error)
}

// LoadManifests reads kind definitions from the given paths. Graph blocks found there
// are ignored.
func (r *Registry) LoadManifests(ctx context.Context, loader config.Loader, paths ...string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Registry loading kind manifests...", "paths", paths)

	model, err := loader.Load(ctx, paths...)
	if err != nil {
		return fmt.Errorf("loading kind manifests: %w", err)
	}
	return r.addLoaded(ctx, model)
}

// LoadEmbedded reads kind definitions from an fs.FS.
func (r *Registry) LoadEmbedded(ctx context.Context, loader FSLoader, fsys fs.FS) error {
	model, err := loader.LoadFS(ctx, fsys)
	if err != nil {
		return fmt.Errorf("loading embedded manifests: %w", err)
	}
	return r.addLoaded(ctx, model)
}

func (r *Registry) addLoaded(ctx context.Context, model *config.Model) error {
	logger := ctxlog.FromContext(ctx)
	if len(model.Graphs) > 0 {
		logger.Warn("Ignoring graph blocks found among kind manifests.", "count", len(model.Graphs))
	}
	if err := r.AddKinds(model); err != nil {
		return err
	}
	logger.Debug("Registry loaded kind definitions.", "loaded", len(model.Kinds), "total", len(r.kinds))
	return nil
}

// LoadModules registers the generators of every module and loads the manifests of
// those that ship them.
func (r *Registry) LoadModules(ctx context.Context, loader FSLoader, modules ...Module) error {
	r.RegisterModules(modules...)
	for _, m := range modules {
		mp, ok := m.(ManifestProvider)
		if !ok {
			continue
		}
		if err := r.LoadEmbedded(ctx, loader, mp.Manifests()); err != nil {
			return fmt.Errorf("module %T: %w", m, err)
		}
	}
	return nil
}
