package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/vsgen/internal/builder"
	"github.com/vk/vsgen/internal/codegen"
	"github.com/vk/vsgen/internal/ctxlog"
	"github.com/vk/vsgen/internal/fsutil"
	"github.com/vk/vsgen/internal/hcl"
	"github.com/vk/vsgen/internal/notify"
	"github.com/vk/vsgen/internal/session"
	"github.com/vk/vsgen/internal/watch"
)

// Run executes the main application logic based on the configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.ctx = ctx
	a.logger.Debug("App.Run method started.")

	if a.config.ListKinds {
		return a.listKinds()
	}

	if a.config.NotifyURL != "" {
		cfg, err := notify.ParseConfig(a.config.NotifyURL)
		if err != nil {
			return err
		}
		n, err := notify.Dial(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to editor: %w", err)
		}
		a.notifier = n
		defer a.notifier.Close()
	}

	err := a.Build(ctx)
	a.setStatus(err)
	if !a.config.Watch {
		return err
	}
	if err != nil {
		a.logger.Error("Initial build failed, waiting for changes.", "error", err)
	}

	if a.config.HealthcheckPort > 0 {
		a.healthCheckServer()
		defer a.closeHealthCheckServer()
	}
	return a.watch(ctx)
}

// Build loads the graph, compiles it and, unless in check mode, writes the module
// and notifies the editor.
func (a *App) Build(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	def, err := a.loadGraph(ctx)
	if err != nil {
		return fmt.Errorf("failed to load graph: %w", err)
	}
	g, err := builder.Build(ctx, def, a.registry, a.config.Entry)
	if err != nil {
		return fmt.Errorf("failed to build graph: %w", err)
	}

	if a.config.Check {
		if err := g.DetectDataCycles(); err != nil {
			return fmt.Errorf("graph %q: %w: %w", g.Name, codegen.ErrCyclicDataDependency, err)
		}
	}
	art, err := a.compiler().Compile(ctx, g, "")
	if err != nil {
		return fmt.Errorf("failed to compile graph %q: %w", g.Name, err)
	}
	if a.config.Check {
		logger.Info("✅ Check passed.", "graph", g.Name, "params", len(art.Params))
		return nil
	}

	module := a.config.ModuleName
	if module == "" {
		module = ModuleNameFor(g.Name)
	}
	path, err := codegen.ModulePath(a.config.OutDir, module)
	if err != nil {
		return err
	}
	if a.cache != nil && !a.cache.Changed(path, []byte(art.Source)) {
		logger.Debug("Module unchanged, skipping write.", "path", path)
		return nil
	}
	if err := fsutil.WriteFileAtomic(path, []byte(art.Source), 0o644); err != nil {
		if a.cache != nil {
			a.cache.Forget(path)
		}
		return fmt.Errorf("failed to write module: %w", err)
	}
	logger.Info("📝 Module written.", "graph", g.Name, "path", path)

	params := make([]string, 0, len(art.Params))
	for _, p := range art.Params {
		params = append(params, p.Name)
	}
	err = a.notifier.Notify(ctx, notify.Event{
		Graph:    g.Name,
		Module:   module,
		Path:     path,
		Function: art.FunctionName,
		Params:   params,
		Imports:  art.Imports,
	})
	if err != nil {
		logger.Warn("Could not notify editor.", "error", err)
	}
	return nil
}

// watch rebuilds on every change below the graph and manifest paths until ctx is
// cancelled. Manifest changes reload the registry first.
func (a *App) watch(ctx context.Context) error {
	roots := []string{a.config.GraphPath}
	if a.config.ModulesPath != "" {
		roots = append(roots, a.config.ModulesPath)
	}
	w, err := watch.New(roots, hcl.FileExtension, session.FileExtension)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Close()

	a.logger.Info("👀 Watching for changes.", "paths", roots)
	err = w.Run(ctx, func(ctx context.Context, changed []string) error {
		if a.touchesManifests(changed) {
			reg, err := a.newRegistry(ctx)
			if err != nil {
				a.setStatus(err)
				return fmt.Errorf("failed to reload manifests: %w", err)
			}
			a.registry = reg
		}
		err := a.Build(ctx)
		a.setStatus(err)
		return err
	})
	if ctx.Err() != nil {
		a.logger.Info("🏁 Watch stopped.")
		return nil
	}
	return err
}

func (a *App) touchesManifests(changed []string) bool {
	if a.config.ModulesPath == "" {
		return false
	}
	root := filepath.Clean(a.config.ModulesPath)
	for _, p := range changed {
		if p == root || strings.HasPrefix(p, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
