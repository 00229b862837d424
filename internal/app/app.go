package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/vk/vsgen/internal/codegen"
	"github.com/vk/vsgen/internal/ctxlog"
	"github.com/vk/vsgen/internal/hcl"
	"github.com/vk/vsgen/internal/notify"
	"github.com/vk/vsgen/internal/registry"
	"github.com/vk/vsgen/internal/session"
	"github.com/vk/vsgen/internal/watch"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	ctx     context.Context
	config  *Config
	modules []registry.Module

	registry      *registry.Registry
	hclLoader     *hcl.Loader
	sessionLoader *session.Loader

	// cache is only set in watch mode.
	cache      *watch.Cache
	notifier   notify.Notifier
	httpServer *http.Server
	status     atomic.Pointer[buildStatus]
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and registry. Listings go
// to outW and logs to logW.
func NewApp(outW, logW io.Writer, cfg *Config, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreModules
	}
	a := &App{
		outW:          outW,
		logger:        logger,
		ctx:           ctx,
		config:        cfg,
		modules:       modules,
		hclLoader:     hcl.NewLoader(),
		sessionLoader: session.NewLoader(),
		notifier:      notify.Nop{},
	}

	reg, err := a.newRegistry(ctx)
	if err != nil {
		return nil, err
	}
	a.registry = reg

	if cfg.Watch {
		cache, err := watch.NewCache(watch.DefaultCacheSize)
		if err != nil {
			return nil, err
		}
		a.cache = cache
	}
	return a, nil
}

// newRegistry registers the Go modules, loads their embedded manifests and the
// user manifests, then validates the result. A mismatch between generators and
// manifests shipped in the binary is a programmer error and panics.
func (a *App) newRegistry(ctx context.Context) (*registry.Registry, error) {
	logger := ctxlog.FromContext(ctx)
	reg := registry.New()
	if err := reg.LoadModules(ctx, a.hclLoader, a.modules...); err != nil {
		panic(fmt.Errorf("failed to load built-in modules: %w", err))
	}
	logger.Debug("All Go modules registered.", "count", len(a.modules))

	if a.config.ModulesPath != "" {
		if err := reg.LoadManifests(ctx, a.hclLoader, a.config.ModulesPath); err != nil {
			return nil, err
		}
	}
	if err := reg.ValidateRegistry(ctx); err != nil {
		if a.config.ModulesPath == "" {
			panic(err)
		}
		return nil, err
	}
	logger.Debug("Registry validation passed.", "kinds", len(reg.Kinds()))
	return reg, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

func (a *App) compiler() *codegen.Compiler {
	return codegen.New(codegen.Options{
		FunctionName: a.config.FunctionName,
		ImportScope:  a.config.ImportScope,
		Generators:   a.registry,
	})
}
