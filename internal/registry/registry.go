package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/vk/vsgen/internal/codegen"
	"github.com/vk/vsgen/internal/config"
)

// ErrUnknownKind is returned when a node refers to a kind no manifest defines.
var ErrUnknownKind = errors.New("unknown node kind")

// Module is the interface that all built-in modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the kind definitions and code generators of one application instance.
type Registry struct {
	kinds      map[string]*config.KindDefinition
	generators map[string]codegen.Generator
}

var _ codegen.GeneratorSource = (*Registry)(nil)

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		kinds:      make(map[string]*config.KindDefinition),
		generators: make(map[string]codegen.Generator),
	}
}

// RegisterModules lets every module register its generators and kinds.
func (r *Registry) RegisterModules(modules ...Module) {
	for _, m := range modules {
		m.Register(r)
	}
}

// AddKinds copies the kind definitions of a model into the registry. A kind may only
// be defined once.
func (r *Registry) AddKinds(model *config.Model) error {
	for _, def := range model.Kinds {
		if existing, ok := r.kinds[def.Name]; ok {
			return fmt.Errorf("node kind %q defined twice: at %s and at %s", def.Name, existing.Source, def.Source)
		}
		r.kinds[def.Name] = def
	}
	return nil
}

// Kind returns the definition of a kind.
func (r *Registry) Kind(name string) (*config.KindDefinition, error) {
	def, ok := r.kinds[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	return def, nil
}

// Kinds returns all definitions ordered by category, then name.
func (r *Registry) Kinds() []*config.KindDefinition {
	out := make([]*config.KindDefinition, 0, len(r.kinds))
	for _, def := range r.kinds {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Generator implements codegen.GeneratorSource.
func (r *Registry) Generator(name string) (codegen.Generator, bool) {
	gen, ok := r.generators[name]
	return gen, ok
}

// ManifestProvider is implemented by modules that ship their own kind manifests.
type ManifestProvider interface {
	Manifests() fs.FS
}
