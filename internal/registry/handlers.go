package registry

import (
	"fmt"
	"log/slog"

	"github.com/vk/vsgen/internal/codegen"
)

// RegisterGenerator registers the Go generator of a custom-code kind. Registering the
// same name twice is a programming error.
func (r *Registry) RegisterGenerator(name string, gen codegen.Generator) {
	if _, exists := r.generators[name]; exists {
		panic(fmt.Sprintf("generator with name '%s' already registered", name))
	}
	slog.Debug("Registering generator.", "name", name)
	r.generators[name] = gen
}
