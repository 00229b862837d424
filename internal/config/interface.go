package config

import (
	"context"

	"github.com/vk/vsgen/internal/graph"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given paths and translates it into the
	// format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// InlineSource produces the expression template of one node instance of an inline
// kind. Node properties are bound at instantiation; argument expressions arrive at
// expansion time.
type InlineSource interface {
	Instantiate(properties map[string]graph.Literal) graph.InlineTemplate
}
