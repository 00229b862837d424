// Package stdlib provides the built-in node kinds: the entry marker, control flow,
// constants, operators and a few Python builtins. All of them are plain manifests.
package stdlib

import (
	"embed"
	"io/fs"

	"github.com/vk/vsgen/internal/registry"
)

//go:embed manifests/*.hcl
var manifests embed.FS

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register is a no-op: the standard kinds need no Go generators.
func (m *Module) Register(r *registry.Registry) {}

// Manifests returns the embedded kind manifests.
func (m *Module) Manifests() fs.FS {
	sub, err := fs.Sub(manifests, "manifests")
	if err != nil {
		panic(err)
	}
	return sub
}
