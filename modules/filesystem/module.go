// Package filesystem provides the directory walking nodes, custom-code kinds that loop
// over the output of os.walk.
package filesystem

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/vk/vsgen/internal/codegen"
	"github.com/vk/vsgen/internal/registry"
)

// Generators referenced by the manifests.
const (
	WalkFilesGenerator = "filesystem.walk_files"
	WalkTreeGenerator  = "filesystem.walk_files_and_directories"
)

// Port names of the walk kinds.
const (
	PortLoop      = "loop"
	PortCompleted = "completed"
	PortDirectory = "directory"
	PortFilePath  = "file_path"
	PortRoot      = "root"
	PortDirs      = "dirs"
	PortFiles     = "files"
)

//go:embed manifests/*.hcl
var manifests embed.FS

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers both walk generators.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterGenerator(WalkFilesGenerator, codegen.GeneratorFunc(GenerateWalkFiles))
	r.RegisterGenerator(WalkTreeGenerator, codegen.GeneratorFunc(GenerateWalkTree))
}

// Manifests returns the embedded kind manifests.
func (m *Module) Manifests() fs.FS {
	sub, err := fs.Sub(manifests, "manifests")
	if err != nil {
		panic(err)
	}
	return sub
}

// GenerateWalkFiles emits:
//
//	for var_<id>_root, _, var_<id>_files in os.walk(<directory>):
//	    for var_<id>_0 in var_<id>_files:
//	        var_<id>_0 = os.path.join(var_<id>_root, var_<id>_0)
//	        <loop>
//	<completed>
func GenerateWalkFiles(b *codegen.Block) error {
	dir, err := b.Input(PortDirectory)
	if err != nil {
		return err
	}
	fileVar, err := b.Var(PortFilePath)
	if err != nil {
		return err
	}
	rootVar := b.LoopVar() + "_root"
	filesVar := b.LoopVar() + "_files"

	b.Linef(b.Indent(), "for %s, _, %s in os.walk(%s):", rootVar, filesVar, dir)
	b.Linef(b.Indent()+1, "for %s in %s:", fileVar, filesVar)
	join := fmt.Sprintf("%s = os.path.join(%s, %s)", fileVar, rootVar, fileVar)
	if err := b.Branch(PortLoop, b.Indent()+2, join); err != nil {
		return err
	}
	return b.Continue(PortCompleted)
}

// GenerateWalkTree emits:
//
//	for var_<id>_0, var_<id>_1, var_<id>_2 in os.walk(<directory>):
//	    <loop>
//	<completed>
func GenerateWalkTree(b *codegen.Block) error {
	dir, err := b.Input(PortDirectory)
	if err != nil {
		return err
	}
	vars := make([]string, 0, 3)
	for _, out := range []string{PortRoot, PortDirs, PortFiles} {
		v, err := b.Var(out)
		if err != nil {
			return err
		}
		vars = append(vars, v)
	}

	b.Linef(b.Indent(), "for %s, %s, %s in os.walk(%s):", vars[0], vars[1], vars[2], dir)
	if err := b.Branch(PortLoop, b.Indent()+1); err != nil {
		return err
	}
	return b.Continue(PortCompleted)
}
