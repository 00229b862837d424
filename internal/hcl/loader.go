package hcl

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/vsgen/internal/config"
	"github.com/vk/vsgen/internal/ctxlog"
	"github.com/vk/vsgen/internal/fsutil"
)

// FileExtension is the extension of manifest and graph files.
const FileExtension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Load parses every .hcl file found under paths. Directories are walked recursively;
// paths that do not exist are skipped. Any file may hold any mix of blocks.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := l.findAllHCLFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	model := &config.Model{}
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		part, err := l.decodeFile(ctx, hclFile, file)
		if err != nil {
			return nil, err
		}
		model.Merge(part)
	}

	logger.Debug("HCL loading complete.", "kinds", len(model.Kinds), "graphs", len(model.Graphs))
	return model, nil
}

// LoadFS parses every .hcl file of an fs.FS, such as an embedded manifest tree, in
// lexical order.
func (l *Loader) LoadFS(ctx context.Context, fsys fs.FS) (*config.Model, error) {
	var files []string
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, FileExtension) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking embedded manifests: %w", err)
	}

	model := &config.Model{}
	for _, file := range files {
		src, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}
		part, err := l.LoadSource(ctx, src, file)
		if err != nil {
			return nil, err
		}
		model.Merge(part)
	}
	ctxlog.FromContext(ctx).Debug("Embedded HCL loaded.", "files", len(files), "kinds", len(model.Kinds))
	return model, nil
}

// LoadSource parses a single in-memory HCL document. filename is used in diagnostics.
func (l *Loader) LoadSource(ctx context.Context, src []byte, filename string) (*config.Model, error) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return l.decodeFile(ctx, hclFile, filename)
}

func (l *Loader) decodeFile(ctx context.Context, file *hcl.File, filename string) (*config.Model, error) {
	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	model := &config.Model{}
	for _, k := range root.Kinds {
		def, err := l.translateKind(ctx, k)
		if err != nil {
			return nil, err
		}
		model.Kinds = append(model.Kinds, def)
	}
	for _, g := range root.Graphs {
		def, err := l.translateGraph(ctx, g)
		if err != nil {
			return nil, err
		}
		model.Graphs = append(model.Graphs, def)
	}
	return model, nil
}

// findAllHCLFiles walks all given paths and returns a flat, de-duplicated list of the
// .hcl files found.
func (l *Loader) findAllHCLFiles(ctx context.Context, paths []string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)
	var allFiles []string
	seen := make(map[string]struct{})

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				logger.Debug("Skipping missing path.", "path", path)
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		found, err := fsutil.FindFilesByExtension(path, FileExtension)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			if _, wasSeen := seen[f]; !wasSeen {
				allFiles = append(allFiles, f)
				seen[f] = struct{}{}
			}
		}
	}
	return allFiles, nil
}
