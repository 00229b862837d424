package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/vk/vsgen/internal/config"
	"github.com/vk/vsgen/internal/ctxlog"
	"github.com/vk/vsgen/internal/fsutil"
	"github.com/vk/vsgen/internal/graph"
	"github.com/vk/vsgen/internal/portref"
)

// Loader is the JSON session implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new session loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Load reads every .json file found under paths, one graph per file. Paths that do not
// exist are skipped.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := &config.Model{}
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			logger.Warn("Session path does not exist, skipping.", "path", path)
			continue
		}
		files, err := fsutil.FindFilesByExtension(path, FileExtension)
		if err != nil {
			return nil, fmt.Errorf("error finding session files in %s: %w", path, err)
		}
		for _, file := range files {
			src, err := os.ReadFile(file)
			if err != nil {
				return nil, fmt.Errorf("failed to read session file %s: %w", file, err)
			}
			def, err := l.Decode(ctx, src, file)
			if err != nil {
				return nil, err
			}
			model.Graphs = append(model.Graphs, def)
		}
	}
	logger.Debug("Session loading complete.", "graphs", len(model.Graphs))
	return model, nil
}

// Decode translates one session document. Unknown fields are rejected.
func (l *Loader) Decode(ctx context.Context, src []byte, filename string) (*config.GraphDefinition, error) {
	var doc document
	dec := json.NewDecoder(bytes.NewReader(src))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode session file %s: %w", filename, err)
	}

	ctxlog.FromContext(ctx).Debug("Translating session to internal config model.",
		"file", filename, "nodes", len(doc.Nodes), "connections", len(doc.Connections))

	name := doc.Graph.Name
	if name == "" {
		return nil, fmt.Errorf("session file %s: graph name is required", filename)
	}
	def := &config.GraphDefinition{
		Name:   name,
		Entry:  doc.Entry,
		Source: filename,
	}

	for _, n := range doc.Nodes {
		if n.ID == "" || n.Kind == "" {
			return nil, fmt.Errorf("session file %s: node needs both id and kind", filename)
		}
		props := make(map[string]graph.Literal, len(n.Properties)+len(n.Expressions))
		for k, raw := range n.Properties {
			lit, err := literalFromJSON(raw)
			if err != nil {
				return nil, fmt.Errorf("session file %s, node %q, property %q: %w", filename, n.ID, k, err)
			}
			props[k] = lit
		}
		for k, src := range n.Expressions {
			if _, dup := props[k]; dup {
				return nil, fmt.Errorf("session file %s, node %q: property %q set both as value and expression", filename, n.ID, k)
			}
			props[k] = graph.Expression(src)
		}
		def.Nodes = append(def.Nodes, &config.NodeDefinition{
			ID:         n.ID,
			Kind:       n.Kind,
			Name:       n.Name,
			Properties: props,
		})
	}

	for _, c := range doc.Connections {
		from, err := portref.Parse(c.From)
		if err != nil {
			return nil, fmt.Errorf("session file %s: connection from: %w", filename, err)
		}
		to, err := portref.Parse(c.To)
		if err != nil {
			return nil, fmt.Errorf("session file %s: connection to: %w", filename, err)
		}
		def.Connections = append(def.Connections, &config.ConnectionDefinition{From: from, To: to})
	}
	return def, nil
}
