package config

import (
	"fmt"

	"github.com/vk/vsgen/internal/graph"
	"github.com/vk/vsgen/internal/portref"
)

// Model is the unified, format-agnostic representation of everything read from disk:
// node-kind manifests and graph definitions.
type Model struct {
	Kinds  []*KindDefinition
	Graphs []*GraphDefinition
}

// Merge appends the contents of other to m.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	m.Kinds = append(m.Kinds, other.Kinds...)
	m.Graphs = append(m.Graphs, other.Graphs...)
}

// Graph returns the single graph of the model, or the one with the given name.
func (m *Model) Graph(name string) (*GraphDefinition, error) {
	if name == "" {
		switch len(m.Graphs) {
		case 0:
			return nil, fmt.Errorf("no graph defined")
		case 1:
			return m.Graphs[0], nil
		default:
			return nil, fmt.Errorf("%d graphs defined, a name is required", len(m.Graphs))
		}
	}
	for _, g := range m.Graphs {
		if g.Name == name {
			return g, nil
		}
	}
	return nil, fmt.Errorf("graph %q not defined", name)
}

// --- Node Kind Manifest Models ---

// KindDefinition is the format-agnostic representation of a `node_kind` block.
type KindDefinition struct {
	Name        string
	Category    string
	Description string

	// Executable kinds get an exec input and output. Entry kinds omit the exec input.
	Executable bool
	Entry      bool

	// Exactly one of Callable, Inline, Control or Generator selects the compilation kind.
	Callable  string
	Inline    InlineSource
	Control   string
	Generator string

	Imports []string

	Inputs  []*InputDefinition
	Outputs []*OutputDefinition
	// Properties are per-node settings that are not ports, with their defaults.
	Properties []*InputDefinition
	// ExecInputs and ExecOutputs list extra exec ports of custom-code kinds.
	ExecInputs  []string
	ExecOutputs []string

	// Source locates the definition for error messages, e.g. "stdlib/math.hcl:12".
	Source string
}

// InputDefinition defines a single Data/In port or property of a kind.
type InputDefinition struct {
	Name        string
	Description string
	Default     graph.Literal
	Multi       bool
}

// OutputDefinition defines a single Data/Out port of a kind.
type OutputDefinition struct {
	Name        string
	Description string
}

// --- Graph Models ---

// GraphDefinition is the format-agnostic representation of a `graph` block.
type GraphDefinition struct {
	Name        string
	Entry       string
	Nodes       []*NodeDefinition
	Connections []*ConnectionDefinition
	Source      string
}

// NodeDefinition is one node instance inside a graph.
type NodeDefinition struct {
	ID   string
	Kind string
	Name string
	// Properties override the defaults of inputs with the same name; the rest are kept
	// as node properties for inline templates and generators.
	Properties map[string]graph.Literal
}

// ConnectionDefinition connects two ports by reference.
type ConnectionDefinition struct {
	From portref.Ref
	To   portref.Ref
}
