package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot is used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Kinds  []*kindBlock  `hcl:"node_kind,block"`
	Graphs []*graphBlock `hcl:"graph,block"`
	Remain hcl.Body      `hcl:",remain"`
}

// --- Node Kind Manifest Schemas ---

// kindBlock is a `node_kind` block. Exactly one of callable, inline, control and
// generator selects how nodes of the kind are compiled.
type kindBlock struct {
	Name        string `hcl:"name,label"`
	Category    string `hcl:"category,optional"`
	Description string `hcl:"description,optional"`

	Executable bool           `hcl:"executable,optional"`
	Entry      bool           `hcl:"entry,optional"`
	Callable   string         `hcl:"callable,optional"`
	Inline     hcl.Expression `hcl:"inline,optional"`
	Control    string         `hcl:"control,optional"`
	Generator  string         `hcl:"generator,optional"`

	Imports     []string `hcl:"imports,optional"`
	ExecInputs  []string `hcl:"exec_inputs,optional"`
	ExecOutputs []string `hcl:"exec_outputs,optional"`

	Inputs     []*inputBlock  `hcl:"input,block"`
	Outputs    []*outputBlock `hcl:"output,block"`
	Properties []*inputBlock  `hcl:"property,block"`

	DefRange hcl.Range `hcl:",def_range"`
}

// inputBlock declares a Data/In port or a node property. `default_expr` holds Python
// source emitted verbatim and wins over `default`.
type inputBlock struct {
	Name        string         `hcl:"name,label"`
	Description string         `hcl:"description,optional"`
	Default     hcl.Expression `hcl:"default,optional"`
	DefaultExpr string         `hcl:"default_expr,optional"`
	Multi       bool           `hcl:"multi,optional"`
}

// outputBlock declares a Data/Out port.
type outputBlock struct {
	Name        string `hcl:"name,label"`
	Description string `hcl:"description,optional"`
}

// --- Graph Schemas ---

// graphBlock is a `graph` block holding node instances and their connections.
type graphBlock struct {
	Name     string          `hcl:"name,label"`
	Entry    string          `hcl:"entry,optional"`
	Nodes    []*nodeBlock    `hcl:"node,block"`
	Connects []*connectBlock `hcl:"connect,block"`

	DefRange hcl.Range `hcl:",def_range"`
}

// nodeBlock is one node instance. `expressions` sets properties to Python source.
type nodeBlock struct {
	ID          string            `hcl:"id,label"`
	Kind        string            `hcl:"kind"`
	Name        string            `hcl:"name,optional"`
	Properties  hcl.Expression    `hcl:"properties,optional"`
	Expressions map[string]string `hcl:"expressions,optional"`
}

// connectBlock links an output port to an input port, both as node.port.
type connectBlock struct {
	From string `hcl:"from"`
	To   string `hcl:"to"`
}
