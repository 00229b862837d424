package codegen

import (
	"fmt"

	"github.com/vk/vsgen/internal/graph"
)

// Generator emits the construct of a custom-code node.
type Generator interface {
	Generate(b *Block) error
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func(b *Block) error

// Generate implements Generator.
func (f GeneratorFunc) Generate(b *Block) error {
	return f(b)
}

// GeneratorSource looks up generators by the name stored in graph.Node.Generator.
type GeneratorSource interface {
	Generator(name string) (Generator, bool)
}

// Generators is a map-backed GeneratorSource.
type Generators map[string]Generator

// Generator implements GeneratorSource.
func (g Generators) Generator(name string) (Generator, bool) {
	gen, ok := g[name]
	return gen, ok
}

// Block is the view of a compilation pass handed to a custom-code generator. The node's
// Data outputs are pre-bound to var_<id>_<index>; Bind overrides a binding and must be
// called before the generator expands any branch that consumes it.
type Block struct {
	p      *pass
	node   *graph.Node
	indent int
}

// Node returns the node being generated.
func (b *Block) Node() *graph.Node { return b.node }

// Indent returns the level at which the construct starts.
func (b *Block) Indent() int { return b.indent }

// Line writes one line of source at the given level.
func (b *Block) Line(indent int, text string) {
	b.p.emit(indent, text)
}

// Linef is Line with fmt formatting.
func (b *Block) Linef(indent int, format string, args ...any) {
	b.p.emit(indent, fmt.Sprintf(format, args...))
}

// Input resolves the named Data/In port, emitting its producer at the construct's level
// if needed.
func (b *Block) Input(name string) (string, error) {
	return b.p.resolveNamed(b.node, name, b.indent)
}

// Var returns the variable currently bound to the named Data/Out port.
func (b *Block) Var(output string) (string, error) {
	idx, err := b.outputIndex(output)
	if err != nil {
		return "", err
	}
	return b.p.memo[b.node.ID][idx], nil
}

// LoopVar returns var_<id>, the name conventionally bound by loop constructs.
func (b *Block) LoopVar() string {
	return loopVarName(b.node.ID)
}

// Bind makes consumers of the named Data/Out port read variable instead of the
// standard name.
func (b *Block) Bind(output, variable string) error {
	idx, err := b.outputIndex(output)
	if err != nil {
		return err
	}
	b.p.memo[b.node.ID][idx] = variable
	return nil
}

// Connected reports whether the named output has at least one connection.
func (b *Block) Connected(output string) bool {
	port, err := b.p.g.PortByName(b.node.ID, graph.Out, output)
	if err != nil {
		return false
	}
	return b.p.g.IsConnected(port.ID)
}

// Branch expands the chain behind the named Exec/Out port at indent, after writing the
// optional pre lines. An empty branch is closed with pass.
func (b *Block) Branch(output string, indent int, pre ...string) error {
	return b.p.branch(b.node, output, indent, pre...)
}

// Continue makes the enclosing chain resume at the named Exec/Out port once the
// construct is complete.
func (b *Block) Continue(output string) error {
	return b.p.continueFrom(b.node, output)
}

// Literal renders a literal as source.
func (b *Block) Literal(l graph.Literal) string {
	return RenderLiteral(l)
}

func (b *Block) outputIndex(output string) (int, error) {
	port, err := b.p.g.PortByName(b.node.ID, graph.Out, output)
	if err != nil {
		return 0, err
	}
	return b.p.dataIndex(b.node, port)
}
