package graph

import "fmt"

// NodeID is the unique, identifier-safe id of a node. It is embedded verbatim into
// generated variable names, e.g. var_<id>_0.
type NodeID string

// PortID indexes the port table of a Graph.
type PortID int

// NoPort is returned where a lookup found no port.
const NoPort PortID = -1

// Direction tells whether a port receives or produces.
type Direction int

const (
	In Direction = iota
	Out
)

func (d Direction) String() string {
	if d == In {
		return "in"
	}
	return "out"
}

// Channel distinguishes value-carrying ports from control-flow ports.
type Channel int

const (
	// Data ports feed expression arguments.
	Data Channel = iota
	// Exec ports sequence statements.
	Exec
)

func (c Channel) String() string {
	if c == Data {
		return "data"
	}
	return "exec"
}

// Kind is the compilation category of a node.
type Kind int

const (
	// KindExecutable nodes are compiled into a call of their Callable.
	KindExecutable Kind = iota
	// KindInline nodes are compiled into an expression substituted at each use site.
	KindInline
	// KindCustomCode nodes delegate their emission to a registered generator.
	KindCustomCode
	// KindControlFlow nodes expand into nested blocks, see ControlVariant.
	KindControlFlow
)

func (k Kind) String() string {
	switch k {
	case KindExecutable:
		return "executable"
	case KindInline:
		return "inline"
	case KindCustomCode:
		return "custom_code"
	case KindControlFlow:
		return "control_flow"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ControlVariant selects the block shape of a KindControlFlow node.
type ControlVariant int

const (
	ControlNone ControlVariant = iota
	ControlIf
	ControlForLoop
	ControlForEachLoop
	ControlWhileLoop
	ControlTryExceptFinally
)

var controlNames = map[ControlVariant]string{
	ControlNone:             "none",
	ControlIf:               "if",
	ControlForLoop:          "for_loop",
	ControlForEachLoop:      "for_each_loop",
	ControlWhileLoop:        "while_loop",
	ControlTryExceptFinally: "try_except_finally",
}

func (v ControlVariant) String() string {
	if name, ok := controlNames[v]; ok {
		return name
	}
	return fmt.Sprintf("control(%d)", int(v))
}

// ParseControlVariant maps a manifest control name to its variant. Unknown names return
// false; the variant is kept unresolved on the node so that the generator can report it.
func ParseControlVariant(name string) (ControlVariant, bool) {
	for v, n := range controlNames {
		if n == name && v != ControlNone {
			return v, true
		}
	}
	return ControlNone, false
}

// InlineTemplate renders the expression of an inline node from the already-resolved
// argument expressions, keyed by input port name.
type InlineTemplate interface {
	Expand(args map[string]string) (string, error)
}

// InlineFunc adapts a plain function to InlineTemplate.
type InlineFunc func(args map[string]string) (string, error)

// Expand implements InlineTemplate.
func (f InlineFunc) Expand(args map[string]string) (string, error) {
	return f(args)
}

// Node is a unit of computation or control.
type Node struct {
	ID   NodeID
	Name string
	Kind Kind
	// Control is set for KindControlFlow nodes. ControlName keeps the raw manifest name
	// so that an unrecognized variant can still be reported by name.
	Control     ControlVariant
	ControlName string

	// Callable is the fully-qualified function invoked by executable nodes.
	Callable string
	// Imports lists import lines the node's kind requires in the generated module.
	Imports []string
	// Inline renders the expression of KindInline nodes.
	Inline InlineTemplate
	// Generator names the registered generator of KindCustomCode nodes.
	Generator string

	Properties map[string]Literal

	Inputs  []PortID
	Outputs []PortID
}

// Property returns a property literal, or the None literal if the property is unset.
func (n *Node) Property(name string) Literal {
	if l, ok := n.Properties[name]; ok {
		return l
	}
	return None()
}

// Port is a connection point owned by exactly one node.
type Port struct {
	ID        PortID
	Node      NodeID
	Name      string
	Direction Direction
	Channel   Channel
	// Default is used for unconnected Data/In ports.
	Default Literal
	// Multi allows several producers on a Data/In port. Only the first is compiled.
	Multi bool
}

func (p *Port) String() string {
	return fmt.Sprintf("%s.%s", p.Node, p.Name)
}

// IsExec reports whether the port belongs to the Exec channel.
func (p *Port) IsExec() bool {
	return p.Channel == Exec
}

// PortSpec describes a port to create with AddNode.
type PortSpec struct {
	Name      string
	Direction Direction
	Channel   Channel
	Default   Literal
	Multi     bool
}

// DataIn is shorthand for a single-connection Data/In port spec.
func DataIn(name string, def Literal) PortSpec {
	return PortSpec{Name: name, Direction: In, Channel: Data, Default: def}
}

// DataOut is shorthand for a Data/Out port spec.
func DataOut(name string) PortSpec {
	return PortSpec{Name: name, Direction: Out, Channel: Data}
}

// ExecIn is shorthand for an Exec/In port spec.
func ExecIn(name string) PortSpec {
	return PortSpec{Name: name, Direction: In, Channel: Exec}
}

// ExecOut is shorthand for an Exec/Out port spec.
func ExecOut(name string) PortSpec {
	return PortSpec{Name: name, Direction: Out, Channel: Exec}
}

// Connection is a directed edge from an Out port to an In port.
type Connection struct {
	From PortID
	To   PortID
}
