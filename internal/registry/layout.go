package registry

import (
	"github.com/vk/vsgen/internal/codegen"
	"github.com/vk/vsgen/internal/config"
	"github.com/vk/vsgen/internal/graph"
)

// Layout is what a kind contributes to every node created from it.
type Layout struct {
	Kind        graph.Kind
	Control     graph.ControlVariant
	ControlName string
	Ports       []graph.PortSpec
}

// LayoutOf derives the compilation category and ports of a kind. Executable kinds get
// an "exec" pair (entry kinds only the output), control kinds the built-in layout of
// their variant and custom-code kinds the exec ports they declare. Data ports follow in
// declaration order.
func LayoutOf(def *config.KindDefinition) Layout {
	if def.Control != "" {
		v, _ := graph.ParseControlVariant(def.Control)
		return Layout{
			Kind:        graph.KindControlFlow,
			Control:     v,
			ControlName: def.Control,
			Ports:       codegen.ControlPorts(v),
		}
	}

	var l Layout
	switch {
	case def.Generator != "":
		l.Kind = graph.KindCustomCode
		for _, name := range def.ExecInputs {
			l.Ports = append(l.Ports, graph.ExecIn(name))
		}
		for _, name := range def.ExecOutputs {
			l.Ports = append(l.Ports, graph.ExecOut(name))
		}
	case def.Inline != nil:
		l.Kind = graph.KindInline
	default:
		l.Kind = graph.KindExecutable
	}

	if def.Executable && l.Kind != graph.KindCustomCode {
		if !def.Entry {
			l.Ports = append(l.Ports, graph.ExecIn(codegen.PortExec))
		}
		l.Ports = append(l.Ports, graph.ExecOut(codegen.PortExec))
	}
	for _, in := range def.Inputs {
		l.Ports = append(l.Ports, graph.PortSpec{
			Name:      in.Name,
			Direction: graph.In,
			Channel:   graph.Data,
			Default:   in.Default,
			Multi:     in.Multi,
		})
	}
	for _, out := range def.Outputs {
		l.Ports = append(l.Ports, graph.DataOut(out.Name))
	}
	return l
}
