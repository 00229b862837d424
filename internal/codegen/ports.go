package codegen

import "github.com/vk/vsgen/internal/graph"

// Port names of the built-in control-flow layouts.
const (
	PortExec      = "exec"
	PortCondition = "condition"
	PortTrue      = "true"
	PortFalse     = "false"

	PortStart      = "start"
	PortEnd        = "end"
	PortCollection = "collection"
	PortIndex      = "index"
	PortValue      = "value"
	PortBody       = "body"
	PortCompleted  = "completed"

	PortTry       = "try"
	PortExcept    = "except"
	PortFinally   = "finally"
	PortAfter     = "after"
	PortException = "exception"
)

// ControlPorts returns the fixed port layout of a control-flow variant, or nil for
// ControlNone and unknown variants.
func ControlPorts(v graph.ControlVariant) []graph.PortSpec {
	switch v {
	case graph.ControlIf:
		return []graph.PortSpec{
			graph.ExecIn(PortExec),
			graph.DataIn(PortCondition, graph.Bool(false)),
			graph.ExecOut(PortTrue),
			graph.ExecOut(PortFalse),
		}
	case graph.ControlForLoop:
		return []graph.PortSpec{
			graph.ExecIn(PortExec),
			graph.DataIn(PortStart, graph.Int(0)),
			graph.DataIn(PortEnd, graph.Int(0)),
			graph.ExecOut(PortBody),
			graph.ExecOut(PortCompleted),
			graph.DataOut(PortIndex),
		}
	case graph.ControlForEachLoop:
		return []graph.PortSpec{
			graph.ExecIn(PortExec),
			graph.DataIn(PortCollection, graph.Expression("[]")),
			graph.ExecOut(PortBody),
			graph.ExecOut(PortCompleted),
			graph.DataOut(PortValue),
		}
	case graph.ControlWhileLoop:
		return []graph.PortSpec{
			graph.ExecIn(PortExec),
			graph.DataIn(PortCondition, graph.Bool(false)),
			graph.ExecOut(PortBody),
			graph.ExecOut(PortCompleted),
		}
	case graph.ControlTryExceptFinally:
		return []graph.PortSpec{
			graph.ExecIn(PortExec),
			graph.ExecOut(PortTry),
			graph.ExecOut(PortExcept),
			graph.ExecOut(PortFinally),
			graph.ExecOut(PortAfter),
			graph.DataOut(PortException),
		}
	default:
		return nil
	}
}
