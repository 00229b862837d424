package codegen

import (
	"errors"
	"strings"

	"github.com/vk/vsgen/internal/graph"
)

var (
	// ErrInvalidGraphReference signals a dangling node or port lookup.
	ErrInvalidGraphReference = graph.ErrInvalidReference
	// ErrUnresolvedControlFlowKind signals a node kind or control variant the expander
	// has no emission rule for.
	ErrUnresolvedControlFlowKind = errors.New("unresolved control flow kind")
	// ErrCyclicDataDependency signals that resolving a node's inputs reached the node
	// again. Returned errors are *CycleError values that match it with errors.Is.
	ErrCyclicDataDependency = errors.New("cyclic data dependency")
	// ErrMissingEntryPoint signals an absent entry node, or one that is not an
	// executable node without an exec predecessor.
	ErrMissingEntryPoint = errors.New("missing entry point")
	// ErrExecCycle signals an Exec chain that reaches the same node twice.
	ErrExecCycle = errors.New("cyclic exec flow")
	// ErrIncompleteNode signals a node whose kind lacks what its emission needs: a
	// callable, an inline template or a registered generator.
	ErrIncompleteNode = errors.New("incomplete node")
	// ErrInvalidName signals a module or function name that is not an identifier.
	ErrInvalidName = errors.New("invalid identifier")
)

// CycleError reports the node path of a cyclic data dependency.
type CycleError struct {
	Path []graph.NodeID
}

func (e *CycleError) Error() string {
	ids := make([]string, len(e.Path))
	for i, id := range e.Path {
		ids[i] = string(id)
	}
	return ErrCyclicDataDependency.Error() + ": " + strings.Join(ids, " -> ")
}

// Is makes errors.Is(err, ErrCyclicDataDependency) hold.
func (e *CycleError) Is(target error) bool {
	return target == ErrCyclicDataDependency
}
