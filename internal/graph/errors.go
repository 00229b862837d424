package graph

import "errors"

var (
	// ErrInvalidReference is returned for lookups of unknown node or port ids. Inside
	// the generator it signals a programming error, not a user-facing failure.
	ErrInvalidReference = errors.New("invalid graph reference")

	ErrInvalidNodeID     = errors.New("invalid node ID")
	ErrDuplicateNode     = errors.New("duplicate node ID")
	ErrDuplicatePort     = errors.New("duplicate port name")
	ErrInvalidConnection = errors.New("invalid connection")
	ErrDataCycle         = errors.New("cycle detected in data connections")
	ErrInvalidLiteral    = errors.New("invalid literal")
)
