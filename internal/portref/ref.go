// internal/portref/ref.go
package portref

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidRef is returned for addresses that are not of the form node.port.
var ErrInvalidRef = errors.New("invalid port reference")

var segmentRegex = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Ref addresses one port of one node.
type Ref struct {
	Node string
	Port string
}

// Parse creates a Ref from its canonical string representation.
func Parse(raw string) (Ref, error) {
	if raw == "" {
		return Ref{}, fmt.Errorf("%w: reference cannot be empty", ErrInvalidRef)
	}

	node, port, ok := strings.Cut(raw, ".")
	if !ok {
		return Ref{}, fmt.Errorf("%w: %q has no port segment", ErrInvalidRef, raw)
	}
	for _, segment := range []string{node, port} {
		if !segmentRegex.MatchString(segment) {
			return Ref{}, fmt.Errorf("%w: invalid segment %q in %q", ErrInvalidRef, segment, raw)
		}
	}
	return Ref{Node: node, Port: port}, nil
}

// MustParse is Parse for references known at compile time. It panics on error.
func MustParse(raw string) Ref {
	r, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return r
}

// String serializes the Ref into its canonical representation.
func (r Ref) String() string {
	return r.Node + "." + r.Port
}

// IsZero reports whether the Ref is unset.
func (r Ref) IsZero() bool {
	return r.Node == "" && r.Port == ""
}
