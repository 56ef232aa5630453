package binding

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnresolvedReference is returned when a getter names neither a declared
	// variable nor a bound property of its owning component.
	ErrUnresolvedReference = errors.New("unresolved reference")
	// ErrCycle is returned when a redirection chain comes back to itself
	// without reaching a declared variable.
	ErrCycle = errors.New("redirection cycle")
	// ErrDuplicateBinding is returned when two components share an id, so
	// their bindings cannot be told apart.
	ErrDuplicateBinding = errors.New("duplicate binding")
)

// ResolveError is a fatal resolution error. It wraps one of the sentinel
// errors above; match it with errors.Is.
type ResolveError struct {
	// Kind is ErrUnresolvedReference, ErrCycle or ErrDuplicateBinding.
	Kind error
	// Component is the component owning the offending getter.
	Component string
	// Ident is the offending identifier.
	Ident string
	// Binding is the extern property being collected or resolved, if any.
	Binding Key
	// Chain lists the redirection hops followed, outermost first. For a cycle
	// the first and last hops are the same node.
	Chain []Key
	// Suggestion is a close known identifier for an unresolved reference.
	Suggestion string
}

// Error implements error.
func (e *ResolveError) Error() string {
	var b strings.Builder

	b.WriteString(e.Kind.Error())

	if e.Component != "" {
		fmt.Fprintf(&b, ": %q in component %q", e.Ident, e.Component)
	}

	if e.Binding.Instance != "" {
		fmt.Fprintf(&b, " (binding %s)", e.Binding)
	}

	if len(e.Chain) > 0 {
		hops := make([]string, len(e.Chain))
		for i, hop := range e.Chain {
			hops[i] = hop.String()
		}

		b.WriteString(": ")
		b.WriteString(strings.Join(hops, " -> "))
	}

	if e.Suggestion != "" {
		fmt.Fprintf(&b, "; did you mean %q?", e.Suggestion)
	}

	return b.String()
}

// Unwrap returns the sentinel kind.
func (e *ResolveError) Unwrap() error {
	return e.Kind
}
