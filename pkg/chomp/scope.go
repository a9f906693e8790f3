package chomp

import "github.com/pkg/errors"

// Scope isolates one level of declarations together with the declaration
// currently being resolved. Members are stored as an indexable sequence
// with an explicit focus index rather than as self-referential pointers,
// so a declaration can never reach itself through direct lookup.
type Scope struct {
	// Focus designates the declaration being resolved. It must index a
	// valid member whenever Members is non-empty.
	Focus int

	// Members are the declarations of this level, in source order.
	Members []Expr
}

// EmptyScope is the canonical scope with no declarations and no
// meaningful focus.
func EmptyScope() Scope {
	return Scope{Focus: 0, Members: nil}
}

// FocusExpr returns the expression at the focus index. By construction it
// is always a Declare-headed Form; any other shape is an invariant
// violation.
func (s Scope) FocusExpr() (Form, error) {
	if len(s.Members) == 0 {
		return Form{}, errors.Wrap(ErrInvariant, "focus of an empty scope")
	}
	if s.Focus < 0 || s.Focus >= len(s.Members) {
		return Form{}, errors.Wrapf(ErrInvariant, "focus index %d out of range [0,%d)", s.Focus, len(s.Members))
	}
	f, _, ok := declaration(s.Members[s.Focus])
	if !ok {
		return Form{}, errors.Wrapf(ErrInvariant, "focus is not a declaration: %s", s.Members[s.Focus])
	}
	return f, nil
}

// FocusDomain returns the domain sequence of the focus declaration.
func (s Scope) FocusDomain() ([]Expr, error) {
	f, err := s.FocusExpr()
	if err != nil {
		return nil, err
	}
	return f.Op.(Declare).Domain, nil
}

// Environment returns the members with the focus element removed. This is
// the only way siblings are exposed to matching, which guarantees a
// declaration cannot match itself and recurse through direct self-lookup.
func (s Scope) Environment() []Expr {
	if len(s.Members) == 0 {
		return nil
	}
	env := make([]Expr, 0, len(s.Members)-1)
	for i, m := range s.Members {
		if i == s.Focus {
			continue
		}
		env = append(env, m)
	}
	return env
}

// Context is the stack of enclosing scopes, innermost first. The empty
// context is valid and represents top-level evaluation with no enclosing
// declarations.
type Context []Scope

// EmptyContext is the canonical starting point for top-level evaluation:
// a single empty scope.
func EmptyContext() Context {
	return Context{EmptyScope()}
}

// push returns a new context with scope stacked innermost. The receiver
// is never mutated; the scope slice is copied.
func (c Context) push(scope Scope) Context {
	stacked := make(Context, 0, len(c)+1)
	stacked = append(stacked, scope)
	stacked = append(stacked, c...)
	return stacked
}
