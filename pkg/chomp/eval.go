package chomp

import "github.com/pkg/errors"

// Eval applies the evaluation rules to expr under ctx. It returns the
// contexts reachable from a successful match alongside the result.
//
// Eval is a pure function of its inputs: it consults no hidden state,
// mutates nothing it is given, and identical inputs always produce
// identical outputs. There is no cycle detection: a query chain that
// reaches back to itself through an outer scope recurses without bound,
// and a caller that needs a bound must impose one as a wrapper.
func Eval(ctx Context, expr Expr) ([]Context, Result) {
	switch e := expr.(type) {
	case Symbol:
		return []Context{ctx}, Succeed(e)
	case Top:
		return []Context{ctx}, Succeed(e)
	case Form:
		switch op := e.Op.(type) {
		case Declare:
			// Declarations are data, not computations.
			return []Context{ctx}, Succeed(e)
		case Witness:
			targets, err := queryTargets(op.Query)
			if err != nil {
				return nil, Fail(err)
			}
			return selectFrom(ctx, targets, e.Operands)
		case Assert:
			targets, err := queryTargets(op.Query)
			if err != nil {
				return nil, Fail(err)
			}
			return anchoredSelect(ctx, targets, e.Operands)
		default:
			return nil, Fail(errors.Wrapf(ErrUnimplemented, "operator %T", e.Op))
		}
	default:
		return nil, Fail(errors.Wrapf(ErrUnimplemented, "expression %T", expr))
	}
}

// Evaluate is the driver-facing entry point. It evaluates a top-level
// expression under an initial context, typically EmptyContext.
//
// A selector with no attached domain is a pending selector awaiting the
// operand of an enclosing form; one standing alone at the top level is an
// invariant violation, never a silent empty success.
func Evaluate(ctx Context, expr Expr) Result {
	if f, _, ok := selector(expr); ok && len(f.Operands) == 0 {
		return Fail(errors.Wrapf(ErrInvariant, "pending selector %s has no domain", f))
	}
	_, r := Eval(ctx, expr)
	return r
}

func queryTargets(q Query) ([]Expr, error) {
	switch q := q.(type) {
	case Conjunct:
		return q.Exprs, nil
	case Complement:
		return nil, errors.Wrap(ErrUnimplemented, "complement query")
	default:
		return nil, errors.Wrapf(ErrUnimplemented, "query %T", q)
	}
}

// selectFrom searches the member sequence for expressions matching the
// target list. Selection distributes element-wise over the members, and
// the per-member results are unioned in input order.
func selectFrom(ctx Context, targets, members []Expr) ([]Context, Result) {
	// Nothing present to search, regardless of what is being searched
	// for.
	if len(members) == 0 {
		return nil, Succeed()
	}

	var ctxs []Context
	var matches []Expr
	for i := range members {
		cs, r := selectMember(ctx, targets, members, i)
		if r.Failed() {
			return nil, r
		}
		ctxs = append(ctxs, cs...)
		matches = append(matches, r.Matches()...)
	}
	return ctxs, Succeed(matches...)
}

func selectMember(ctx Context, targets, members []Expr, i int) ([]Context, Result) {
	switch m := members[i].(type) {
	case Top:
		// Selecting from everything returns exactly what was asked
		// for, without narrowing the context.
		return []Context{ctx}, Succeed(targets...)

	case Symbol:
		// An atom has no internal structure; its members come from
		// whatever the enclosing scopes declare it to be.
		if len(ctx) == 0 {
			return nil, Succeed()
		}
		return resolveSymbol(ctx, targets, m)

	case Form:
		if _, d, ok := declaration(members[i]); ok {
			return selectDeclaration(ctx, targets, members, i, m, d)
		}
		if _, _, ok := selector(members[i]); ok {
			return selectThrough(ctx, targets, m)
		}
		return nil, Fail(errors.Wrapf(ErrUnimplemented, "selecting from %s", m))

	default:
		return nil, Fail(errors.Wrapf(ErrUnimplemented, "selecting from %T", members[i]))
	}
}

// selectDeclaration matches the targets against a declaration's domain
// and, on a match, projects the declaration's range. The reachable
// context gains a scope over the whole member collection focused on the
// matched declaration, so the declaration's own range can consult its
// siblings but never the declaration itself.
func selectDeclaration(ctx Context, targets, members []Expr, i int, f Form, d Declare) ([]Context, Result) {
	expanded := expandTargets(ctx, targets)
	if expanded.Failed() {
		return nil, expanded
	}

	for _, t := range expanded.Matches() {
		if matchesAny(t, d.Domain) {
			inner := ctx.push(Scope{Focus: i, Members: members})
			return []Context{inner}, Succeed(f.Operands...)
		}
	}
	return nil, Succeed()
}

// selectThrough chains selection through a nested selector: the inner
// selector is evaluated first, then the targets are selected from its
// matches under each of its reachable contexts. Failures of one reachable
// branch contribute nothing rather than silencing the others.
func selectThrough(ctx Context, targets []Expr, inner Form) ([]Context, Result) {
	innerCtxs, r := Eval(ctx, inner)
	if r.Failed() {
		return nil, r
	}

	var ctxs []Context
	combined := Succeed()
	for _, c := range innerCtxs {
		cs, sub := selectFrom(c, targets, r.Matches())
		if !sub.Failed() {
			ctxs = append(ctxs, cs...)
		}
		combined = Collect(combined, sub)
	}
	return ctxs, combined
}

// resolveSymbol resolves a symbol against the context stack, innermost
// scope first. Only the environment of each scope is consulted, never the
// focus itself. The first scope that produces a non-empty match set wins;
// outer scopes are consulted only when the inner result is fully empty.
func resolveSymbol(ctx Context, targets []Expr, sym Symbol) ([]Context, Result) {
	for depth, scope := range ctx {
		var ctxs []Context
		var matches []Expr
		for i, member := range scope.Members {
			if i == scope.Focus {
				continue
			}
			f, d, ok := declaration(member)
			if !ok {
				continue
			}
			if !matchesAny(sym, d.Domain) {
				continue
			}

			// Continue under the declaring scope, refocused on the
			// matched declaration. Scopes inside the one that
			// declared the symbol are out of reach from here.
			outer := Context(ctx[depth+1:])
			inner := outer.push(Scope{Focus: i, Members: scope.Members})

			cs, r := selectFrom(inner, targets, f.Operands)
			if r.Failed() {
				return nil, r
			}
			ctxs = append(ctxs, cs...)
			matches = append(matches, r.Matches()...)
		}
		if len(matches) > 0 {
			return ctxs, Succeed(matches...)
		}
	}
	return nil, Succeed()
}

// anchoredSelect matches the targets against the members themselves and
// pulls the matching members up verbatim. Unlike selectFrom it never
// traverses the context stack and never re-queries environment siblings.
func anchoredSelect(ctx Context, targets, members []Expr) ([]Context, Result) {
	if len(members) == 0 {
		return nil, Succeed()
	}

	expanded := expandTargets(ctx, targets)
	if expanded.Failed() {
		return nil, expanded
	}

	var matched []Expr
	for _, m := range members {
		for _, t := range expanded.Matches() {
			if Matches(t, m) {
				matched = append(matched, m)
				break
			}
		}
	}
	if len(matched) == 0 {
		return nil, Succeed()
	}
	return []Context{ctx}, Succeed(matched...)
}

// expandTargets distributes the searched-for side: targets that are
// themselves selectors are evaluated under ctx and replaced by their
// matches, in order. Any failing target fails the whole group.
func expandTargets(ctx Context, targets []Expr) Result {
	return FoldEval(func(t Expr) Result {
		if _, _, ok := selector(t); ok {
			_, r := Eval(ctx, t)
			return r
		}
		return Succeed(t)
	}, targets)
}
