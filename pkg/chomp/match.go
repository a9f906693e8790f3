package chomp

// Matches reports whether target matches candidate. Matching is pure
// structural recursion: Top succeeds against anything on either side,
// symbols compare by token, and compound shapes must agree on operator
// shape with their carried sequences matching element-wise. A symbol
// never matches a declaration node.
func Matches(target, candidate Expr) bool {
	if _, ok := target.(Top); ok {
		return true
	}
	if _, ok := candidate.(Top); ok {
		return true
	}

	switch t := target.(type) {
	case Symbol:
		c, ok := candidate.(Symbol)
		return ok && t.Name == c.Name
	case Form:
		c, ok := candidate.(Form)
		if !ok {
			return false
		}
		return operatorMatches(t.Op, c.Op) && sequenceMatches(t.Operands, c.Operands)
	default:
		return false
	}
}

func operatorMatches(target, candidate Operator) bool {
	switch t := target.(type) {
	case Declare:
		c, ok := candidate.(Declare)
		return ok && sequenceMatches(t.Domain, c.Domain)
	case Witness:
		c, ok := candidate.(Witness)
		return ok && queryMatches(t.Query, c.Query)
	case Assert:
		c, ok := candidate.(Assert)
		return ok && queryMatches(t.Query, c.Query)
	default:
		return false
	}
}

func queryMatches(target, candidate Query) bool {
	switch target.(type) {
	case Conjunct:
		if _, ok := candidate.(Conjunct); !ok {
			return false
		}
	case Complement:
		if _, ok := candidate.(Complement); !ok {
			return false
		}
	default:
		return false
	}
	return sequenceMatches(target.Targets(), candidate.Targets())
}

// sequenceMatches distributes matching element-wise: every target element
// must match some candidate element. An empty target sequence matches
// anything.
func sequenceMatches(targets, candidates []Expr) bool {
	for _, t := range targets {
		if !matchesAny(t, candidates) {
			return false
		}
	}
	return true
}

func matchesAny(target Expr, candidates []Expr) bool {
	for _, c := range candidates {
		if Matches(target, c) {
			return true
		}
	}
	return false
}
