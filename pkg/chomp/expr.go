package chomp

// Token is an interned identifier. Two tokens are the same symbol exactly
// when their strings are equal.
type Token string

// Expr is the closed sum of expression shapes: an atomic Symbol, the
// universal Top, or a Form applying an operator to an operand list.
//
// Expressions are immutable. They are built once by the parser and only
// read during evaluation; evaluation allocates fresh values instead of
// rewriting existing ones.
type Expr interface {
	// Equal reports structural equality.
	Equal(other Expr) bool

	// Walk visits this expression and its children. The callback returns
	// true to continue into children, false to skip them.
	Walk(fn func(Expr) bool)

	// String returns the canonical source form of the expression.
	String() string

	isExpr()
}

// Symbol is an atomic leaf.
type Symbol struct {
	Name Token
}

func (s Symbol) isExpr() {}

func (s Symbol) Equal(other Expr) bool {
	o, ok := other.(Symbol)
	return ok && s.Name == o.Name
}

func (s Symbol) Walk(fn func(Expr) bool) {
	fn(s)
}

func (s Symbol) String() string { return Format(s) }

// Top is the universal value. It is absorbing under selection: selecting
// from Top yields the selector's own targets, and any pattern matched
// against Top succeeds.
type Top struct{}

func (t Top) isExpr() {}

func (t Top) Equal(other Expr) bool {
	_, ok := other.(Top)
	return ok
}

func (t Top) Walk(fn func(Expr) bool) {
	fn(t)
}

func (t Top) String() string { return Format(t) }

// Form applies an operator to its right-hand operand list. The meaning of
// the operands depends on the operator: for Declare they are the arrow's
// range, for selectors they are the domain being searched.
type Form struct {
	Op       Operator
	Operands []Expr
}

func (f Form) isExpr() {}

func (f Form) Equal(other Expr) bool {
	o, ok := other.(Form)
	if !ok || !f.Op.Equal(o.Op) {
		return false
	}
	return exprsEqual(f.Operands, o.Operands)
}

func (f Form) Walk(fn func(Expr) bool) {
	if !fn(f) {
		return
	}
	for _, e := range f.Op.children() {
		e.Walk(fn)
	}
	for _, e := range f.Operands {
		e.Walk(fn)
	}
}

func (f Form) String() string { return Format(f) }

// Operator is the sum of operator shapes attached to a Form.
type Operator interface {
	Equal(other Operator) bool

	// children returns the expressions carried by the operator itself
	// (domains and target lists), for Walk.
	children() []Expr

	isOperator()
}

// Declare pairs a domain with the enclosing Form's operand list, read as
// the arrow "domain -> range". Declarations are data, not queries: they
// are inert under evaluation.
type Declare struct {
	Domain []Expr
}

func (d Declare) isOperator()      {}
func (d Declare) children() []Expr { return d.Domain }

func (d Declare) Equal(other Operator) bool {
	o, ok := other.(Declare)
	return ok && exprsEqual(d.Domain, o.Domain)
}

// Assert is the context-anchored selector (source syntax ":"). It pulls a
// result set up out of a scope without re-querying environment siblings.
type Assert struct {
	Query Query
}

func (a Assert) isOperator()      {}
func (a Assert) children() []Expr { return a.Query.Targets() }

func (a Assert) Equal(other Operator) bool {
	o, ok := other.(Assert)
	return ok && a.Query.Equal(o.Query)
}

// Witness is the projecting selector (source syntax "."). It searches
// across a collection or across the context stack.
type Witness struct {
	Query Query
}

func (w Witness) isOperator()      {}
func (w Witness) children() []Expr { return w.Query.Targets() }

func (w Witness) Equal(other Operator) bool {
	o, ok := other.(Witness)
	return ok && w.Query.Equal(o.Query)
}

// Query is the target list carried by a selector.
type Query interface {
	// Targets returns the query's candidate patterns in order.
	Targets() []Expr

	Equal(other Query) bool

	isQuery()
}

// Conjunct selects all of its targets.
type Conjunct struct {
	Exprs []Expr
}

func (c Conjunct) isQuery()        {}
func (c Conjunct) Targets() []Expr { return c.Exprs }

func (c Conjunct) Equal(other Query) bool {
	o, ok := other.(Conjunct)
	return ok && exprsEqual(c.Exprs, o.Exprs)
}

// Complement selects all but its targets (source syntax "\\"). Its
// evaluation rules are not pinned down yet; evaluating one fails rather
// than guessing.
type Complement struct {
	Exprs []Expr
}

func (c Complement) isQuery()        {}
func (c Complement) Targets() []Expr { return c.Exprs }

func (c Complement) Equal(other Query) bool {
	o, ok := other.(Complement)
	return ok && exprsEqual(c.Exprs, o.Exprs)
}

func exprsEqual(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// declaration unpacks a Declare-headed Form.
func declaration(e Expr) (Form, Declare, bool) {
	f, ok := e.(Form)
	if !ok {
		return Form{}, Declare{}, false
	}
	d, ok := f.Op.(Declare)
	if !ok {
		return Form{}, Declare{}, false
	}
	return f, d, true
}

// selector unpacks a Witness- or Assert-headed Form.
func selector(e Expr) (Form, Query, bool) {
	f, ok := e.(Form)
	if !ok {
		return Form{}, nil, false
	}
	switch op := f.Op.(type) {
	case Witness:
		return f, op.Query, true
	case Assert:
		return f, op.Query, true
	default:
		return Form{}, nil, false
	}
}
