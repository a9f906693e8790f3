package chomp

import "github.com/pkg/errors"

// Result is the two-valued outcome of an evaluation: a successful
// (possibly empty) match set, or a failure. An empty success is Bottom, a
// well-defined query that matched nothing; it is valid data and distinct
// from failure.
type Result struct {
	matches []Expr
	err     error
}

// Succeed builds a successful result from zero or more matches.
func Succeed(matches ...Expr) Result {
	return Result{matches: matches}
}

// Fail builds a failed result.
func Fail(err error) Result {
	if err == nil {
		err = errors.Wrap(ErrInvariant, "failure without a cause")
	}
	return Result{err: err}
}

// Failed reports whether the result is a failure.
func (r Result) Failed() bool { return r.err != nil }

// Err returns the failure cause, or nil.
func (r Result) Err() error { return r.err }

// Matches returns the match set of a successful result. It is nil for a
// failure; callers that care must check Failed first.
func (r Result) Matches() []Expr {
	if r.err != nil {
		return nil
	}
	return r.matches
}

// ToList flattens the result to a plain sequence, discarding a failure as
// the empty sequence. This loses information on purpose: use it only
// where a failure has already been decided to be non-fatal.
func (r Result) ToList() []Expr {
	if r.err != nil {
		return nil
	}
	return r.matches
}

// Require converts a plain sequence into a Result, treating emptiness as
// failure. It is the converse of Bottom: use it where "no candidates"
// must be a hard error rather than a valid empty match.
func Require(xs []Expr) Result {
	if len(xs) == 0 {
		return Fail(errors.Wrap(ErrInvariant, "required at least one candidate"))
	}
	return Succeed(xs...)
}

// Collect merges two results into one success carrying both match sets in
// order, left before right. A failed input contributes nothing: Collect
// absorbs failures so one subquery cannot silence its siblings.
func Collect(a, b Result) Result {
	merged := make([]Expr, 0, len(a.ToList())+len(b.ToList()))
	merged = append(merged, a.ToList()...)
	merged = append(merged, b.ToList()...)
	return Succeed(merged...)
}

// FoldEval maps f over the sequence and concatenates the successful match
// sets left to right. The first failure aborts the fold and becomes the
// overall result: every element of a group must succeed for the group to
// succeed.
func FoldEval(f func(Expr) Result, xs []Expr) Result {
	var all []Expr
	for _, x := range xs {
		r := f(x)
		if r.Failed() {
			return r
		}
		all = append(all, r.matches...)
	}
	return Succeed(all...)
}
