package chomp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatches(t *testing.T) {
	aDecl := decl(exprs(sym("a")), sym("one"))

	tests := []struct {
		name      string
		target    Expr
		candidate Expr
		want      bool
	}{
		{name: "equal symbols", target: sym("a"), candidate: sym("a"), want: true},
		{name: "different symbols", target: sym("a"), candidate: sym("b"), want: false},
		{name: "top matches any candidate", target: Top{}, candidate: aDecl, want: true},
		{name: "any target matches top", target: sym("a"), candidate: Top{}, want: true},
		{name: "top matches top", target: Top{}, candidate: Top{}, want: true},
		{name: "symbol never matches a declaration", target: sym("a"), candidate: aDecl, want: false},
		{name: "declaration never matches a symbol", target: aDecl, candidate: sym("a"), want: false},
		{name: "identical declarations", target: aDecl, candidate: aDecl, want: true},
		{
			name:      "declaration domains differ",
			target:    decl(exprs(sym("a")), sym("one")),
			candidate: decl(exprs(sym("b")), sym("one")),
			want:      false,
		},
		{
			name:      "declaration ranges differ",
			target:    decl(exprs(sym("a")), sym("one")),
			candidate: decl(exprs(sym("a")), sym("two")),
			want:      false,
		},
		{
			name:      "wildcard domain absorbs",
			target:    decl(exprs(sym("a")), sym("one")),
			candidate: decl(exprs(Top{}), sym("one")),
			want:      true,
		},
		{
			name:      "target domain distributes over candidate domain",
			target:    decl(exprs(sym("a")), sym("one")),
			candidate: decl(exprs(sym("b"), sym("a")), sym("one")),
			want:      true,
		},
		{
			name:      "selector shapes must agree",
			target:    witness(exprs(sym("a")), sym("x")),
			candidate: anchored(exprs(sym("a")), sym("x")),
			want:      false,
		},
		{
			name:      "matching selectors",
			target:    witness(exprs(sym("a")), sym("x")),
			candidate: witness(exprs(sym("a")), sym("x")),
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Matches(tt.target, tt.candidate))
		})
	}
}

func TestStructuralEquality(t *testing.T) {
	a := decl(exprs(sym("a")), sym("one"))

	require.True(t, a.Equal(decl(exprs(sym("a")), sym("one"))))
	require.False(t, a.Equal(decl(exprs(sym("a")), sym("two"))))
	require.False(t, a.Equal(sym("a")))
	require.True(t, Top{}.Equal(Top{}))
	require.False(t, Top{}.Equal(sym("_")))
	require.True(t, witness(exprs(sym("a")), sym("x")).Equal(witness(exprs(sym("a")), sym("x"))))
	require.False(t, witness(exprs(sym("a")), sym("x")).Equal(anchored(exprs(sym("a")), sym("x"))))
}

func TestWalkVisitsChildren(t *testing.T) {
	e := decl(exprs(sym("a")), witness(exprs(sym("t")), sym("x")))

	var seen []string
	e.Walk(func(e Expr) bool {
		seen = append(seen, e.String())
		return true
	})
	require.Equal(t, []string{"a -> x.t", "a", "x.t", "t", "x"}, seen)

	// Returning false skips children.
	var count int
	e.Walk(func(Expr) bool {
		count++
		return false
	})
	require.Equal(t, 1, count)
}
