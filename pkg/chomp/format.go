package chomp

import (
	"strings"
	"unicode"
)

// Format renders an expression in canonical source form. The output
// re-parses to a structurally equal tree.
func Format(e Expr) string {
	var b strings.Builder
	formatExpr(&b, e)
	return b.String()
}

// FormatProgram renders a sequence of top-level expressions, one per
// line, with a trailing newline.
func FormatProgram(exprs []Expr) string {
	var b strings.Builder
	for _, e := range exprs {
		formatExpr(&b, e)
		b.WriteByte('\n')
	}
	return b.String()
}

func formatExpr(b *strings.Builder, e Expr) {
	switch e := e.(type) {
	case Symbol:
		b.WriteString(formatToken(e.Name))
	case Top:
		b.WriteByte('_')
	case Form:
		switch op := e.Op.(type) {
		case Declare:
			// Declarations in the domain re-parse as nested arrows
			// unless grouped.
			formatSeq(b, op.Domain, isDeclarationExpr)
			b.WriteString(" -> ")
			formatSeq(b, e.Operands, never)
		case Witness:
			formatSelector(b, e.Operands, selectorRune(op.Query, '.'), op.Query)
		case Assert:
			formatSelector(b, e.Operands, selectorRune(op.Query, ':'), op.Query)
		}
	}
}

func formatSelector(b *strings.Builder, operands []Expr, op string, q Query) {
	if len(operands) > 0 {
		formatSeq(b, operands, isDeclarationExpr)
	}
	b.WriteString(op)
	// Targets sit in primary position: anything compound is grouped.
	formatSeq(b, q.Targets(), isCompoundExpr)
}

// selectorRune picks the operator spelling; complement queries use the
// double-backslash form regardless of anchoring.
func selectorRune(q Query, conjunct rune) string {
	if _, ok := q.(Complement); ok {
		return `\\`
	}
	return string(conjunct)
}

// formatSeq renders a sequence, parenthesizing whenever it has anything
// but exactly one element, or when the lone element needs grouping in
// this position.
func formatSeq(b *strings.Builder, exprs []Expr, groupSingle func(Expr) bool) {
	if len(exprs) == 1 && !groupSingle(exprs[0]) {
		formatExpr(b, exprs[0])
		return
	}
	b.WriteByte('(')
	for i, e := range exprs {
		if i > 0 {
			b.WriteString(", ")
		}
		formatExpr(b, e)
	}
	b.WriteByte(')')
}

func never(Expr) bool { return false }

func isDeclarationExpr(e Expr) bool {
	_, _, ok := declaration(e)
	return ok
}

func isCompoundExpr(e Expr) bool {
	_, ok := e.(Form)
	return ok
}

func formatToken(t Token) string {
	if bareToken(string(t)) {
		return string(t)
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range string(t) {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// bareToken reports whether a token can be spelled without quotes: a
// non-empty identifier that is not the wildcard.
func bareToken(s string) bool {
	if s == "" || s == "_" {
		return false
	}
	for _, r := range s {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
