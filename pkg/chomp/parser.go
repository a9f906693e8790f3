package chomp

import (
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Parser builds expression trees from source text. The grammar, loosest
// binding first:
//
//	program  = sequence
//	sequence = { expr (","|newline)... }
//	expr     = postfix [ "->" expr ]
//	postfix  = [ primary ] { ("."|":"|"\\") primary }
//	primary  = ident | string | "_" | "(" sequence ")"
//
// A parenthesized sequence splices into whatever position holds it: an
// arrow's domain or range, a selector's operands or targets, or the
// surrounding sequence.
type Parser struct {
	scanner  *Scanner
	filename string
	source   string
	tok      Item
}

// ParseProgram parses a whole source file as a sequence of top-level
// expressions.
func ParseProgram(filename, source string) ([]Expr, error) {
	p := &Parser{
		scanner:  NewScanner(filename, source),
		filename: filename,
		source:   source,
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	exprs, err := p.sequence(TokenEOF)
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != TokenEOF {
		return nil, p.errf(p.tok, "expected end of input, got %s", p.tok.Kind)
	}
	return exprs, nil
}

// Parse parses source holding exactly one expression.
func Parse(filename, source string) (Expr, error) {
	exprs, err := ParseProgram(filename, source)
	if err != nil {
		return nil, err
	}
	if len(exprs) != 1 {
		return nil, errors.Errorf("%s: expected a single expression, got %d", filename, len(exprs))
	}
	return exprs[0], nil
}

func (p *Parser) advance() error {
	tok, err := p.scanner.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *Parser) skipNewlines() error {
	for p.tok.Kind == TokenNewline {
		if err := p.advance(); err != nil {
			return err
		}
	}
	return nil
}

// sequence parses expressions separated by commas or newlines until the
// given closing token, which is left unconsumed.
func (p *Parser) sequence(end TokenKind) ([]Expr, error) {
	var exprs []Expr
	for {
		for p.tok.Kind == TokenNewline || p.tok.Kind == TokenComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		if p.tok.Kind == end {
			return exprs, nil
		}

		es, err := p.expr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, es...)

		switch p.tok.Kind {
		case TokenNewline, TokenComma, end:
		default:
			return nil, p.errf(p.tok, "expected separator or %s, got %s", end, p.tok.Kind)
		}
	}
}

func (p *Parser) expr() ([]Expr, error) {
	lhs, err := p.postfix()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != TokenArrow {
		return lhs, nil
	}

	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}
	rhs, err := p.expr()
	if err != nil {
		return nil, err
	}
	return []Expr{Form{Op: Declare{Domain: lhs}, Operands: rhs}}, nil
}

func (p *Parser) postfix() ([]Expr, error) {
	var operands []Expr
	if !isSelectorToken(p.tok.Kind) {
		var err error
		operands, err = p.primary()
		if err != nil {
			return nil, err
		}
	}

	for isSelectorToken(p.tok.Kind) {
		kind := p.tok.Kind
		if err := p.advance(); err != nil {
			return nil, err
		}
		targets, err := p.primary()
		if err != nil {
			return nil, err
		}

		var op Operator
		switch kind {
		case TokenDot:
			op = Witness{Query: Conjunct{Exprs: targets}}
		case TokenColon:
			op = Assert{Query: Conjunct{Exprs: targets}}
		case TokenComplement:
			op = Witness{Query: Complement{Exprs: targets}}
		}
		operands = []Expr{Form{Op: op, Operands: operands}}
	}
	return operands, nil
}

func (p *Parser) primary() ([]Expr, error) {
	switch p.tok.Kind {
	case TokenIdent, TokenString:
		sym := Symbol{Name: Token(p.tok.Text)}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return []Expr{sym}, nil

	case TokenTop:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return []Expr{Top{}}, nil

	case TokenLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		exprs, err := p.sequence(TokenRParen)
		if err != nil {
			return nil, err
		}
		if p.tok.Kind != TokenRParen {
			return nil, p.errf(p.tok, "expected ')', got %s", p.tok.Kind)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return exprs, nil

	default:
		return nil, p.errf(p.tok, "expected expression, got %s", p.tok.Kind)
	}
}

func isSelectorToken(k TokenKind) bool {
	return k == TokenDot || k == TokenColon || k == TokenComplement
}

func (p *Parser) errf(at Item, format string, args ...interface{}) error {
	length := utf8.RuneCountInString(at.Text)
	if length < 1 {
		length = 1
	}
	return NewSourceError(
		errors.Errorf(format, args...),
		&SourceLocation{Filename: p.filename, Line: at.Line, Column: at.Column, Length: length},
		p.source,
	)
}
