package chomp

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// TokenKind classifies a scanned token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenIdent
	TokenString
	TokenTop        // _
	TokenArrow      // ->
	TokenDot        // .
	TokenColon      // :
	TokenComplement // \\
	TokenLParen
	TokenRParen
	TokenComma
	TokenNewline
)

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "end of input"
	case TokenIdent:
		return "identifier"
	case TokenString:
		return "string"
	case TokenTop:
		return "'_'"
	case TokenArrow:
		return "'->'"
	case TokenDot:
		return "'.'"
	case TokenColon:
		return "':'"
	case TokenComplement:
		return `'\\'`
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenComma:
		return "','"
	case TokenNewline:
		return "newline"
	default:
		return "unknown token"
	}
}

// Item is a scanned token with its decoded text and position.
type Item struct {
	Kind   TokenKind
	Text   string
	Line   int // 1-based
	Column int // 1-based, in runes
}

// Scanner tokenizes chomp source rune by rune.
type Scanner struct {
	filename string
	source   string
	pos      int // byte offset
	line     int
	col      int
	peeked   *Item
}

func NewScanner(filename, source string) *Scanner {
	return &Scanner{filename: filename, source: source, line: 1, col: 1}
}

// Peek returns the next item without consuming it.
func (s *Scanner) Peek() (Item, error) {
	if s.peeked != nil {
		return *s.peeked, nil
	}
	item, err := s.Next()
	if err != nil {
		return Item{}, err
	}
	s.peeked = &item
	return item, nil
}

// Next returns the next token from the input.
func (s *Scanner) Next() (Item, error) {
	if s.peeked != nil {
		item := *s.peeked
		s.peeked = nil
		return item, nil
	}

	for {
		r, size := s.current()
		line, col := s.line, s.col

		switch {
		case size == 0:
			return Item{Kind: TokenEOF, Line: line, Column: col}, nil

		case r == ' ' || r == '\t' || r == '\r':
			s.skip(size)

		case r == '\n':
			s.skip(size)
			return Item{Kind: TokenNewline, Text: "\n", Line: line, Column: col}, nil

		case r == '#':
			for {
				r, size := s.current()
				if size == 0 || r == '\n' {
					break
				}
				s.skip(size)
			}

		case r == '(':
			s.skip(size)
			return Item{Kind: TokenLParen, Text: "(", Line: line, Column: col}, nil
		case r == ')':
			s.skip(size)
			return Item{Kind: TokenRParen, Text: ")", Line: line, Column: col}, nil
		case r == ',':
			s.skip(size)
			return Item{Kind: TokenComma, Text: ",", Line: line, Column: col}, nil
		case r == '.':
			s.skip(size)
			return Item{Kind: TokenDot, Text: ".", Line: line, Column: col}, nil
		case r == ':':
			s.skip(size)
			return Item{Kind: TokenColon, Text: ":", Line: line, Column: col}, nil

		case r == '-':
			s.skip(size)
			if next, nsize := s.current(); next == '>' {
				s.skip(nsize)
				return Item{Kind: TokenArrow, Text: "->", Line: line, Column: col}, nil
			}
			return Item{}, s.errf(line, col, 1, "expected '>' after '-'")

		case r == '\\':
			s.skip(size)
			if next, nsize := s.current(); next == '\\' {
				s.skip(nsize)
				return Item{Kind: TokenComplement, Text: `\\`, Line: line, Column: col}, nil
			}
			return Item{}, s.errf(line, col, 1, `expected '\' after '\'`)

		case r == '"':
			return s.scanString(line, col)

		case isIdentRune(r):
			return s.scanIdent(line, col), nil

		default:
			return Item{}, s.errf(line, col, 1, "unexpected character %q", r)
		}
	}
}

func (s *Scanner) scanIdent(line, col int) Item {
	var b strings.Builder
	for {
		r, size := s.current()
		if size == 0 || !isIdentRune(r) {
			break
		}
		b.WriteRune(r)
		s.skip(size)
	}
	text := b.String()
	if text == "_" {
		return Item{Kind: TokenTop, Text: text, Line: line, Column: col}
	}
	return Item{Kind: TokenIdent, Text: text, Line: line, Column: col}
}

func (s *Scanner) scanString(line, col int) (Item, error) {
	_, size := s.current()
	s.skip(size) // opening quote

	var b strings.Builder
	for {
		r, size := s.current()
		switch {
		case size == 0 || r == '\n':
			return Item{}, s.errf(line, col, 1, "unterminated string")
		case r == '"':
			s.skip(size)
			return Item{Kind: TokenString, Text: b.String(), Line: line, Column: col}, nil
		case r == '\\':
			s.skip(size)
			esc, esize := s.current()
			switch esc {
			case '"', '\\':
				b.WriteRune(esc)
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			default:
				return Item{}, s.errf(s.line, s.col, 1, "unknown escape %q", esc)
			}
			s.skip(esize)
		default:
			b.WriteRune(r)
			s.skip(size)
		}
	}
}

func (s *Scanner) current() (rune, int) {
	if s.pos >= len(s.source) {
		return 0, 0
	}
	return utf8.DecodeRuneInString(s.source[s.pos:])
}

func (s *Scanner) skip(size int) {
	if s.pos < len(s.source) && s.source[s.pos] == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	s.pos += size
}

func (s *Scanner) errf(line, col, length int, format string, args ...interface{}) error {
	return NewSourceError(
		errors.Errorf(format, args...),
		&SourceLocation{Filename: s.filename, Line: line, Column: col, Length: length},
		s.source,
	)
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
