package chomp

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// The evaluator's failure signal is deliberately coarse: callers observe
// one kind of failure. Internally two sentinels are kept apart purely for
// diagnosability.
var (
	// ErrInvariant marks an evaluation that should never have been
	// reachable from a well-formed tree.
	ErrInvariant = errors.New("invariant violation")

	// ErrUnimplemented marks a construct the evaluator has no rule for
	// yet. Uncovered shapes fail loudly instead of defaulting to an
	// empty success.
	ErrUnimplemented = errors.New("not implemented")
)

// SourceLocation is a position in source text.
type SourceLocation struct {
	Filename string
	Line     int // 1-indexed
	Column   int // 1-indexed, in runes
	Length   int // length of the offending token, for underlining
}

func (loc *SourceLocation) String() string {
	return fmt.Sprintf("%s:%d:%d", loc.Filename, loc.Line, loc.Column)
}

// SourceError is an error anchored to a location in source text. The
// parser produces these so the driver can show the offending line.
type SourceError struct {
	Inner    error
	Location *SourceLocation
	Source   string
}

func NewSourceError(inner error, loc *SourceLocation, source string) *SourceError {
	return &SourceError{Inner: inner, Location: loc, Source: source}
}

func (e *SourceError) Unwrap() error { return e.Inner }

func (e *SourceError) Error() string {
	if e.Location == nil {
		return e.Inner.Error()
	}
	return fmt.Sprintf("%s: %s", e.Location, e.Inner)
}

// Excerpt renders the offending line with a caret underline, or "" when
// the location cannot be resolved against the source.
func (e *SourceError) Excerpt() string {
	if e.Location == nil || e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if e.Location.Line < 1 || e.Location.Line > len(lines) {
		return ""
	}

	var b strings.Builder
	line := lines[e.Location.Line-1]
	fmt.Fprintf(&b, "%4d | %s\n", e.Location.Line, line)

	width := e.Location.Length
	if width < 1 {
		width = 1
	}
	pad := e.Location.Column - 1
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(&b, "     | %s%s", strings.Repeat(" ", pad), strings.Repeat("^", width))
	return b.String()
}
