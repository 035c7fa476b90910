package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrSyntax            = NewError("syntax error")
	ErrUndefinedConstant = NewError("undefined constant")
	ErrMaxDepthExceeded  = NewError("maximum list depth exceeded")
	ErrReadInput         = NewError("failed to read input")
	ErrInvalidPattern    = NewError("invalid name pattern")
	ErrInvalidFormat     = NewError("invalid output format")
	ErrQuery             = NewError("query failed")
	ErrRender            = NewError("render failed")
)

// Position identifies a location in source text.
// Line and Column are 1-based; zero means unknown.
type Position struct {
	Line   int
	Column int
}

// IsValid reports whether the position refers to a source line.
func (p Position) IsValid() bool { return p.Line > 0 }

// String returns "line N" or "line N, column M".
func (p Position) String() string {
	if !p.IsValid() {
		return ""
	}

	s := "line " + strconv.Itoa(p.Line)
	if p.Column > 0 {
		s += ", column " + strconv.Itoa(p.Column)
	}

	return s
}

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
//
// Errors derived from a sentinel with [Error.Wrap], [Error.With], or
// [Error.WithPosition] still match that sentinel under [errors.Is].
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
	base  *Error
	pos   Position
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<pos>: <msg>: <err>"
	//   2. "<msg>: <err>"
	//   3. "<msg>"
	//   4. "<err>"
	part := make([]string, 0, 3)

	if e.pos.IsValid() {
		part = append(part, e.pos.String())
	}

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is e or the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}

	return e == t || e.root() == t
}

// Position returns the source location attached to the error, if any.
func (e *Error) Position() Position { return e.pos }

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.pos.IsValid() {
		attrs = append(attrs, slog.Int("line", e.pos.Line))
		if e.pos.Column > 0 {
			attrs = append(attrs, slog.Int("column", e.pos.Column))
		}
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	c := e.derive()
	c.err = err

	return c
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := e.derive()
	c.attrs = make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(c.attrs, e.attrs)
	copy(c.attrs[len(e.attrs):], attrs)

	return c
}

// WithPosition returns a copy of the error located at pos.
func (e *Error) WithPosition(pos Position) *Error {
	c := e.derive()
	c.pos = pos

	return c
}

func (e *Error) derive() *Error {
	return &Error{
		base:  e.root(),
		msg:   e.msg,
		err:   e.err,
		pos:   e.pos,
		attrs: e.attrs, // Share attrs
	}
}

func (e *Error) root() *Error {
	if e.base != nil {
		return e.base
	}

	return e
}
