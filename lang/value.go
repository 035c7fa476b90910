package lang

//go:generate go tool stringer --linecomment --type Kind --output kind_string.go

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Kind identifies the shape of a [Value].
type Kind int

const (
	KindInvalid    Kind = iota // invalid
	KindInteger                // integer
	KindFloat                  // float
	KindString                 // string
	KindIdentifier             // identifier
	KindList                   // list
)

// Value is the typed result of evaluating one expression.
// The zero Value has kind [KindInvalid] and is never produced by evaluation.
type Value struct {
	list []Value
	big  *big.Int // integers outside the int64 range only
	str  string
	num  int64
	flt  float64
	kind Kind
}

// Integer returns an integer Value.
func Integer(n int64) Value { return Value{kind: KindInteger, num: n} }

// BigInteger returns an integer Value of any width.
// The Value holds its own copy of n.
func BigInteger(n *big.Int) Value {
	if n.IsInt64() {
		return Integer(n.Int64())
	}

	return Value{kind: KindInteger, big: new(big.Int).Set(n)}
}

// parseInteger returns the integer Value of a non-empty run of decimal
// digits.
func parseInteger(digits string) (Value, bool) {
	if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return Integer(n), true
	}

	n, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return Value{}, false
	}

	return BigInteger(n), true
}

// Float returns a float Value.
func Float(f float64) Value { return Value{kind: KindFloat, flt: f} }

// String returns a string Value. The text is stored without quotes.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Identifier returns a Value holding an unresolved bare name.
func Identifier(name string) Value { return Value{kind: KindIdentifier, str: name} }

// List returns a Value holding the given items in order.
// A nil or empty items produces an empty list.
func List(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}

	return Value{kind: KindList, list: items}
}

// Kind returns the shape of the value.
func (v Value) Kind() Kind { return v.kind }

// IsList reports whether v is a list.
func (v Value) IsList() bool { return v.kind == KindList }

// Int returns the integer payload. It is zero unless v is an integer that
// fits in an int64; see [Value.IsInt64] and [Value.Big].
func (v Value) Int() int64 { return v.num }

// IsInt64 reports whether v is an integer that fits in an int64.
func (v Value) IsInt64() bool { return v.kind == KindInteger && v.big == nil }

// Big returns the integer payload at any width, or nil unless v is an
// integer. The returned value is a copy.
func (v Value) Big() *big.Int {
	switch {
	case v.kind != KindInteger:
		return nil
	case v.big != nil:
		return new(big.Int).Set(v.big)
	default:
		return big.NewInt(v.num)
	}
}

// Float64 returns the float payload. It is zero unless v is a float.
func (v Value) Float64() float64 { return v.flt }

// Str returns the text of a string or identifier value.
func (v Value) Str() string { return v.str }

// Items returns the elements of a list value.
// The returned slice must not be modified.
func (v Value) Items() []Value { return v.list }

// Text returns the textual form used by renderers.
//
// Integers are decimal, floats use the shortest representation that
// round-trips and always carry a fractional part or exponent (5.0, 0.5,
// 1e+16), strings and identifiers are verbatim, and lists are bracketed
// with quoted text elements ([1, 'a', [2, 3]]).
func (v Value) Text() string {
	switch v.kind {
	case KindInteger:
		if v.big != nil {
			return v.big.String()
		}

		return strconv.FormatInt(v.num, 10)

	case KindFloat:
		return formatFloat(v.flt)

	case KindString, KindIdentifier:
		return v.str

	case KindList:
		var sb strings.Builder
		v.writeRepr(&sb)

		return sb.String()

	default:
		return ""
	}
}

// Native returns the value as a plain Go value: int64, float64, string, or
// []any for lists. Integers outside the int64 range are *big.Int.
func (v Value) Native() any {
	switch v.kind {
	case KindInteger:
		if v.big != nil {
			return v.Big()
		}

		return v.num

	case KindFloat:
		return v.flt

	case KindString, KindIdentifier:
		return v.str

	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Native()
		}

		return out

	default:
		return nil
	}
}

// Equal reports whether v and w have the same kind and payload.
// Lists are compared element by element.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}

	switch v.kind {
	case KindInteger:
		if v.big != nil || w.big != nil {
			return v.Big().Cmp(w.Big()) == 0
		}

		return v.num == w.num

	case KindFloat:
		return v.flt == w.flt

	case KindString, KindIdentifier:
		return v.str == w.str

	case KindList:
		if len(v.list) != len(w.list) {
			return false
		}

		for i := range v.list {
			if !v.list[i].Equal(w.list[i]) {
				return false
			}
		}

		return true

	default:
		return true
	}
}

// String returns a debugging representation such as integer(8080).
func (v Value) String() string {
	return v.kind.String() + "(" + v.Text() + ")"
}

// writeRepr writes v as it appears inside a list's text form.
func (v Value) writeRepr(sb *strings.Builder) {
	switch v.kind {
	case KindString, KindIdentifier:
		sb.WriteString(quoteRepr(v.str))

	case KindList:
		sb.WriteByte('[')

		for i, item := range v.list {
			if i > 0 {
				sb.WriteString(", ")
			}

			item.writeRepr(sb)
		}

		sb.WriteByte(']')

	default:
		sb.WriteString(v.Text())
	}
}

// formatFloat renders f in fixed notation when 1e-4 <= |f| < 1e16 and in
// exponent notation otherwise.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}

	if a := math.Abs(f); a != 0 && (a < 1e-4 || a >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}

	return s
}

// quoteRepr quotes s with single quotes, or with double quotes when s
// contains a single quote but no double quote.
func quoteRepr(s string) string {
	quote := byte('\'')
	if strings.IndexByte(s, '\'') >= 0 && strings.IndexByte(s, '"') < 0 {
		quote = '"'
	}

	var sb strings.Builder

	sb.Grow(len(s) + 2)
	sb.WriteByte(quote)

	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case quote:
			sb.WriteByte('\\')
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}

	sb.WriteByte(quote)

	return sb.String()
}
