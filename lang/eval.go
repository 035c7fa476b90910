package lang

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Evaluate classifies and evaluates a single expression.
//
// The expression is trimmed and tested against each form in order, and the
// first match wins:
//
//  1. $name$ fails with [ErrUndefinedConstant]
//  2. list(...) is decomposed into a list of values
//  3. decimal digits are an integer
//  4. digits with one '.' are a float (.5 and 5. are accepted)
//  5. a bare name is an identifier
//  6. "text" is a string
//  7. 'text' is a string
//
// Anything else fails with [ErrSyntax].
func Evaluate(expr string, opts ...Option) (Value, error) {
	o := makeOptions(opts...)

	v, err := evaluator{maxDepth: o.maxDepth}.evaluate(expr, 0)
	if err != nil {
		o.logger.Trace("expression rejected",
			slog.String("expression", expr),
			slog.Any("error", err))

		return Value{}, err
	}

	o.logger.Trace("expression evaluated",
		slog.String("expression", expr),
		slog.String("kind", v.Kind().String()))

	return v, nil
}

type evaluator struct {
	maxDepth int
}

func (e evaluator) evaluate(expr string, depth int) (Value, error) {
	expr = strings.TrimSpace(expr)

	switch {
	case isSentinel(expr):
		return Value{}, ErrUndefinedConstant.Wrap(errors.New(expr)).
			With(slog.String("constant", expr))

	case isList(expr):
		return e.evaluateList(expr[len(listOpen):len(expr)-1], depth+1)

	case isDigits(expr):
		n, ok := parseInteger(expr)
		if !ok {
			return Value{}, ErrSyntax.Wrap(fmt.Errorf("invalid integer: %s", expr)).
				With(slog.String("expression", expr))
		}

		return n, nil

	case isFloat(expr):
		// Too large a literal is +Inf with ErrRange.
		f, err := strconv.ParseFloat(expr, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return Value{}, ErrSyntax.Wrap(fmt.Errorf("invalid float: %s", expr)).
				With(slog.String("expression", expr))
		}

		return Float(f), nil

	case isIdentifier(expr):
		return Identifier(expr), nil

	case isQuoted(expr, '"'), isQuoted(expr, '\''):
		return String(expr[1 : len(expr)-1]), nil

	default:
		return Value{}, ErrSyntax.Wrap(fmt.Errorf("invalid expression: %s", expr)).
			With(slog.String("expression", expr))
	}
}

// evaluateList splits the interior of a list expression at top-level commas
// and evaluates each item. Commas inside nested parentheses do not split.
func (e evaluator) evaluateList(body string, depth int) (Value, error) {
	if depth > e.maxDepth {
		return Value{}, ErrMaxDepthExceeded.With(
			slog.Int("depth", depth),
			slog.Int("max_depth", e.maxDepth),
		)
	}

	body = strings.TrimSpace(body)

	var (
		items []Value
		buf   strings.Builder
		level int
	)

	for _, r := range body {
		if r == ',' && level == 0 {
			v, err := e.evaluate(buf.String(), depth)
			if err != nil {
				return Value{}, err
			}

			items = append(items, v)
			buf.Reset()

			continue
		}

		buf.WriteRune(r)

		switch r {
		case '(':
			level++
		case ')':
			level--
			if level < 0 {
				return Value{}, unbalancedError(body)
			}
		}
	}

	if level != 0 {
		return Value{}, unbalancedError(body)
	}

	if rest := strings.TrimSpace(buf.String()); rest != "" {
		v, err := e.evaluate(rest, depth)
		if err != nil {
			return Value{}, err
		}

		items = append(items, v)
	}

	return List(items...), nil
}

func unbalancedError(body string) *Error {
	return ErrSyntax.Wrap(fmt.Errorf("unbalanced parentheses: %s%s)", listOpen, body)).
		With(slog.String("expression", listOpen+body+")"))
}

// Character classification

const listOpen = "list("

func isSentinel(s string) bool {
	return strings.HasPrefix(s, "$") && strings.HasSuffix(s, "$")
}

func isList(s string) bool {
	return strings.HasPrefix(s, listOpen) && strings.HasSuffix(s, ")")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

// isFloat reports whether s is all digits once at most one '.' is removed.
func isFloat(s string) bool {
	return isDigits(strings.Replace(s, ".", "", 1))
}

func isIdentifier(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || !isIdentifierStart(r) {
		return false
	}

	for _, r := range s[size:] {
		if !isIdentifierContinue(r) {
			return false
		}
	}

	return true
}

func isQuoted(s string, quote byte) bool {
	return len(s) >= 2 && s[0] == quote && s[len(s)-1] == quote
}

func isIdentifierStart(r rune) bool {
	return unicode.In(r,
		unicode.L,  // Letter
		unicode.Nl, // Letter, Number
		unicode.Other_ID_Start,
	) || r == '_'
}

func isIdentifierContinue(r rune) bool {
	return unicode.In(r,
		unicode.L,  // Letter
		unicode.Nl, // Letter, Number
		unicode.Other_ID_Start,
		unicode.Mn, // Mark, Nonspacing
		unicode.Mc, // Mark, Spacing Combining
		unicode.Nd, // Number, Decimal Digit
		unicode.Pc, // Punctuation, Connector
		unicode.Other_ID_Continue,
	)
}
