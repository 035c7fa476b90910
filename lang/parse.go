package lang

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"regexp"
	"strings"
)

// Declaration is one parsed "const NAME = EXPR;" line.
type Declaration struct {
	Name string
	Expr string
}

var declPattern = regexp.MustCompile(`^const\s+(\w+)\s*=\s*(.+);$`)

// newlines folds "\r\n" and a lone "\r" into "\n".
var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Lines returns an iterator over the logical lines of text.
//
// Lines end at "\n", "\r\n", or a lone "\r". Each line is trimmed of
// surrounding whitespace and yielded with its 1-based line number in text.
// Blank lines are skipped; every other line is yielded, so anything that is
// not a declaration fails to parse.
func Lines(text string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		num := 0

		for line := range strings.SplitSeq(newlines.Replace(text), "\n") {
			num++

			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			if !yield(num, line) {
				return
			}
		}
	}
}

// ParseDeclaration matches a trimmed line against "const NAME = EXPR;".
// NAME is one or more word characters and EXPR extends to the final ';',
// which must end the line.
func ParseDeclaration(line string) (Declaration, error) {
	m := declPattern.FindStringSubmatch(line)
	if m == nil || strings.TrimSpace(m[2]) == "" {
		return Declaration{}, ErrSyntax.
			Wrap(fmt.Errorf("invalid constant declaration: %s", line)).
			With(slog.String("text", line))
	}

	return Declaration{Name: m[1], Expr: strings.TrimSpace(m[2])}, nil
}

// ParseReader reads all of r and parses it with [ParseString].
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Bindings, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return ParseString(ctx, string(data), opts...)
}

// ParseString parses every declaration in s into a new [Bindings].
//
// Parsing stops at the first invalid line or expression. The returned error
// carries the line number and no bindings are returned.
// A later declaration of the same name replaces the earlier value but keeps
// its position.
func ParseString(ctx context.Context, s string, opts ...Option) (*Bindings, error) {
	o := makeOptions(opts...)
	e := evaluator{maxDepth: o.maxDepth}
	b := NewBindings()

	for num, line := range Lines(s) {
		pos := Position{Line: num}

		decl, err := ParseDeclaration(line)
		if err != nil {
			return nil, WrapError(err).WithPosition(pos)
		}

		v, err := e.evaluate(decl.Expr, 0)
		if err != nil {
			return nil, WrapError(err).
				WithPosition(pos).
				With(slog.String("name", decl.Name))
		}

		if prev, ok := b.Get(decl.Name); ok {
			o.logger.DebugContext(ctx, "constant redefined",
				slog.String("name", decl.Name),
				slog.Int("line", num),
				slog.String("previous", prev.String()),
				slog.String("value", v.String()))
		}

		b.Set(decl.Name, v)

		o.logger.TraceContext(ctx, "constant declared",
			slog.String("name", decl.Name),
			slog.String("kind", v.Kind().String()),
			slog.Int("line", num))
	}

	o.logger.TraceContext(ctx, "parse complete",
		slog.Int("constant_count", b.Len()))

	return b, nil
}
