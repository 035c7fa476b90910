package lang

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/ardnew/constx/log"
)

// Query evaluates an expr-lang expression with every binding exposed as a
// variable holding its native value (see [Value.Native]).
//
// Identifiers are plain strings inside the query; they are never resolved
// against other bindings.
func (b *Bindings) Query(ctx context.Context, source string) (any, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, ErrQuery.With(slog.String("error", "empty expression"))
	}

	env := b.Native()

	program, err := expr.Compile(source, expr.Env(env))
	if err != nil {
		return nil, ErrQuery.Wrap(err).With(slog.String("source", source))
	}

	result, err := expr.Run(program, env)
	if err != nil {
		return nil, ErrQuery.Wrap(err).With(slog.String("source", source))
	}

	log.FromContext(ctx).TraceContext(ctx, "query evaluated",
		slog.String("source", source),
		slog.String("type", resultTypeName(result)))

	return result, nil
}

// FormatResult returns the text form of a query result. Numbers, strings,
// and lists print the same way as [Value.Text].
func FormatResult(v any) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return formatFloat(t)
	case []any:
		var sb strings.Builder

		sb.WriteByte('[')

		for i, item := range t {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(reprResult(item))
		}

		sb.WriteByte(']')

		return sb.String()
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		part := make([]string, len(keys))
		for i, k := range keys {
			part[i] = quoteRepr(k) + ": " + reprResult(t[k])
		}

		return "{" + strings.Join(part, ", ") + "}"
	default:
		return fmt.Sprint(t)
	}
}

// reprResult is FormatResult with strings quoted, for container elements.
func reprResult(v any) string {
	if s, ok := v.(string); ok {
		return quoteRepr(s)
	}

	return FormatResult(v)
}

func resultTypeName(value any) string {
	if value == nil {
		return "nil"
	}

	return fmt.Sprintf("%T", value)
}
