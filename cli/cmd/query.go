package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/constx/lang"
	"github.com/ardnew/constx/log"
)

// Query evaluates an expression against the constants of one or more
// sources and prints the result.
type Query struct {
	Input []string `default:"-" help:"Source file(s) or '-' for stdin." placeholder:"PATH" short:"i"`

	Parse parseFlags `embed:""`

	Expr string `arg:"" help:"Expression to evaluate. Each constant is a variable holding its value."`
}

// Run executes the query command.
func (q *Query) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	b, err := loadBindings(ctx, q.Input, q.Parse.options()...)
	if err != nil {
		return err
	}

	result, err := b.Query(ctx, q.Expr)
	if err != nil {
		return err
	}

	log.FromContext(ctx).DebugContext(ctx, "query evaluated",
		slog.String("expr", q.Expr),
		slog.String("type", fmt.Sprintf("%T", result)),
	)

	_, err = fmt.Fprintln(stdout(ctx), lang.FormatResult(result))

	return err
}
