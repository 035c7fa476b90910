package cmd

import (
	"context"

	"github.com/ardnew/constx/cli/cmd/repl"
	"github.com/ardnew/constx/lang"
	"github.com/ardnew/constx/log"
)

// Repl starts an interactive session for declaring and inspecting constants.
type Repl struct {
	Input []string `help:"Preload constants from source file(s) or '-' for stdin." placeholder:"PATH" short:"i"`

	Parse parseFlags `embed:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	b := lang.NewBindings()

	if len(r.Input) > 0 {
		b, err = loadBindings(ctx, r.Input, r.Parse.options()...)
		if err != nil {
			return err
		}
	}

	return repl.Run(ctx, b, varFrom(ctx, CacheIdentifier), log.FromContext(ctx))
}
