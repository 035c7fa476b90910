package cmd

import (
	"bufio"
	"context"
)

// Fmt renders the constants of one or more sources to stdout.
type Fmt struct {
	Parse  parseFlags  `embed:""`
	Render renderFlags `embed:""`

	Sources []string `arg:"" default:"-" help:"Source file(s) or '-' for stdin. Later sources override earlier ones." name:"source" optional:""`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	b, err := loadBindings(ctx, f.Sources, f.Parse.options()...)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(stdout(ctx))

	err = f.Render.render(ctx, w, b)
	if err != nil {
		return err
	}

	return w.Flush()
}
