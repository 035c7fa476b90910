package cmd

import (
	"bytes"
	"context"
	_ "crypto/sha256" // digest.Canonical
	"fmt"
	"log/slog"

	"github.com/opencontainers/go-digest"

	"github.com/ardnew/constx/log"
)

// successMessage is printed after the output file has been written.
const successMessage = "Conversion successful."

// Convert parses a source file and writes the rendered constants to an
// output file.
type Convert struct {
	Input  string `help:"Source file or '-' for stdin." placeholder:"PATH" required:"" short:"i"`
	Output string `help:"Destination file."             placeholder:"PATH" required:"" short:"o" type:"path"`

	Parse  parseFlags  `embed:""`
	Render renderFlags `embed:""`
}

// Run executes the convert command.
//
// The destination is written only after the whole input has been parsed and
// rendered. Any failure leaves an existing destination untouched.
func (c *Convert) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	b, err := loadBindings(ctx, []string{c.Input}, c.Parse.options()...)
	if err != nil {
		return err
	}

	var buf bytes.Buffer

	err = c.Render.render(ctx, &buf, b)
	if err != nil {
		return err
	}

	err = writeFileAtomic(c.Output, buf.Bytes(), defaultFileMode)
	if err != nil {
		return ErrWriteOutput.
			With(slog.String("file", c.Output)).
			Wrap(err)
	}

	log.FromContext(ctx).InfoContext(ctx, "conversion complete",
		slog.String("output", c.Output),
		slog.String("format", c.Render.Format),
		slog.Int("constants", b.Len()),
		slog.Int("bytes", buf.Len()),
		slog.String("digest", digest.FromBytes(buf.Bytes()).String()),
	)

	_, err = fmt.Fprintln(stdout(ctx), successMessage)

	return err
}
