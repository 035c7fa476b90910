package cmd

import (
	"context"
	"io"

	"github.com/ardnew/constx/lang"
)

// renderFlags are the output options shared by commands that render
// constants.
type renderFlags struct {
	Format    string   `default:"xml" enum:"${formatEnum}" help:"Output format (${enum})."                          short:"f"`
	Indent    int      `default:"2"                        help:"Indent width, or 0 for compact output."`
	Header    bool     `                                   help:"Prepend the XML declaration."`
	Canonical bool     `                                   help:"Emit RFC 8785 canonical JSON."`
	Select    []string `                                   help:"Render only constants whose names match GLOB." placeholder:"GLOB" short:"s"`
}

// options returns the lang render options selected by the flags.
func (f *renderFlags) options() lang.RenderOptions {
	return lang.RenderOptions{
		Indent:    f.Indent,
		Header:    f.Header,
		Canonical: f.Canonical,
	}
}

// render writes the selected constants of b to w.
func (f *renderFlags) render(
	ctx context.Context,
	w io.Writer,
	b *lang.Bindings,
) error {
	format, err := lang.ParseFormat(f.Format)
	if err != nil {
		return err
	}

	sel, err := b.Select(f.Select...)
	if err != nil {
		return err
	}

	return sel.Render(ctx, w, format, f.options())
}
