package cli

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/constx/lang"
	"github.com/ardnew/constx/log"
)

// resolve returns a [kong.ConfigurationLoader] that reads configuration files
// written as constant declarations.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx), "/path/to/config")
//
// Each constant names a flag, with hyphens in the flag name written as
// underscores:
//
//	const log_level = "debug";
//	const log_pretty = false;
//	const select = list("server_*", "db_*");
//
// Numbers are passed to kong as their text, strings and bare identifiers
// verbatim, and lists as comma-joined item text. A file that
// fails to parse is logged and ignored.
//
// Command-line flags override config file values.
func resolve(ctx context.Context) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		b, err := lang.ParseReader(ctx, r)
		if err != nil {
			log.WarnContext(ctx, "ignoring configuration file",
				slog.Any("error", err),
			)

			return config{}, nil
		}

		return makeConfig(b), nil
	}
}

// config implements [kong.Resolver] for constant declaration files.
type config map[string]string

func makeConfig(b *lang.Bindings) config {
	c := make(config, b.Len())

	for name, v := range b.All() {
		c[name] = flagText(v)
	}

	return c
}

// flagText returns v as text kong can decode into a flag value.
func flagText(v lang.Value) string {
	switch v.Kind() {
	case lang.KindString, lang.KindIdentifier:
		return v.Str()

	case lang.KindList:
		items := make([]string, len(v.Items()))
		for i, item := range v.Items() {
			items[i] = flagText(item)
		}

		return strings.Join(items, ",")

	default:
		return v.Text()
	}
}

// Validate implements [kong.Resolver].
func (c config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but constant names cannot,
	// so try both forms.
	for _, name := range []string{
		flag.Name,
		strings.ReplaceAll(flag.Name, "-", "_"),
	} {
		if value, ok := c[name]; ok {
			return value, nil
		}
	}

	return nil, nil //nolint:nilnil
}
