package repl

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/ardnew/constx/lang"
	"github.com/ardnew/constx/log"
)

// ctrlPrefix introduces a control command typed in eval mode.
const ctrlPrefix = ":"

// declKeyword starts a constant declaration.
const declKeyword = "const"

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{
	"help", "list", "xml", "json", "yaml", "env", "native",
	"load", "edit", "clear", "quit",
}

// isDeclaration reports whether line starts with the const keyword.
func isDeclaration(line string) bool {
	rest, ok := strings.CutPrefix(line, declKeyword)

	return ok && rest != "" && unicode.IsSpace(rune(rest[0]))
}

// evalLine evaluates one eval-mode line against b.
//
// A declaration binds a constant, "= EXPR" shows the value EXPR evaluates
// to, and anything else is run as a query over the current constants.
func evalLine(
	ctx context.Context,
	b *lang.Bindings,
	line string,
	logger log.Logger,
) (string, error) {
	switch {
	case isDeclaration(line):
		decl, err := lang.ParseDeclaration(line)
		if err != nil {
			return "", err
		}

		v, err := lang.Evaluate(decl.Expr, lang.WithLogger(logger))
		if err != nil {
			return "", err
		}

		b.Set(decl.Name, v)

		return decl.Name + " = " + v.String(), nil

	case strings.HasPrefix(line, "="):
		v, err := lang.Evaluate(line[1:], lang.WithLogger(logger))
		if err != nil {
			return "", err
		}

		return v.String(), nil

	default:
		result, err := b.Query(ctx, line)
		if err != nil {
			return "", err
		}

		return lang.FormatResult(result), nil
	}
}

// runCommand executes a control command that produces output.
// Commands that change the session state of the terminal program (clear,
// edit, quit) are handled by the model.
func runCommand(
	ctx context.Context,
	b *lang.Bindings,
	name string,
	args []string,
	logger log.Logger,
) (string, error) {
	switch name {
	case "h", "help":
		return helpMessage(), nil

	case "l", "list":
		return listBindings(b, args)

	case "load":
		return loadFiles(ctx, b, args, logger)
	}

	format, err := lang.ParseFormat(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s (try 'help')", ErrUnknownCommand, name)
	}

	sel, err := b.Select(args...)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer

	err = sel.Render(ctx, &buf, format, lang.RenderOptions{Indent: 2})
	if err != nil {
		return "", err
	}

	return strings.TrimRight(buf.String(), "\n"), nil
}

// listBindings returns one line per constant whose name matches one of
// patterns, or every constant if no patterns are given.
func listBindings(b *lang.Bindings, patterns []string) (string, error) {
	sel, err := b.Select(patterns...)
	if err != nil {
		return "", err
	}

	if sel.Len() == 0 {
		return "(no constants)", nil
	}

	var sb strings.Builder

	for name, v := range sel.All() {
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}

		sb.WriteString("  " + name + " " + hintStyle.Render(formatPreview(v)))
	}

	return sb.String(), nil
}

// loadFiles parses each file and merges its constants into b. Nothing is
// merged unless every file parses.
func loadFiles(
	ctx context.Context,
	b *lang.Bindings,
	paths []string,
	logger log.Logger,
) (string, error) {
	if len(paths) == 0 {
		return "", fmt.Errorf("%w: load PATH...", ErrMissingArgument)
	}

	loaded := make([]*lang.Bindings, 0, len(paths))

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", lang.ErrReadInput.Wrap(err)
		}

		parsed, err := lang.ParseString(ctx, string(data), lang.WithLogger(logger))
		if err != nil {
			return "", fmt.Errorf("%s: %w", path, err)
		}

		loaded = append(loaded, parsed)
	}

	count := 0

	for _, parsed := range loaded {
		for name, v := range parsed.All() {
			b.Set(name, v)
			count++
		}
	}

	return fmt.Sprintf("loaded %d constants", count), nil
}
