package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"math/big"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/constx/lang"
	"github.com/ardnew/constx/log"
	"github.com/ardnew/constx/profile"
)

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	confPath := varFrom(ctx, ConfigIdentifier)
	if confPath == "" {
		panic("internal error: config path undefined")
	}

	// Check if file exists and force not set
	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	var buf bytes.Buffer

	b := i.buildBindings(ctx)

	err = b.FormatNative(ctx, &buf)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	err = writeFileAtomic(confPath, buf.Bytes(), defaultFileMode)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.FromContext(ctx).DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
		slog.Int("constants", b.Len()),
	)

	return nil
}

// buildBindings collects the current value of every application flag as a
// constant named after the flag, with hyphens replaced by underscores.
func (i *Init) buildBindings(ctx context.Context) *lang.Bindings {
	b := lang.NewBindings()

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return b
	}

	prefixIgnore := []string{"help", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if val, ok := flagValue(ktx, flag); ok {
			b.Set(strings.ReplaceAll(flag.Name, "-", "_"), val)
		}
	}

	return b
}

// flagValue returns the constant value of a CLI flag.
// It reports false for unset or empty flags.
func flagValue(ktx *kong.Context, flag *kong.Flag) (lang.Value, bool) {
	val := ktx.FlagValue(flag)
	if val == nil {
		return lang.Value{}, false
	}

	return nativeValue(reflect.ValueOf(val))
}

func nativeValue(rv reflect.Value) (lang.Value, bool) {
	switch rv.Kind() {
	case reflect.Bool:
		return lang.Identifier(strconv.FormatBool(rv.Bool())), true

	case reflect.String:
		if rv.Len() == 0 {
			return lang.Value{}, false
		}

		return lang.String(rv.String()), true

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return lang.Integer(rv.Int()), true

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return lang.BigInteger(new(big.Int).SetUint64(rv.Uint())), true

	case reflect.Float32, reflect.Float64:
		return lang.Float(rv.Float()), true

	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			return lang.Value{}, false
		}

		items := make([]lang.Value, 0, rv.Len())

		for j := range rv.Len() {
			if item, ok := nativeValue(rv.Index(j)); ok {
				items = append(items, item)
			}
		}

		return lang.List(items...), true

	default:
		if !rv.IsValid() || !rv.CanInterface() {
			return lang.Value{}, false
		}

		if s, ok := rv.Interface().(interface{ String() string }); ok {
			return nativeValue(reflect.ValueOf(s.String()))
		}

		return lang.Value{}, false
	}
}
