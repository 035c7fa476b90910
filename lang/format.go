package lang

//go:generate go tool stringer --linecomment --type Format --output format_string.go

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"iter"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/ardnew/mung"
	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
	"github.com/goccy/go-yaml"
	"github.com/iancoleman/orderedmap"
	"github.com/joho/godotenv"

	"github.com/ardnew/constx/log"
)

// Format identifies an output syntax for [Bindings].
type Format int

const (
	XML    Format = iota // xml
	JSON                 // json
	YAML                 // yaml
	Env                  // env
	Native               // native
)

// DefaultFormat is the primary output format.
const DefaultFormat = XML

// Formats returns an iterator over the names of all output formats.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, f := range []Format{XML, JSON, YAML, Env, Native} {
			if !yield(f.String()) {
				return
			}
		}
	}
}

// ParseFormat returns the Format named s, ignoring case.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))

	for _, f := range []Format{XML, JSON, YAML, Env, Native} {
		if f.String() == name {
			return f, nil
		}
	}

	return DefaultFormat, ErrInvalidFormat.With(slog.String("format", s))
}

// RenderOptions controls the layout of rendered output.
type RenderOptions struct {
	// Indent is the number of spaces per nesting level. Zero selects the
	// compact form of formats that have one.
	Indent int
	// Header prepends the XML declaration.
	Header bool
	// Canonical emits RFC 8785 canonical JSON.
	Canonical bool
}

// Render writes the bindings to w in format f.
func (b *Bindings) Render(
	ctx context.Context,
	w io.Writer,
	f Format,
	opts RenderOptions,
) error {
	switch f {
	case XML:
		return b.FormatXML(ctx, w, opts.Indent, opts.Header)
	case JSON:
		return b.FormatJSON(ctx, w, opts.Indent, opts.Canonical)
	case YAML:
		return b.FormatYAML(ctx, w, opts.Indent)
	case Env:
		return b.FormatEnv(ctx, w)
	case Native:
		return b.FormatNative(ctx, w)
	default:
		return ErrInvalidFormat.With(slog.String("format", f.String()))
	}
}

// FormatJSON writes the bindings as a JSON object to w, keys in store order.
// Floats keep their textual form (5.0 stays 5.0).
//
// If canonical is set, the output is canonicalized per RFC 8785: keys are
// sorted, insignificant whitespace is removed, and indent is ignored.
func (b *Bindings) FormatJSON(
	ctx context.Context,
	w io.Writer,
	indent int,
	canonical bool,
) error {
	obj := orderedmap.New()
	obj.SetEscapeHTML(false)

	for name, v := range b.All() {
		obj.Set(name, jsonValue(v))
	}

	raw, err := obj.MarshalJSON()
	if err != nil {
		return ErrRender.Wrap(err).With(slog.String("format", JSON.String()))
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return ErrRender.Wrap(err).With(slog.String("format", JSON.String()))
	}

	data := compact.Bytes()

	switch {
	case canonical:
		data, err = jsoncanonicalizer.Transform(data)
		if err != nil {
			return ErrRender.Wrap(err).With(slog.String("format", JSON.String()))
		}

	case indent > 0:
		var out bytes.Buffer
		if err := json.Indent(&out, data, "", strings.Repeat(" ", indent)); err != nil {
			return ErrRender.Wrap(err).With(slog.String("format", JSON.String()))
		}

		data = out.Bytes()
	}

	log.FromContext(ctx).TraceContext(ctx, "rendered json",
		slog.Bool("canonical", canonical),
		slog.Int("bytes", len(data)))

	_, err = w.Write(append(data, '\n'))

	return err
}

func jsonValue(v Value) any {
	switch v.Kind() {
	case KindInteger:
		return json.Number(v.Text())

	case KindFloat:
		// JSON has no infinity.
		if math.IsInf(v.Float64(), 0) {
			return v.Text()
		}

		return json.Number(v.Text())

	case KindList:
		out := make([]any, len(v.Items()))
		for i, item := range v.Items() {
			out[i] = jsonValue(item)
		}

		return out

	default:
		return v.Native()
	}
}

// FormatYAML writes the bindings as a YAML mapping to w, keys in store order.
// A zero indent selects flow style.
func (b *Bindings) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	doc := make(yaml.MapSlice, 0, b.Len())
	for name, v := range b.All() {
		doc = append(doc, yaml.MapItem{Key: name, Value: yamlValue(v)})
	}

	data, err := yaml.MarshalContext(ctx, doc, opts...)
	if err != nil {
		return ErrRender.Wrap(err).With(slog.String("format", YAML.String()))
	}

	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}

	_, err = w.Write(data)

	return err
}

// yamlNumber is integer text emitted as a plain YAML scalar.
type yamlNumber string

// MarshalYAML implements [yaml.BytesMarshaler].
func (n yamlNumber) MarshalYAML() ([]byte, error) { return []byte(n), nil }

func yamlValue(v Value) any {
	switch {
	case v.Kind() == KindInteger && !v.IsInt64():
		return yamlNumber(v.Text())

	case v.IsList():
		out := make([]any, len(v.Items()))
		for i, item := range v.Items() {
			out[i] = yamlValue(item)
		}

		return out

	default:
		return v.Native()
	}
}

// FormatEnv writes the bindings as dotenv assignments to w, sorted by name.
// List items are flattened and joined with the OS path list separator.
func (b *Bindings) FormatEnv(_ context.Context, w io.Writer) error {
	env := make(map[string]string, b.Len())

	for name, v := range b.All() {
		env[name] = envValue(v)
	}

	s, err := godotenv.Marshal(env)
	if err != nil {
		return ErrRender.Wrap(err).With(slog.String("format", Env.String()))
	}

	if s != "" {
		s += "\n"
	}

	_, err = io.WriteString(w, s)

	return err
}

func envValue(v Value) string {
	if !v.IsList() {
		return v.Text()
	}

	return mung.Make(
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(flatten(v)...),
	).String()
}

// flatten returns the text of every scalar in v, depth first.
func flatten(v Value) []string {
	if !v.IsList() {
		return []string{v.Text()}
	}

	var out []string
	for _, item := range v.Items() {
		out = append(out, flatten(item)...)
	}

	return out
}

// FormatNative writes the bindings back as constant declarations, one per
// line in store order. Parsing the output yields equal bindings.
func (b *Bindings) FormatNative(_ context.Context, w io.Writer) error {
	var buf bytes.Buffer

	for name, v := range b.All() {
		buf.WriteString("const ")
		buf.WriteString(name)
		buf.WriteString(" = ")
		writeNative(&buf, v)
		buf.WriteString(";\n")
	}

	_, err := buf.WriteTo(w)

	return err
}

// Expr returns v as an expression that evaluates to an equal Value.
func (v Value) Expr() string {
	var buf bytes.Buffer
	writeNative(&buf, v)

	return buf.String()
}

// infLiteral is 1e309, the shortest digit literal past the float64 range.
var infLiteral = "1" + strings.Repeat("0", 309) + ".0"

func writeNative(buf *bytes.Buffer, v Value) {
	switch v.Kind() {
	case KindString:
		buf.WriteByte('"')
		buf.WriteString(v.Str())
		buf.WriteByte('"')

	case KindList:
		buf.WriteString(listOpen)

		for i, item := range v.Items() {
			if i > 0 {
				buf.WriteString(", ")
			}

			writeNative(buf, item)
		}

		buf.WriteByte(')')

	case KindFloat:
		// The language has no exponent form or infinity; a literal past the
		// float64 range reads back as +Inf.
		if math.IsInf(v.Float64(), 1) {
			buf.WriteString(infLiteral)

			break
		}

		s := strconv.FormatFloat(v.Float64(), 'f', -1, 64)
		if !strings.ContainsRune(s, '.') {
			s += ".0"
		}

		buf.WriteString(s)

	default:
		buf.WriteString(v.Text())
	}
}
