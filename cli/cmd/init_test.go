package cmd

import (
	"bytes"
	"context"
	"errors"
	"math"
	"math/big"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/andreyvit/diff"

	"github.com/ardnew/constx/lang"
)

// TestInitRun tests the Init.Run command.
func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		force   bool
		setup   func(t *testing.T, path string) // setup function to prepare test
		wantErr error
	}{
		{
			name:  "create_new_config",
			force: false,
			setup: nil, // no pre-existing file
		},
		{
			name:  "overwrite_existing_with_force",
			force: true,
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("existing content"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name:  "fail_without_force",
			force: false,
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("existing content"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: ErrFileExists, // should fail because file exists
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "config")

			if tt.setup != nil {
				tt.setup(t, confPath)
			}

			var cli struct {
				Level string `default:"info" name:"log-level"`
			}

			parser, err := kong.New(&cli, kong.Vars{
				ConfigIdentifier: confPath,
			})
			if err != nil {
				t.Fatal(err)
			}

			kctx, err := parser.Parse(nil)
			if err != nil {
				t.Fatal(err)
			}

			ctx := WithContext(context.Background(), kctx)

			initCmd := &Init{Force: tt.force}
			err = initCmd.Run(ctx)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Init.Run() error = %v, want %v", err, tt.wantErr)
				}

				if !errors.Is(err, ErrWriteConfig) {
					t.Errorf("Init.Run() error = %v, want %v", err, ErrWriteConfig)
				}

				return
			}

			if err != nil {
				t.Fatalf("Init.Run() error = %v", err)
			}

			content, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			b, err := lang.ParseString(ctx, string(content))
			if err != nil {
				t.Fatalf("generated config is not valid: %v", err)
			}

			if v, ok := b.Get("log_level"); !ok || !v.Equal(lang.String("info")) {
				t.Errorf("log_level = %v, want string(info)", v)
			}
		})
	}
}

// TestInitBuildBindings tests that buildBindings captures flag values.
func TestInitBuildBindings(t *testing.T) {
	t.Parallel()

	var cli struct {
		Verbose bool     `help:"Enable verbose output" name:"verbose"`
		Output  string   `help:"Output file"           name:"output"`
		Count   int      `help:"Number of items"       name:"count"`
		Ratio   float64  `help:"Ratio"                 name:"ratio"`
		Tags    []string `help:"Tags"                  name:"tags"`
		Empty   string   `help:"Unset"                 name:"empty"`
		Hidden  string   `default:"x"                  hidden:"" name:"secret"`
		Mode    string   `default:"cpu"                name:"pprof-mode"`
	}

	parser, err := kong.New(&cli)
	if err != nil {
		t.Fatal(err)
	}

	kctx, err := parser.Parse([]string{
		"--verbose", "--output=test.txt", "--count=5", "--ratio=0.5", "--tags=a,b",
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithContext(context.Background(), kctx)

	b := (&Init{}).buildBindings(ctx)

	var buf bytes.Buffer
	if err := b.FormatNative(ctx, &buf); err != nil {
		t.Fatal(err)
	}

	expected := `const verbose = true;
const output = "test.txt";
const count = 5;
const ratio = 0.5;
const tags = list("a", "b");
`

	if got := buf.String(); got != expected {
		t.Fatalf("expected and actual are not equal\n\n%s", diff.LineDiff(expected, got))
	}
}

// TestInitNativeValue tests the conversion of flag values to constants.
func TestInitNativeValue(t *testing.T) {
	t.Parallel()

	type level string

	tests := []struct {
		name  string
		value any
		want  lang.Value
		ok    bool
	}{
		{name: "bool_true", value: true, want: lang.Identifier("true"), ok: true},
		{name: "bool_false", value: false, want: lang.Identifier("false"), ok: true},
		{name: "string_value", value: "test", want: lang.String("test"), ok: true},
		{name: "named_string", value: level("debug"), want: lang.String("debug"), ok: true},
		{name: "empty_string", value: "", ok: false},
		{name: "int_value", value: 42, want: lang.Integer(42), ok: true},
		{name: "uint_value", value: uint8(7), want: lang.Integer(7), ok: true},
		{
			name:  "uint_past_int64",
			value: uint64(math.MaxUint64),
			want:  lang.BigInteger(new(big.Int).SetUint64(math.MaxUint64)),
			ok:    true,
		},
		{name: "float_value", value: 3.14, want: lang.Float(3.14), ok: true},
		{
			name:  "string_slice",
			value: []string{"a", "b", "c"},
			want:  lang.List(lang.String("a"), lang.String("b"), lang.String("c")),
			ok:    true,
		},
		{name: "empty_slice", value: []string{}, ok: false},
		{
			name:  "int_slice",
			value: []int{1, 2, 3},
			want:  lang.List(lang.Integer(1), lang.Integer(2), lang.Integer(3)),
			ok:    true,
		},
		{name: "unsupported", value: struct{}{}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := nativeValue(reflect.ValueOf(tt.value))
			if ok != tt.ok {
				t.Fatalf("nativeValue(%v) ok = %v, want %v", tt.value, ok, tt.ok)
			}

			if ok && !got.Equal(tt.want) {
				t.Errorf("nativeValue(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
