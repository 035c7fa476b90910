package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/constx/lang"
)

// writeSource writes content to name in dir and returns its path.
func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

// TestOpenSourcesOrder tests that files are opened in the given order.
func TestOpenSourcesOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file1 := writeSource(t, dir, "file1", "first")
	file2 := writeSource(t, dir, "file2", "second")

	srcs, err := openSources([]string{file1, file2})
	if err != nil {
		t.Fatal(err)
	}
	defer closeSources(srcs)

	want := []string{"first", "second"}
	if len(srcs) != len(want) {
		t.Fatalf("got %d sources, want %d", len(srcs), len(want))
	}

	for i, src := range srcs {
		data, err := io.ReadAll(src)
		if err != nil {
			t.Fatalf("reading source %d: %v", i, err)
		}

		if string(data) != want[i] {
			t.Errorf("source %d: got %q, want %q", i, data, want[i])
		}
	}
}

// TestOpenSourcesDeduplicate tests that duplicate paths are only opened once.
func TestOpenSourcesDeduplicate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeSource(t, dir, "file", "content")

	link := filepath.Join(dir, "link")
	if err := os.Symlink(file, link); err != nil {
		t.Skipf("symlink: %v", err)
	}

	relative := filepath.Join(dir, ".", "file")

	srcs, err := openSources([]string{file, link, relative, file})
	if err != nil {
		t.Fatal(err)
	}
	defer closeSources(srcs)

	if len(srcs) != 1 {
		t.Errorf("got %d sources, want 1", len(srcs))
	}
}

// TestOpenSourcesStdinLast tests that stdin is placed after regular files.
func TestOpenSourcesStdinLast(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeSource(t, dir, "file", "content")

	srcs, err := openSources([]string{stdinSource, file, stdinSource})
	if err != nil {
		t.Fatal(err)
	}
	defer closeSources(srcs)

	if len(srcs) != 2 {
		t.Fatalf("got %d sources, want 2", len(srcs))
	}

	if srcs[0].name != file {
		t.Errorf("first source = %q, want %q", srcs[0].name, file)
	}

	if srcs[1].name != stdinSource {
		t.Errorf("last source = %q, want %q", srcs[1].name, stdinSource)
	}
}

// TestOpenSourcesErrors tests that unreadable sources are reported.
func TestOpenSourcesErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeSource(t, dir, "file", "content")

	tests := []struct {
		name  string
		paths []string
		want  error
	}{
		{name: "missing", paths: []string{file, filepath.Join(dir, "missing")}, want: ErrReadSource},
		{name: "directory", paths: []string{dir}, want: ErrReadSource},
		{name: "empty", paths: nil, want: ErrNoSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srcs, err := openSources(tt.paths)
			if !errors.Is(err, tt.want) {
				t.Errorf("openSources() error = %v, want %v", err, tt.want)
			}

			if srcs != nil {
				t.Errorf("openSources() returned %d open sources on error", len(srcs))
			}
		})
	}
}

// TestLoadBindingsMerge tests that later sources override earlier ones.
func TestLoadBindingsMerge(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	base := writeSource(t, dir, "base", "const host = \"localhost\";\nconst port = 80;\n")
	over := writeSource(t, dir, "over", "const port = 8080;\nconst debug = true;\n")

	b, err := loadBindings(context.Background(), []string{base, over})
	if err != nil {
		t.Fatal(err)
	}

	wantNames := []string{"host", "port", "debug"}

	names := b.Names()
	if len(names) != len(wantNames) {
		t.Fatalf("Names() = %v, want %v", names, wantNames)
	}

	for i := range wantNames {
		if names[i] != wantNames[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], wantNames[i])
		}
	}

	port, _ := b.Get("port")
	if !port.Equal(lang.Integer(8080)) {
		t.Errorf("port = %v, want integer(8080)", port)
	}
}

// TestLoadBindingsParseError tests that parse errors keep their kind.
func TestLoadBindingsParseError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bad := writeSource(t, dir, "bad", "const a = 1;\nconst b = $missing$;\n")

	_, err := loadBindings(context.Background(), []string{bad})
	if !errors.Is(err, lang.ErrUndefinedConstant) {
		t.Fatalf("loadBindings() error = %v, want %v", err, lang.ErrUndefinedConstant)
	}

	var le *lang.Error
	if !errors.As(err, &le) || le.Position().Line != 2 {
		t.Errorf("loadBindings() error position = %v, want line 2", err)
	}
}

// TestMaxDepthFlag tests the list nesting limit used when loading sources.
func TestMaxDepthFlag(t *testing.T) {
	t.Parallel()

	nest := func(n int) string {
		return "const deep = " + strings.Repeat("list(", n) + "1" + strings.Repeat(")", n) + ";\n"
	}

	dir := t.TempDir()
	deep := writeSource(t, dir, "deep", nest(400))
	shallow := writeSource(t, dir, "shallow", nest(3))

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "default_allows_deep", args: []string{"fmt", deep}},
		{name: "limit_allows_equal", args: []string{"fmt", "--max-depth=3", shallow}},
		{name: "limit_rejects_deeper", args: []string{"fmt", "--max-depth=2", shallow}, wantErr: lang.ErrMaxDepthExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var cli struct {
				Fmt Fmt `cmd:""`
			}

			ctx, _ := parseCommand(t, &cli, tt.args...)

			if cli.Fmt.Parse.MaxDepth <= 0 {
				t.Fatalf("MaxDepth = %d, want positive", cli.Fmt.Parse.MaxDepth)
			}

			err := cli.Fmt.Run(ctx)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Fmt.Run() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
