package cmd

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/constx/lang"
	"github.com/ardnew/constx/log"
)

const (
	// FormatEnumIdentifier is the kong variable identifier listing the names
	// of all output formats.
	FormatEnumIdentifier = "formatEnum"

	// MaxDepthIdentifier is the kong variable identifier holding the default
	// list nesting limit.
	MaxDepthIdentifier = "maxDepth"
)

// Vars returns the kong variables referenced by the command flags.
func Vars() kong.Vars {
	return kong.Vars{
		FormatEnumIdentifier: strings.Join(slices.Collect(lang.Formats()), ","),
		MaxDepthIdentifier:   strconv.Itoa(lang.DefaultMaxDepth),
	}
}

// parseFlags are the parsing options shared by commands that read sources.
type parseFlags struct {
	MaxDepth int `default:"${maxDepth}" help:"Maximum list nesting depth." placeholder:"N"`
}

func (f *parseFlags) options() []lang.Option {
	return []lang.Option{lang.WithMaxDepth(f.MaxDepth)}
}

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdout returns the writer kong was configured with, or os.Stdout.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// varFrom returns the kong variable named id, or the empty string.
func varFrom(ctx context.Context, id string) string {
	if ktx := kongContextFrom(ctx); ktx != nil {
		return ktx.Model.Vars()[id]
	}

	return ""
}

// source is one opened input of a command.
type source struct {
	io.ReadCloser

	name string
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// openSources opens each of the given paths for reading.
//
// Paths naming a file already opened (through a symlink or a different
// relative path) are skipped. All occurrences of "-" are replaced with a
// single stdin reader placed last so it reads after all regular files.
//
// The caller must close every returned source. On error, no sources remain
// open.
func openSources(paths []string) (srcs []source, err error) {
	defer func() {
		if err != nil {
			closeSources(srcs)
			srcs = nil
		}
	}()

	seen := make(map[fileKey]struct{})

	stdinInfo, _ := os.Stdin.Stat()
	stdinKey, _ := makeFileKey(stdinInfo)

	for _, path := range paths {
		if path == stdinSource {
			seen[stdinKey] = struct{}{}

			continue
		}

		file, err := openUniqueFile(path, seen)
		if err != nil {
			return srcs, ErrReadSource.With(slog.String("file", path)).Wrap(err)
		}

		if file != nil {
			srcs = append(srcs, source{ReadCloser: file, name: path})
		}
	}

	// Stdin may have been included via "-" or as a named file.
	// Both of which will be represented by stdinKey in seen.
	if _, ok := seen[stdinKey]; ok {
		srcs = append(srcs, source{ReadCloser: io.NopCloser(os.Stdin), name: stdinSource})
	}

	if len(srcs) == 0 {
		return nil, ErrNoSource
	}

	return srcs, nil
}

func closeSources(srcs []source) {
	for _, src := range srcs {
		_ = src.Close()
	}
}

// openUniqueFile opens the file at path if it hasn't been seen before.
// It resolves symlinks and uses device/inode to detect duplicates.
// A duplicate yields a nil file and nil error.
func openUniqueFile(path string, seen map[fileKey]struct{}) (*os.File, error) {
	// Resolve to absolute path to handle relative path duplicates.
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	// Resolve symlinks to their target.
	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, err
	}

	// Get file info to extract device and inode.
	info, err := os.Stat(resolved)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		return nil, &fs.PathError{Op: "open", Path: path, Err: syscall.EISDIR}
	}

	if key, ok := makeFileKey(info); ok {
		if _, exists := seen[key]; exists {
			return nil, nil
		}

		seen[key] = struct{}{}
	}

	return os.Open(resolved)
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	if info == nil {
		return key, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}

// loadBindings parses every source in paths and merges the results in order.
// A constant declared in a later source overrides the value from an earlier
// one but keeps its original position.
func loadBindings(
	ctx context.Context,
	paths []string,
	opts ...lang.Option,
) (*lang.Bindings, error) {
	srcs, err := openSources(paths)
	if err != nil {
		return nil, err
	}
	defer closeSources(srcs)

	logger := log.FromContext(ctx)
	merged := lang.NewBindings()

	for _, src := range srcs {
		attr := slog.String("source", src.name)

		b, err := lang.ParseReader(ctx, src,
			append(opts, lang.WithLogger(logger.With(attr)))...)
		if err != nil {
			var le *lang.Error
			if errors.As(err, &le) {
				return nil, le.With(attr)
			}

			return nil, ErrReadSource.With(attr).Wrap(err)
		}

		for name, v := range b.All() {
			merged.Set(name, v)
		}

		logger.DebugContext(ctx, "source loaded", attr, slog.Int("constants", b.Len()))
	}

	return merged, nil
}
