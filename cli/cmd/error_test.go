package cmd

import (
	"errors"
	"io/fs"
	"log/slog"
	"testing"
)

func TestError_IsSurvivesDerivation(t *testing.T) {
	t.Parallel()

	err := ErrWriteOutput.
		With(slog.String("file", "out.xml")).
		Wrap(fs.ErrPermission)

	if !errors.Is(err, ErrWriteOutput) {
		t.Errorf("errors.Is(%v, ErrWriteOutput) = false", err)
	}

	if !errors.Is(err, fs.ErrPermission) {
		t.Errorf("errors.Is(%v, fs.ErrPermission) = false", err)
	}

	if errors.Is(err, ErrWriteConfig) {
		t.Errorf("errors.Is(%v, ErrWriteConfig) = true", err)
	}

	if got, want := err.Error(), "write output: permission denied"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestError_LogValue(t *testing.T) {
	t.Parallel()

	err := ErrWriteConfig.With(slog.String("file", "config")).Wrap(ErrFileExists)

	attrs := err.LogValue().Group()

	want := map[string]string{
		"error": "write configuration file",
		"cause": ErrFileExists.Error(),
		"file":  "config",
	}

	if len(attrs) != len(want) {
		t.Fatalf("LogValue() has %d attrs, want %d", len(attrs), len(want))
	}

	for _, a := range attrs {
		if a.Value.String() != want[a.Key] {
			t.Errorf("attr %s = %q, want %q", a.Key, a.Value.String(), want[a.Key])
		}
	}
}
