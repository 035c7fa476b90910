package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestRun exercises the whole command line. The configuration and cache
// directories are resolved once per process, so every case shares them.
func TestRun(t *testing.T) {
	home := t.TempDir()

	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, "cache"))

	dir := t.TempDir()
	input := filepath.Join(dir, "input.conf")

	err := os.WriteFile(input, []byte("const port = 8080;\nconst host = \"localhost\";\n"), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	exit := func(code int) { t.Fatalf("unexpected exit(%d)", code) }

	t.Run("convert", func(t *testing.T) {
		output := filepath.Join(dir, "out.json")

		err := Run(context.Background(), exit,
			"convert", "-i", input, "-o", output, "--format", "json", "--indent", "0")
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		got, err := os.ReadFile(output)
		if err != nil {
			t.Fatal(err)
		}

		if want := `{"port":8080,"host":"localhost"}`; strings.TrimSpace(string(got)) != want {
			t.Errorf("output = %s, want %s", got, want)
		}
	})

	t.Run("default command", func(t *testing.T) {
		output := filepath.Join(dir, "out.xml")

		err := Run(context.Background(), exit, "-i", input, "-o", output)
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		if _, err := os.Stat(output); err != nil {
			t.Errorf("output not written: %v", err)
		}
	})

	t.Run("init then resolve", func(t *testing.T) {
		err := Run(context.Background(), exit, "init", "--log-level", "warn")
		if err != nil {
			t.Fatalf("Run(init) error = %v", err)
		}

		data, err := os.ReadFile(configPath(baseConfig))
		if err != nil {
			t.Fatal(err)
		}

		if !strings.Contains(string(data), `const log_level = "warn";`) {
			t.Errorf("config = %q, want log_level warn", data)
		}

		err = Run(context.Background(), exit, "init")
		if err == nil {
			t.Error("Run(init) without --force succeeded over existing file")
		}

		err = Run(context.Background(), exit, "init", "--force")
		if err != nil {
			t.Errorf("Run(init --force) error = %v", err)
		}
	})
}
