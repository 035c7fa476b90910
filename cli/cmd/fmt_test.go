package cmd

import (
	"errors"
	"testing"

	"github.com/ardnew/constx/lang"
)

func TestFmtRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	base := writeSource(t, dir, "base", "const host = localhost;\nconst port = 80;\n")
	over := writeSource(t, dir, "over", "\nconst port = 8080;\n")

	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name: "xml_default",
			args: []string{base},
			expected: `<configuration>
  <constant name="host">localhost</constant>
  <constant name="port">80</constant>
</configuration>
`,
		},
		{
			name: "layered_yaml",
			args: []string{"--format=yaml", base, over},
			expected: `host: localhost
port: 8080
`,
		},
		{
			name:     "layered_env",
			args:     []string{"-f", "env", over, base},
			expected: "host=\"localhost\"\nport=80\n",
		},
		{
			name:     "native_select",
			args:     []string{"--format=native", "--select=port", base},
			expected: "const port = 80;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var cli struct {
				Fmt Fmt `cmd:""`
			}

			ctx, out := parseCommand(t, &cli, append([]string{"fmt"}, tt.args...)...)

			if err := cli.Fmt.Run(ctx); err != nil {
				t.Fatalf("Fmt.Run() error = %v", err)
			}

			assertText(t, out.String(), tt.expected)
		})
	}
}

func TestFmtRun_ParseError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bad := writeSource(t, dir, "bad", "const a = list(1, 2;\n")

	var cli struct {
		Fmt Fmt `cmd:""`
	}

	ctx, out := parseCommand(t, &cli, "fmt", bad)

	err := cli.Fmt.Run(ctx)
	if !errors.Is(err, lang.ErrSyntax) {
		t.Fatalf("Fmt.Run() error = %v, want %v", err, lang.ErrSyntax)
	}

	if out.Len() != 0 {
		t.Errorf("Fmt.Run() wrote %q on error", out.String())
	}
}
