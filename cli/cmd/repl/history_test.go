package repl

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestHistory_PersistAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)

	for _, e := range []HistoryEntry{
		{Line: "const a = 1;", Mode: modeEval},
		{Line: "list", Mode: modeCtrl},
		{Line: "a + 1", Mode: modeEval},
		{Line: "const a = 1;", Mode: modeEval}, // moves to the end
		{Line: "  ", Mode: modeEval},           // ignored
	} {
		if err := h.Add(e.Line, e.Mode); err != nil {
			t.Fatalf("Add(%q) error = %v", e.Line, err)
		}
	}

	want := []HistoryEntry{
		{Line: "list", Mode: modeCtrl},
		{Line: "a + 1", Mode: modeEval},
		{Line: "const a = 1;", Mode: modeEval},
	}

	if got := h.Entries(); !slices.Equal(got, want) {
		t.Fatalf("Entries() = %v, want %v", got, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := string(data), "C:list\nE:a + 1\nE:const a = 1;\n"; got != want {
		t.Errorf("history file = %q, want %q", got, want)
	}

	loaded := NewHistory(path)
	if err := loaded.Load(); err != nil {
		t.Fatal(err)
	}

	if got := loaded.Entries(); !slices.Equal(got, want) {
		t.Errorf("loaded Entries() = %v, want %v", got, want)
	}
}

func TestHistory_LoadLegacyAndLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	var sb strings.Builder
	for range historyLimit + 5 {
		sb.WriteString("E:x\n")
	}

	sb.WriteString("legacy line\n")

	if err := os.WriteFile(path, []byte(sb.String()), 0o600); err != nil {
		t.Fatal(err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatal(err)
	}

	if h.Len() != historyLimit {
		t.Errorf("Len() = %d, want %d", h.Len(), historyLimit)
	}

	last, err := h.GetEntry(h.Len() - 1)
	if err != nil {
		t.Fatal(err)
	}

	if last != (HistoryEntry{Line: "legacy line", Mode: modeEval}) {
		t.Errorf("last entry = %+v", last)
	}

	if _, err := h.GetEntry(h.Len()); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("GetEntry(Len()) error = %v, want %v", err, ErrOutOfBounds)
	}
}

func TestHistory_MissingFileAndMemory(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "missing"))
	if err := h.Load(); err != nil {
		t.Errorf("Load() on missing file error = %v", err)
	}

	mem := NewHistory("")
	if err := mem.Add("quit", modeCtrl); err != nil {
		t.Fatal(err)
	}

	if mem.Len() != 1 {
		t.Errorf("Len() = %d, want 1", mem.Len())
	}
}
