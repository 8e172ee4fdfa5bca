package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestProcessedLog_AppendAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed.txt")

	first := NewProcessedLog(path)
	if err := first.Load(); err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if err := first.Append([]string{"u1", "u2"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	// Fresh store over the same file.
	second := NewProcessedLog(path)
	if err := second.Load(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !second.Contains("u1") || !second.Contains("u2") {
		t.Errorf("reloaded store missing appended ids")
	}
	if second.Contains("u3") {
		t.Errorf("u3 should not be present")
	}
}

func TestProcessedLog_DuplicateLinesAreHarmless(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed.txt")

	log := NewProcessedLog(path)
	if err := log.Append([]string{"u1"}); err != nil {
		t.Fatal(err)
	}
	if err := log.Append([]string{"u1", "u1"}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(data), "u1\n"); got != 3 {
		t.Errorf("expected 3 raw lines in the append-only log, got %d", got)
	}

	reloaded := NewProcessedLog(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}
	if !reloaded.Contains("u1") {
		t.Errorf("u1 missing after reload")
	}
	if reloaded.Len() != 1 {
		t.Errorf("duplicates must collapse to one membership entry, got %d", reloaded.Len())
	}
}

func TestProcessedLog_MissingFileIsFirstRun(t *testing.T) {
	log := NewProcessedLog(filepath.Join(t.TempDir(), "does-not-exist.txt"))
	if err := log.Load(); err != nil {
		t.Errorf("missing file should not error: %v", err)
	}
	if log.Contains("anything") {
		t.Errorf("empty store should contain nothing")
	}
}
