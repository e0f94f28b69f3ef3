package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupLogFileCreatesAndPrunes(t *testing.T) {
	dir := t.TempDir()

	// Pre-seed old logs; timestamped names sort chronologically.
	old := []string{
		"server-2026-01-01T00-00-00.log",
		"server-2026-01-02T00-00-00.log",
		"server-2026-01-03T00-00-00.log",
	}
	for _, name := range old {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}

	f, err := SetupLogFile(dir, 2)
	if err != nil {
		t.Fatalf("SetupLogFile: %v", err)
	}
	defer f.Close()

	if _, err := f.WriteString("hello\n"); err != nil {
		t.Fatalf("write to log file: %v", err)
	}
	if base := filepath.Base(f.Name()); !strings.HasPrefix(base, "server-") || !strings.HasSuffix(base, ".log") {
		t.Errorf("log file name = %q", base)
	}

	files, err := filepath.Glob(filepath.Join(dir, "server-*.log"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("kept %d log files, want 2: %v", len(files), files)
	}
	for _, kept := range files {
		if filepath.Base(kept) == old[0] || filepath.Base(kept) == old[1] {
			t.Errorf("oldest log %s survived cleanup", filepath.Base(kept))
		}
	}
}

func TestSetupLogFileCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")

	f, err := SetupLogFile(dir, 5)
	if err != nil {
		t.Fatalf("SetupLogFile: %v", err)
	}
	f.Close()

	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("log directory missing: %v", err)
	}
}
