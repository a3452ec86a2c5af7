package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunWritesReportAndCSV(t *testing.T) {
	out := filepath.Join(t.TempDir(), "results.csv")
	var buf bytes.Buffer
	err := run(options{Games: 4, Workers: 2, Seed: 3, OutputFile: out, LogLevel: "error", NoColor: true}, &buf)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(buf.String(), "4 games played") || !strings.Contains(buf.String(), "Skill levels") {
		t.Fatalf("unexpected report:\n%s", buf.String())
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("csv rows = %d, want header plus 4 games", len(rows))
	}
}

func TestRunRejectsBadLogLevel(t *testing.T) {
	if err := run(options{Games: 1, LogLevel: "chatty", NoColor: true}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for unknown log level")
	}
}

func TestRunRejectsNegativeGames(t *testing.T) {
	if err := run(options{Games: -1, LogLevel: "error", NoColor: true}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for a negative game count")
	}
}
