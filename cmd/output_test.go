package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/moyu-x/dupsweep/pkg/progress"
)

func TestSizeFlag(t *testing.T) {
	n, err := sizeFlag("", 42)
	if err != nil || n != 42 {
		t.Errorf("Expected fallback 42, got %d (%v)", n, err)
	}
	n, err = sizeFlag("10MiB", 0)
	if err != nil || n != 10<<20 {
		t.Errorf("Expected 10MiB, got %d (%v)", n, err)
	}
	if _, err := sizeFlag("huge", 0); err == nil {
		t.Error("Expected error for invalid size")
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := printJSON(&buf, map[string]int{"groups": 2}); err != nil {
		t.Fatalf("printJSON() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"groups": 2`) {
		t.Errorf("Unexpected JSON: %s", buf.String())
	}
}

func TestLogPhases(t *testing.T) {
	fn := logPhases()
	fn(progress.Update{Phase: progress.PhaseCollecting})
	fn(progress.Update{Phase: progress.PhaseCollecting, Label: "x"})
	fn(progress.Update{Phase: progress.PhaseDone, Fraction: 1})
}

func TestBytesOf(t *testing.T) {
	if got := bytesOf(-5); got != "0 B" {
		t.Errorf("Expected 0 B for negative input, got %s", got)
	}
	if got := bytesOf(1536); got != "1.5 KiB" {
		t.Errorf("Expected 1.5 KiB, got %s", got)
	}
}

func TestHelp_RootRulesNote(t *testing.T) {
	for _, c := range []*cobra.Command{dupesCmd, largeCmd} {
		if !strings.Contains(c.Long, "显式给出的目录总会被扫描") {
			t.Errorf("Expected %s help to describe root exclusion rules, got %q", c.Name(), c.Long)
		}
	}
}
