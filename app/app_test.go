package app

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/dupsweep/config"
	"github.com/moyu-x/dupsweep/internal"
	"github.com/moyu-x/dupsweep/pkg/classifier"
	"github.com/moyu-x/dupsweep/pkg/trash"
)

func testEnv(t *testing.T) (*Env, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	files := []struct {
		path    string
		content []byte
		age     time.Duration
	}{
		{"/data/a.jpg", bytes.Repeat([]byte("I"), 2000), 0},
		{"/data/copy/a.jpg", bytes.Repeat([]byte("I"), 2000), time.Hour},
		{"/data/n.txt", bytes.Repeat([]byte("T"), 1500), 0},
		{"/data/n2.txt", bytes.Repeat([]byte("T"), 1500), time.Hour},
		{"/data/big.iso", bytes.Repeat([]byte("B"), 5000), 0},
	}
	for _, f := range files {
		if err := afero.WriteFile(fs, f.path, f.content, 0644); err != nil {
			t.Fatalf("WriteFile(%s) error = %v", f.path, err)
		}
		ts := base.Add(f.age)
		fs.Chtimes(f.path, ts, ts)
	}

	cfg := &config.Config{}
	cfg.Scanner.Exclude = internal.DefaultExcludes
	cfg.Scanner.BundleExtensions = internal.DefaultBundleExtensions
	cfg.Dedup.MinFileSize = internal.DefaultMinFileSize
	cfg.Hasher.Algorithm = internal.DefaultHashAlgorithm
	cfg.Large.Threshold = 4000
	cfg.Report.Path = filepath.Join(t.TempDir(), "reports.db")

	return NewEnv(cfg, fs, trash.NewBin(fs, "/trash", false)), fs
}

func TestRunDupes(t *testing.T) {
	env, _ := testEnv(t)

	res, err := RunDupes(context.Background(), env, &DupesOptions{Roots: []string{"/data"}, MinFileSize: -1, Report: true}, nil)
	if err != nil {
		t.Fatalf("RunDupes() error = %v", err)
	}
	if len(res.Groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(res.Groups))
	}
	if res.Reclaimable != 3500 {
		t.Errorf("Expected 3500 reclaimable, got %d", res.Reclaimable)
	}
	if res.ScanID == "" {
		t.Error("Expected report to be saved")
	}

	history, err := RunHistory(env, 10)
	if err != nil {
		t.Fatalf("RunHistory() error = %v", err)
	}
	if len(history) != 1 || history[0].ID != res.ScanID {
		t.Errorf("Expected saved scan in history, got %+v", history)
	}
}

func TestRunDupes_CategoryAndTrash(t *testing.T) {
	env, fs := testEnv(t)

	res, err := RunDupes(context.Background(), env, &DupesOptions{
		Roots:       []string{"/data"},
		MinFileSize: -1,
		Category:    classifier.Images,
		Trash:       true,
	}, nil)
	if err != nil {
		t.Fatalf("RunDupes() error = %v", err)
	}
	if len(res.Groups) != 1 || res.Groups[0].Category != classifier.Images {
		t.Fatalf("Expected only the image group, got %+v", res.Groups)
	}
	if res.Trashed != 1 || res.Failed != 0 {
		t.Errorf("Expected 1 trashed, got %d trashed and %d failed", res.Trashed, res.Failed)
	}
	if exists, _ := afero.Exists(fs, "/data/a.jpg"); !exists {
		t.Error("Original must stay in place")
	}
	if exists, _ := afero.Exists(fs, "/data/copy/a.jpg"); exists {
		t.Error("Duplicate should have been moved to trash")
	}
}

func TestRunDupes_InvalidOptions(t *testing.T) {
	env, _ := testEnv(t)

	if _, err := RunDupes(context.Background(), env, &DupesOptions{Roots: []string{"/data"}, Category: "movies"}, nil); err == nil {
		t.Error("Expected error for unknown category")
	}
	if _, err := RunDupes(context.Background(), env, &DupesOptions{Roots: []string{"/data"}, Algorithm: "md5"}, nil); err == nil {
		t.Error("Expected error for unknown algorithm")
	}
}

func TestRunLarge(t *testing.T) {
	env, _ := testEnv(t)

	res, err := RunLarge(context.Background(), env, &LargeOptions{Roots: []string{"/data"}}, nil)
	if err != nil {
		t.Fatalf("RunLarge() error = %v", err)
	}
	if res.Threshold != 4000 {
		t.Errorf("Expected threshold from config, got %d", res.Threshold)
	}
	if len(res.Files) != 1 || res.Files[0].Path != "/data/big.iso" {
		t.Errorf("Expected only big.iso, got %+v", res.Files)
	}

	res, err = RunLarge(context.Background(), env, &LargeOptions{Roots: []string{"/data"}, Threshold: 1500, Category: classifier.Documents}, nil)
	if err != nil {
		t.Fatalf("RunLarge() error = %v", err)
	}
	if len(res.Files) != 2 || res.TotalSize != 3000 {
		t.Errorf("Expected the two text files, got %+v", res.Files)
	}
}

func TestRunSize(t *testing.T) {
	env, _ := testEnv(t)

	res := RunSize(context.Background(), env, "/data", false, nil)
	if !res.Available || res.Size != 12000 {
		t.Errorf("Expected (12000, true), got (%d, %v)", res.Size, res.Available)
	}

	res = RunSize(context.Background(), env, "/data", true, nil)
	if !res.Available || len(res.Items) != 5 || res.Size != 12000 {
		t.Errorf("Unexpected breakdown: %+v", res)
	}
	if res.Items[0].Name != "big.iso" {
		t.Errorf("Expected largest item first, got %s", res.Items[0].Name)
	}

	if res := RunSize(context.Background(), env, "/missing", true, nil); res.Available {
		t.Error("Expected missing path to be unavailable")
	}
}

func TestRoots(t *testing.T) {
	env, _ := testEnv(t)

	if _, err := env.Roots(nil); err == nil {
		t.Error("Expected error when no roots are given")
	}

	env.Cfg.Scanner.Roots = []string{"/cfg"}
	roots, err := env.Roots(nil)
	if err != nil || roots[0] != "/cfg" {
		t.Errorf("Expected config roots, got %v (%v)", roots, err)
	}
	roots, _ = env.Roots([]string{"/arg"})
	if roots[0] != "/arg" {
		t.Errorf("Expected argument roots to win, got %v", roots)
	}
}
