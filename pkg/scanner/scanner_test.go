package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/dupsweep/internal"
	"github.com/moyu-x/dupsweep/pkg/cancel"
)

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
}

func collect(w *FileWalker, roots []string, tok *cancel.Token) ([]string, int) {
	var paths []string
	n := w.WalkRoots(roots, tok, nil, func(r internal.FileRecord) {
		paths = append(paths, r.Path)
	})
	sort.Strings(paths)
	return paths, n
}

func testTree(t *testing.T) afero.Fs {
	fs := afero.NewMemMapFs()
	for _, p := range []string{
		"/data/a.txt",
		"/data/sub/b.txt",
		"/data/.hidden_file",
		"/data/.hidden_dir/c.txt",
		"/data/node_modules/pkg/index.js",
		"/data/sub/node_modules/deep.js",
		"/data/Tool.app/Contents/binary",
		"/data/photos/img.jpg",
	} {
		writeFile(t, fs, p, "content of "+p)
	}
	return fs
}

func TestFileWalker_WalkRoots(t *testing.T) {
	w := NewFileWalker(testTree(t), DefaultPolicy())

	paths, n := collect(w, []string{"/data"}, cancel.NewToken())
	if n != 1 {
		t.Errorf("Expected 1 accessible root, got %d", n)
	}

	want := []string{"/data/a.txt", "/data/photos/img.jpg", "/data/sub/b.txt"}
	if len(paths) != len(want) {
		t.Fatalf("Expected %v, got %v", want, paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("Expected %s at %d, got %s", want[i], i, paths[i])
		}
	}
}

func TestFileWalker_DescendBundles(t *testing.T) {
	w := NewFileWalker(testTree(t), DefaultPolicy()).WithDescendBundles()

	paths, _ := collect(w, []string{"/data"}, cancel.NewToken())

	found := false
	for _, p := range paths {
		if p == "/data/Tool.app/Contents/binary" {
			found = true
		}
		if p == "/data/.hidden_file" || p == "/data/node_modules/pkg/index.js" {
			t.Errorf("Unexpected path in aggregate mode: %s", p)
		}
	}
	if !found {
		t.Error("Expected bundle contents when descending bundles")
	}
}

func TestFileWalker_NonExistentRoot(t *testing.T) {
	w := NewFileWalker(testTree(t), DefaultPolicy())

	paths, n := collect(w, []string{"/missing", "/data/a.txt", "/data"}, cancel.NewToken())
	if n != 1 {
		t.Errorf("Expected 1 accessible root, got %d", n)
	}
	if len(paths) != 3 {
		t.Errorf("Expected 3 files, got %d", len(paths))
	}
}

func TestFileWalker_HiddenRootIsWalked(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/home/.config/app/settings.json", "{}")

	w := NewFileWalker(fs, DefaultPolicy())
	paths, _ := collect(w, []string{"/home/.config"}, cancel.NewToken())
	if len(paths) != 1 {
		t.Errorf("Expected 1 file under explicitly chosen hidden root, got %v", paths)
	}
}

func TestFileWalker_ExcludedRootIsWalked(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/proj/node_modules/x/index.js", "module.exports = 1")

	w := NewFileWalker(fs, DefaultPolicy())
	paths, _ := collect(w, []string{"/proj/node_modules"}, cancel.NewToken())
	if len(paths) != 1 {
		t.Errorf("Expected root to be walked even if its name is excluded, got %v", paths)
	}
}

func TestFileWalker_CustomExclude(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/r/keep/a.txt", "a")
	writeFile(t, fs, "/r/build/b.txt", "b")
	writeFile(t, fs, "/r/keep/build", "a file named like an excluded segment")

	w := NewFileWalker(fs, Policy{Exclude: []string{"build"}})
	paths, _ := collect(w, []string{"/r"}, cancel.NewToken())
	if len(paths) != 1 || paths[0] != "/r/keep/a.txt" {
		t.Errorf("Expected only /r/keep/a.txt, got %v", paths)
	}
}

func TestFileWalker_RecordFields(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/r/report.PDF", "12345")
	mod := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := fs.Chtimes("/r/report.PDF", mod, mod); err != nil {
		t.Fatalf("Chtimes() error = %v", err)
	}

	w := NewFileWalker(fs, DefaultPolicy())
	var got []internal.FileRecord
	w.WalkRoots([]string{"/r"}, cancel.NewToken(), nil, func(r internal.FileRecord) {
		got = append(got, r)
	})

	if len(got) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(got))
	}
	r := got[0]
	if r.Size != 5 {
		t.Errorf("Expected size 5, got %d", r.Size)
	}
	if r.Ext != "PDF" {
		t.Errorf("Expected ext PDF, got %s", r.Ext)
	}
	if !r.Modified.Equal(mod) {
		t.Errorf("Expected modified %v, got %v", mod, r.Modified)
	}
	if !r.Created.Equal(mod) {
		t.Errorf("Expected created time to fall back to modified time, got %v", r.Created)
	}
}

func TestFileWalker_OnDir(t *testing.T) {
	w := NewFileWalker(testTree(t), DefaultPolicy())

	var dirs []string
	w.WalkRoots([]string{"/data"}, cancel.NewToken(), func(label string) {
		dirs = append(dirs, label)
	}, func(internal.FileRecord) {})

	sort.Strings(dirs)
	want := []string{"data", "photos", "sub"}
	if len(dirs) != len(want) {
		t.Fatalf("Expected dirs %v, got %v", want, dirs)
	}
	for i := range want {
		if dirs[i] != want[i] {
			t.Errorf("Expected dir %s, got %s", want[i], dirs[i])
		}
	}
}

func TestFileWalker_CancelledBeforeStart(t *testing.T) {
	w := NewFileWalker(testTree(t), DefaultPolicy())
	tok := cancel.NewToken()
	tok.Cancel()

	paths, n := collect(w, []string{"/data"}, tok)
	if len(paths) != 0 {
		t.Errorf("Expected no files after cancellation, got %v", paths)
	}
	if n != 0 {
		t.Errorf("Expected no roots walked, got %d", n)
	}
}

func TestFileWalker_CancelMidWalk(t *testing.T) {
	w := NewFileWalker(testTree(t), DefaultPolicy())
	tok := cancel.NewToken()

	count := 0
	w.WalkRoots([]string{"/data", "/data"}, tok, nil, func(internal.FileRecord) {
		count++
		tok.Cancel()
	})

	if count != 1 {
		t.Errorf("Expected walk to stop after first file, got %d files", count)
	}
}

func TestFileWalker_SkipsSymlinks(t *testing.T) {
	tempDir := t.TempDir()

	filePath := filepath.Join(tempDir, "file.txt")
	if err := os.WriteFile(filePath, []byte("test content"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	subDir := filepath.Join(tempDir, "sub")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(filepath.Join(subDir, "inner.txt"), []byte("inner"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if err := os.Symlink(filePath, filepath.Join(tempDir, "link.txt")); err != nil {
		t.Skipf("Skipping symlink test: %v", err)
	}
	if err := os.Symlink(subDir, filepath.Join(tempDir, "linkdir")); err != nil {
		t.Skipf("Skipping symlink test: %v", err)
	}

	w := NewFileWalker(afero.NewOsFs(), DefaultPolicy())
	paths, _ := collect(w, []string{tempDir}, cancel.NewToken())

	if len(paths) != 2 {
		t.Errorf("Expected 2 regular files (symlinks skipped), got %v", paths)
	}
}

func TestIsBundle(t *testing.T) {
	w := NewFileWalker(afero.NewMemMapFs(), Policy{BundleExtensions: []string{"app", ".Framework"}})

	if !w.IsBundle("Safari.app") {
		t.Error("Expected Safari.app to be a bundle")
	}
	if !w.IsBundle("Foo.framework") {
		t.Error("Expected Foo.framework to be a bundle")
	}
	if w.IsBundle("notes.txt") {
		t.Error("notes.txt is not a bundle")
	}
}
