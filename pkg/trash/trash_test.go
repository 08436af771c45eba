package trash

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
)

func newTestBin(t *testing.T, fs afero.Fs, info bool) *Bin {
	t.Helper()
	b := NewBin(fs, "/home/u/.local/share/Trash", info)
	b.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.Local) }
	return b
}

func TestBin_TrashWithInfo(t *testing.T) {
	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, "/data/my file.txt", []byte("x"), 0644)

	b := newTestBin(t, fs, true)
	if err := b.Trash("/data/my file.txt"); err != nil {
		t.Fatalf("Trash() error = %v", err)
	}

	if exists, _ := afero.Exists(fs, "/data/my file.txt"); exists {
		t.Error("Source file should be gone")
	}
	if exists, _ := afero.Exists(fs, filepath.Join(b.Dir(), "files", "my file.txt")); !exists {
		t.Error("File should be in files/")
	}

	data, err := afero.ReadFile(fs, filepath.Join(b.Dir(), "info", "my file.txt.trashinfo"))
	if err != nil {
		t.Fatalf("ReadFile(trashinfo) error = %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "[Trash Info]\n") {
		t.Errorf("Expected [Trash Info] header, got %q", content)
	}
	if !strings.Contains(content, "Path=/data/my%20file.txt\n") {
		t.Errorf("Expected escaped path, got %q", content)
	}
	if !strings.Contains(content, "DeletionDate=2024-05-01T12:30:00\n") {
		t.Errorf("Expected deletion date, got %q", content)
	}
}

func TestBin_TrashPlain(t *testing.T) {
	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, "/data/a.txt", []byte("x"), 0644)

	b := NewBin(fs, "/Users/u/.Trash", false)
	if err := b.Trash("/data/a.txt"); err != nil {
		t.Fatalf("Trash() error = %v", err)
	}
	if exists, _ := afero.Exists(fs, "/Users/u/.Trash/a.txt"); !exists {
		t.Error("File should be directly in the trash directory")
	}
	if exists, _ := afero.DirExists(fs, "/Users/u/.Trash/info"); exists {
		t.Error("Plain bin should not create info/")
	}
}

func TestBin_NameCollision(t *testing.T) {
	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, "/a/report.pdf", []byte("1"), 0644)
	afero.WriteFile(fs, "/b/report.pdf", []byte("2"), 0644)
	afero.WriteFile(fs, "/c/report.pdf", []byte("3"), 0644)

	b := newTestBin(t, fs, true)
	for _, p := range []string{"/a/report.pdf", "/b/report.pdf", "/c/report.pdf"} {
		if err := b.Trash(p); err != nil {
			t.Fatalf("Trash(%s) error = %v", p, err)
		}
	}

	for name, want := range map[string]string{"report.pdf": "1", "report 2.pdf": "2", "report 3.pdf": "3"} {
		data, err := afero.ReadFile(fs, filepath.Join(b.Dir(), "files", name))
		if err != nil {
			t.Errorf("Expected %s in trash: %v", name, err)
			continue
		}
		if string(data) != want {
			t.Errorf("Expected %s to hold %q, got %q", name, want, data)
		}
		if exists, _ := afero.Exists(fs, filepath.Join(b.Dir(), "info", name+".trashinfo")); !exists {
			t.Errorf("Expected trashinfo for %s", name)
		}
	}
}

func TestBin_ManyCollisionsUseUUID(t *testing.T) {
	fs := afero.NewMemMapFs()
	b := newTestBin(t, fs, false)
	afero.WriteFile(fs, filepath.Join(b.Dir(), "x.bin"), nil, 0644)
	for i := 2; i <= maxNumberedNames+1; i++ {
		afero.WriteFile(fs, filepath.Join(b.Dir(), "x "+strconv.Itoa(i)+".bin"), nil, 0644)
	}

	name, err := b.freeName("x.bin")
	if err != nil {
		t.Fatalf("freeName() error = %v", err)
	}
	if len(name) != len("x .bin")+36 {
		t.Errorf("Expected UUID-suffixed name, got %q", name)
	}
}

func TestBin_MissingFile(t *testing.T) {
	b := newTestBin(t, afero.NewMemMapFs(), true)
	if err := b.Trash("/nope"); err == nil {
		t.Error("Expected error for missing file")
	}
}

type failingTrasher struct {
	fail map[string]bool
	got  []string
}

func (f *failingTrasher) Trash(path string) error {
	f.got = append(f.got, path)
	if f.fail[path] {
		return errors.New("denied")
	}
	return nil
}

func TestMoveAll_ContinuesAfterFailure(t *testing.T) {
	tr := &failingTrasher{fail: map[string]bool{"/b": true}}

	success, failed := MoveAll(tr, []string{"/a", "/b", "/c"})
	if success != 2 || failed != 1 {
		t.Errorf("Expected 2 success and 1 failed, got %d and %d", success, failed)
	}
	if len(tr.got) != 3 {
		t.Errorf("Expected every path to be attempted, got %v", tr.got)
	}
}
