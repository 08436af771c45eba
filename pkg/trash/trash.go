package trash

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/moyu-x/dupsweep/pkg/logger"
)

// 同名冲突时先尝试的带序号名字数量，之后改用 UUID
const maxNumberedNames = 100

// Trasher 把单个文件移入回收站，只关心成功或失败
type Trasher interface {
	Trash(path string) error
}

// CrossDeviceError 回收站与文件不在同一文件系统，rename 返回 EXDEV。
// 这种情况直接失败，不做复制后删除。
type CrossDeviceError struct {
	Src string
	Dst string
	Err error
}

func (e *CrossDeviceError) Error() string {
	return fmt.Sprintf("跨盘移动失败（EXDEV）：%q -> %q：%v", e.Src, e.Dst, e.Err)
}

func (e *CrossDeviceError) Unwrap() error { return e.Err }

// IsCrossDevice 判断 err 是否为跨盘错误
func IsCrossDevice(err error) bool {
	var e *CrossDeviceError
	return errors.As(err, &e)
}

// Bin 基于 afero 的回收站。
// Info 为 true 时使用 freedesktop.org 布局（files/ 与 info/*.trashinfo），否则直接放入 Dir。
type Bin struct {
	fs   afero.Fs
	dir  string
	info bool
	now  func() time.Time
}

func NewBin(fs afero.Fs, dir string, info bool) *Bin {
	return &Bin{fs: fs, dir: dir, info: info, now: time.Now}
}

// DefaultBin 返回当前用户的回收站：macOS 为 ~/.Trash，其他平台为 $XDG_DATA_HOME/Trash
func DefaultBin() (*Bin, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("获取用户目录失败: %w", err)
	}

	if runtime.GOOS == "darwin" {
		return NewBin(afero.NewOsFs(), filepath.Join(home, ".Trash"), false), nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}
	return NewBin(afero.NewOsFs(), filepath.Join(dataHome, "Trash"), true), nil
}

func (b *Bin) Dir() string {
	return b.dir
}

func (b *Bin) filesDir() string {
	if b.info {
		return filepath.Join(b.dir, "files")
	}
	return b.dir
}

func (b *Bin) infoDir() string {
	return filepath.Join(b.dir, "info")
}

// Trash 把 path 移入回收站
func (b *Bin) Trash(path string) error {
	info, err := b.fs.Stat(path)
	if err != nil {
		return fmt.Errorf("无法访问文件: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("不是文件: %s", path)
	}

	if err := b.fs.MkdirAll(b.filesDir(), 0o700); err != nil {
		return fmt.Errorf("创建回收站目录失败: %w", err)
	}
	if b.info {
		if err := b.fs.MkdirAll(b.infoDir(), 0o700); err != nil {
			return fmt.Errorf("创建回收站目录失败: %w", err)
		}
	}

	name, err := b.freeName(filepath.Base(path))
	if err != nil {
		return err
	}

	var infoPath string
	if b.info {
		infoPath = filepath.Join(b.infoDir(), name+".trashinfo")
		if err := b.writeInfo(infoPath, path); err != nil {
			return err
		}
	}

	dst := filepath.Join(b.filesDir(), name)
	if err := b.fs.Rename(path, dst); err != nil {
		if infoPath != "" {
			_ = b.fs.Remove(infoPath)
		}
		if isEXDEV(err) {
			return &CrossDeviceError{Src: path, Dst: dst, Err: err}
		}
		return fmt.Errorf("移动到回收站失败: %w", err)
	}

	logger.Get().Debug().Msgf("已移入回收站: %s -> %s", path, dst)
	return nil
}

// freeName 找一个在 files/ 和 info/ 中都未被占用的名字
func (b *Bin) freeName(base string) (string, error) {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	candidate := base
	for i := 2; i <= maxNumberedNames+1; i++ {
		taken, err := b.taken(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s %d%s", stem, i, ext)
	}

	candidate = fmt.Sprintf("%s %s%s", stem, uuid.NewString(), ext)
	logger.Get().Debug().Msgf("回收站同名文件过多，使用随机名: %s", candidate)
	return candidate, nil
}

func (b *Bin) taken(name string) (bool, error) {
	exists, err := afero.Exists(b.fs, filepath.Join(b.filesDir(), name))
	if err != nil || exists {
		return exists, err
	}
	if !b.info {
		return false, nil
	}
	return afero.Exists(b.fs, filepath.Join(b.infoDir(), name+".trashinfo"))
}

func (b *Bin) writeInfo(infoPath, original string) error {
	abs, err := filepath.Abs(original)
	if err != nil {
		abs = original
	}

	content := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		(&url.URL{Path: filepath.ToSlash(abs)}).EscapedPath(),
		b.now().Format("2006-01-02T15:04:05"))

	f, err := b.fs.OpenFile(infoPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("创建 trashinfo 失败: %w", err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		_ = b.fs.Remove(infoPath)
		return fmt.Errorf("写入 trashinfo 失败: %w", err)
	}
	return f.Close()
}

// MoveAll 逐个移入回收站，单个失败不影响其余文件
func MoveAll(t Trasher, paths []string) (success, failed int) {
	for _, path := range paths {
		if err := t.Trash(path); err != nil {
			logger.Get().Warn().Err(err).Msgf("移入回收站失败: %s", path)
			failed++
			continue
		}
		success++
	}
	return success, failed
}
