package scanner

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/moyu-x/dupsweep/internal"
	"github.com/moyu-x/dupsweep/pkg/cancel"
	"github.com/moyu-x/dupsweep/pkg/logger"
)

var errCancelled = errors.New("scan cancelled")

// Policy 遍历的排除规则
type Policy struct {
	// Exclude 作为完整路径段出现时整棵子树被剪枝
	Exclude []string
	// BundleExtensions 以这些后缀结尾的目录视为不可拆分的整体
	BundleExtensions []string
	// DescendBundles 目录大小统计时需要进入 bundle 目录
	DescendBundles bool
}

// DefaultPolicy 使用内置的排除列表
func DefaultPolicy() Policy {
	return Policy{
		Exclude:          internal.DefaultExcludes,
		BundleExtensions: internal.DefaultBundleExtensions,
	}
}

type FileWalker struct {
	fs             afero.Fs
	exclude        map[string]bool
	bundles        map[string]bool
	descendBundles bool
}

func NewFileWalker(fs afero.Fs, policy Policy) *FileWalker {
	exclude := make(map[string]bool)
	for _, name := range policy.Exclude {
		exclude[name] = true
	}
	bundles := make(map[string]bool)
	for _, ext := range policy.BundleExtensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		bundles[ext] = true
	}

	return &FileWalker{
		fs:             fs,
		exclude:        exclude,
		bundles:        bundles,
		descendBundles: policy.DescendBundles,
	}
}

// Fs 返回遍历使用的文件系统
func (w *FileWalker) Fs() afero.Fs {
	return w.fs
}

// WithDescendBundles 返回进入 bundle 目录的副本，其余规则不变
func (w *FileWalker) WithDescendBundles() *FileWalker {
	cp := *w
	cp.descendBundles = true
	return &cp
}

// IsHidden 以点开头的名字视为隐藏
func IsHidden(name string) bool {
	return len(name) > 0 && name[0] == '.'
}

// IsBundle 判断目录名是否带有 bundle 后缀
func (w *FileWalker) IsBundle(name string) bool {
	return w.bundles[strings.ToLower(filepath.Ext(name))]
}

// Skip 判断 root 之下的条目是否应被跳过（目录则整棵剪枝）
func (w *FileWalker) Skip(name string) bool {
	return IsHidden(name) || w.exclude[name]
}

// WalkRoots 依次遍历每个根目录，对每个普通文件调用 onFile。
// 不存在或不是目录的根会被静默跳过；返回实际遍历过的根目录数量。
// 取消后立即停止，已经交付的记录保持有效。
func (w *FileWalker) WalkRoots(roots []string, tok *cancel.Token, onDir func(label string), onFile func(internal.FileRecord)) int {
	accessible := 0
	for _, root := range roots {
		if tok.Cancelled() {
			break
		}

		dir, ok := w.openRoot(root)
		if !ok {
			continue
		}
		accessible++

		if err := w.Walk(dir, tok, onDir, onFile); errors.Is(err, errCancelled) {
			logger.Get().Info().Msgf("扫描已取消: %s", dir)
			break
		}
	}
	return accessible
}

// Accessible 判断 root 是否为可读目录，返回解析后的路径
func (w *FileWalker) Accessible(root string) (string, bool) {
	return w.openRoot(root)
}

// openRoot 确认根目录存在且可读。OsFs 上的符号链接根目录会被解析为真实路径。
func (w *FileWalker) openRoot(root string) (string, bool) {
	if _, isOs := w.fs.(*afero.OsFs); isOs {
		if resolved, err := filepath.EvalSymlinks(root); err == nil {
			root = resolved
		}
	}

	info, err := w.fs.Stat(root)
	if err != nil || !info.IsDir() {
		logger.Get().Debug().Err(err).Msgf("跳过不可访问的根目录: %s", root)
		return root, false
	}

	f, err := w.fs.Open(root)
	if err != nil {
		logger.Get().Debug().Err(err).Msgf("跳过不可读的根目录: %s", root)
		return root, false
	}
	f.Close()
	return root, true
}

// Walk 遍历单个根目录。只在取消时返回 errCancelled，其他错误都被吞掉。
func (w *FileWalker) Walk(root string, tok *cancel.Token, onDir func(label string), onFile func(internal.FileRecord)) error {
	root = filepath.Clean(root)

	return afero.Walk(w.fs, root, func(path string, info os.FileInfo, err error) error {
		if tok.Cancelled() {
			return errCancelled
		}

		if err != nil {
			// 权限不足或条目在扫描中消失，跳过即可
			logger.Get().Debug().Err(err).Msgf("无法访问: %s", path)
			return nil
		}

		if path != root && w.Skip(info.Name()) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			if path != root && !w.descendBundles && w.IsBundle(info.Name()) {
				return filepath.SkipDir
			}
			if onDir != nil {
				onDir(info.Name())
			}
			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		onFile(internal.FileRecord{
			Path:     path,
			Size:     info.Size(),
			Created:  creationTime(path, info),
			Modified: info.ModTime(),
			Ext:      internal.ExtOf(path),
		})

		if tok.Cancelled() {
			return errCancelled
		}
		return nil
	})
}
