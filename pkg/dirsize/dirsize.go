package dirsize

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/moyu-x/dupsweep/internal"
	"github.com/moyu-x/dupsweep/pkg/cancel"
	"github.com/moyu-x/dupsweep/pkg/logger"
	"github.com/moyu-x/dupsweep/pkg/progress"
	"github.com/moyu-x/dupsweep/pkg/scanner"
)

// Aggregator 统计目录下所有普通文件的总大小，会进入 bundle 目录
type Aggregator struct {
	walker *scanner.FileWalker
	sw     cancel.Switch
}

func NewAggregator(walker *scanner.FileWalker) *Aggregator {
	return &Aggregator{walker: walker.WithDescendBundles()}
}

// Cancel 取消正在进行的统计，已累计的部分照常返回
func (a *Aggregator) Cancel() {
	a.sw.Cancel()
}

// Size 返回 path 的总大小。路径不存在或不可读时第二个返回值为 false，
// 与可访问的空目录（0, true）区分开。被取消时返回已累计的部分大小。
func (a *Aggregator) Size(ctx context.Context, path string, onProgress progress.Func) (int64, bool) {
	tok, end := a.sw.Begin(ctx)
	defer end()

	return a.size(path, tok, progress.NewGate(onProgress))
}

func (a *Aggregator) size(path string, tok *cancel.Token, gate *progress.Gate) (int64, bool) {
	info, err := a.walker.Fs().Stat(path)
	if err != nil {
		logger.Get().Debug().Err(err).Msgf("无法访问: %s", path)
		return 0, false
	}
	if info.Mode().IsRegular() {
		return info.Size(), true
	}

	// 先判断可读性，取消只影响累计结果，不会变成不可用
	dir, ok := a.walker.Accessible(path)
	if !ok {
		return 0, false
	}

	var total int64
	a.walker.WalkRoots([]string{dir}, tok,
		func(label string) {
			gate.Label(label)
		},
		func(rec internal.FileRecord) {
			total += rec.Size
		})
	return total, true
}

// Breakdown 列出 path 的直接子项及其大小，按大小降序，并计算占比。
// 隐藏项、被排除的名字和符号链接不列出；无法统计的子目录被略过。
func (a *Aggregator) Breakdown(ctx context.Context, path string, onProgress progress.Func) ([]internal.DiskItem, bool) {
	tok, end := a.sw.Begin(ctx)
	defer end()

	fs := a.walker.Fs()
	if info, err := fs.Stat(path); err != nil || !info.IsDir() {
		return nil, false
	}
	entries, err := afero.ReadDir(fs, path)
	if err != nil {
		logger.Get().Debug().Err(err).Msgf("读取目录失败: %s", path)
		return nil, false
	}

	gate := progress.NewGate(onProgress)
	items := []internal.DiskItem{}
	var total int64
	for _, entry := range entries {
		if tok.Cancelled() {
			break
		}
		if a.walker.Skip(entry.Name()) || entry.Mode()&os.ModeSymlink != 0 {
			continue
		}

		child := filepath.Join(path, entry.Name())
		var size int64
		switch {
		case entry.IsDir():
			s, ok := a.size(child, tok, gate)
			if !ok {
				continue
			}
			size = s
		case entry.Mode().IsRegular():
			size = entry.Size()
		default:
			continue
		}

		total += size
		items = append(items, internal.DiskItem{
			Name:  entry.Name(),
			Path:  child,
			Size:  size,
			IsDir: entry.IsDir(),
		})
	}

	for i := range items {
		if total > 0 {
			items[i].Percentage = float64(items[i].Size) / float64(total) * 100
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Size != items[j].Size {
			return items[i].Size > items[j].Size
		}
		return items[i].Name < items[j].Name
	})
	return items, true
}
