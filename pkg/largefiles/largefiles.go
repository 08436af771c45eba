package largefiles

import (
	"context"
	"sort"
	"time"

	"github.com/moyu-x/dupsweep/internal"
	"github.com/moyu-x/dupsweep/pkg/cancel"
	"github.com/moyu-x/dupsweep/pkg/classifier"
	"github.com/moyu-x/dupsweep/pkg/logger"
	"github.com/moyu-x/dupsweep/pkg/progress"
	"github.com/moyu-x/dupsweep/pkg/scanner"
	"github.com/moyu-x/dupsweep/pkg/trash"
)

// Scanner 一次遍历找出不小于阈值的文件，不计算哈希
type Scanner struct {
	walker  *scanner.FileWalker
	trasher trash.Trasher
	sw      cancel.Switch
}

func NewScanner(walker *scanner.FileWalker, t trash.Trasher) *Scanner {
	return &Scanner{walker: walker, trasher: t}
}

// Cancel 取消正在进行的扫描；扫描开始前调用则下一次扫描立即返回
func (s *Scanner) Cancel() {
	s.sw.Cancel()
}

// Scan 返回 size >= threshold 的文件，按大小降序。被取消时返回已找到的部分结果。
func (s *Scanner) Scan(ctx context.Context, roots []string, threshold int64, onProgress progress.Func) []internal.LargeFile {
	tok, end := s.sw.Begin(ctx)
	defer end()

	start := time.Now()
	gate := progress.NewGate(onProgress)
	files := []internal.LargeFile{}

	s.walker.WalkRoots(roots, tok,
		func(label string) {
			gate.Label(label)
		},
		func(rec internal.FileRecord) {
			if rec.Size < threshold {
				return
			}
			files = append(files, internal.LargeFile{
				Path:     rec.Path,
				Size:     rec.Size,
				Modified: rec.Modified,
				Ext:      rec.Ext,
				Category: classifier.FromExtension(rec.Ext),
			})
		})

	sort.Slice(files, func(i, j int) bool {
		if files[i].Size != files[j].Size {
			return files[i].Size > files[j].Size
		}
		return files[i].Path < files[j].Path
	})

	if tok.Cancelled() {
		logger.Get().Info().Msgf("大文件扫描已取消，返回已找到的 %d 个文件", len(files))
	} else {
		logger.Get().Info().Msgf("大文件扫描完成，找到 %d 个文件，耗时: %v", len(files), time.Since(start))
	}
	return files
}

// MoveToTrash 逐个移入回收站，返回成功和失败的数量
func (s *Scanner) MoveToTrash(files []internal.LargeFile) (success, failed int) {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	if s.trasher == nil {
		return 0, len(paths)
	}
	return trash.MoveAll(s.trasher, paths)
}
