package app

import (
	"context"
	"fmt"

	"github.com/moyu-x/dupsweep/internal"
	"github.com/moyu-x/dupsweep/pkg/classifier"
	"github.com/moyu-x/dupsweep/pkg/largefiles"
	"github.com/moyu-x/dupsweep/pkg/logger"
	"github.com/moyu-x/dupsweep/pkg/progress"
	"github.com/moyu-x/dupsweep/pkg/report"
)

type LargeOptions struct {
	Roots []string
	// Threshold 小于等于 0 时使用配置值
	Threshold int64
	Category  string
	Trash     bool
	Report    bool
}

type LargeResult struct {
	Files     []internal.LargeFile
	Threshold int64
	TotalSize int64
	Trashed   int
	Failed    int
	ScanID    string
}

func RunLarge(ctx context.Context, env *Env, opts *LargeOptions, onProgress progress.Func) (*LargeResult, error) {
	if !classifier.Valid(defaultCategory(opts.Category)) {
		return nil, fmt.Errorf("未知的文件类别: %s", opts.Category)
	}

	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = env.Cfg.Large.Threshold
	}
	logger.Get().Info().Msgf("大文件阈值: %d bytes", threshold)

	s := largefiles.NewScanner(env.Walker, env.Trasher)
	files := s.Scan(ctx, opts.Roots, threshold, onProgress)

	filtered := files[:0:0]
	for _, f := range files {
		if classifier.Match(opts.Category, f.Category) {
			filtered = append(filtered, f)
		}
	}

	result := &LargeResult{Files: filtered, Threshold: threshold}
	for _, f := range filtered {
		result.TotalSize += f.Size
	}

	if opts.Report && ctx.Err() == nil {
		id, err := saveReport(env, func(st *report.Store) (string, error) {
			return st.SaveLargeFiles(opts.Roots, filtered)
		})
		if err != nil {
			return nil, err
		}
		result.ScanID = id
	}

	if opts.Trash && len(filtered) > 0 {
		result.Trashed, result.Failed = s.MoveToTrash(filtered)
		logger.Get().Info().Msgf("移入回收站: 成功 %d 个，失败 %d 个", result.Trashed, result.Failed)
	}

	return result, nil
}
