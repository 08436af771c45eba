package app

import (
	"context"
	"fmt"

	"github.com/moyu-x/dupsweep/internal"
	"github.com/moyu-x/dupsweep/pkg/classifier"
	"github.com/moyu-x/dupsweep/pkg/deduplicator"
	"github.com/moyu-x/dupsweep/pkg/logger"
	"github.com/moyu-x/dupsweep/pkg/progress"
	"github.com/moyu-x/dupsweep/pkg/report"
)

type DupesOptions struct {
	Roots []string
	// MinFileSize 小于 0 时使用配置值
	MinFileSize int64
	// Workers 为 0 时使用配置值
	Workers   int
	Algorithm string
	Category  string
	Trash     bool
	Report    bool
}

type DupesResult struct {
	Groups      []internal.DuplicateGroup
	Reclaimable int64
	Trashed     int
	Failed      int
	ScanID      string
}

// RunDupes 查找重复文件，按需过滤类别、把非原始文件移入回收站并保存报告
func RunDupes(ctx context.Context, env *Env, opts *DupesOptions, onProgress progress.Func) (*DupesResult, error) {
	if !classifier.Valid(defaultCategory(opts.Category)) {
		return nil, fmt.Errorf("未知的文件类别: %s", opts.Category)
	}

	h, err := env.newHasher(opts.Algorithm)
	if err != nil {
		return nil, err
	}

	minSize := opts.MinFileSize
	if minSize < 0 {
		minSize = env.Cfg.Dedup.MinFileSize
	}
	workers := opts.Workers
	if workers == 0 {
		workers = env.Cfg.Dedup.Workers
	}

	logger.Get().Info().Msgf("最小文件大小: %d bytes，哈希算法: %s", minSize, h.Algorithm())

	finder := deduplicator.NewFinder(env.Walker, h, env.Trasher, deduplicator.Options{
		MinFileSize: minSize,
		Workers:     workers,
	})
	groups := finder.Scan(ctx, opts.Roots, onProgress)

	filtered := groups[:0:0]
	for _, g := range groups {
		if classifier.Match(opts.Category, g.Category) {
			filtered = append(filtered, g)
		}
	}

	result := &DupesResult{Groups: filtered}
	for _, g := range filtered {
		result.Reclaimable += g.ReclaimableSize()
	}

	if opts.Report && ctx.Err() == nil {
		id, err := saveReport(env, func(s *report.Store) (string, error) {
			return s.SaveDuplicates(opts.Roots, filtered)
		})
		if err != nil {
			return nil, err
		}
		result.ScanID = id
	}

	if opts.Trash && len(filtered) > 0 {
		sel := internal.NewSelection(filtered)
		result.Trashed, result.Failed = finder.MoveToTrash(sel.Files(filtered))
		logger.Get().Info().Msgf("移入回收站: 成功 %d 个，失败 %d 个", result.Trashed, result.Failed)
	}

	return result, nil
}

func defaultCategory(c string) string {
	if c == "" {
		return classifier.All
	}
	return c
}

func saveReport(env *Env, save func(*report.Store) (string, error)) (string, error) {
	store, err := report.Open(env.Cfg.Report.Path)
	if err != nil {
		return "", err
	}
	defer store.Close()
	return save(store)
}
