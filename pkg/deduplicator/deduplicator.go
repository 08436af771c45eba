package deduplicator

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/moyu-x/dupsweep/internal"
	"github.com/moyu-x/dupsweep/pkg/cancel"
	"github.com/moyu-x/dupsweep/pkg/classifier"
	"github.com/moyu-x/dupsweep/pkg/hasher"
	"github.com/moyu-x/dupsweep/pkg/logger"
	"github.com/moyu-x/dupsweep/pkg/progress"
	"github.com/moyu-x/dupsweep/pkg/scanner"
	"github.com/moyu-x/dupsweep/pkg/trash"
)

type Options struct {
	// MinFileSize 小于该大小的文件在遍历时直接忽略
	MinFileSize int64
	// Workers 并发处理大小桶的数量，0 表示 CPU 核数
	Workers int
}

// Finder 查找内容完全相同的文件
type Finder struct {
	walker  *scanner.FileWalker
	hasher  *hasher.Hasher
	trasher trash.Trasher
	opts    Options
	sw      cancel.Switch
}

func NewFinder(walker *scanner.FileWalker, h *hasher.Hasher, t trash.Trasher, opts Options) *Finder {
	if opts.MinFileSize < 0 {
		opts.MinFileSize = 0
	}
	return &Finder{
		walker:  walker,
		hasher:  h,
		trasher: t,
		opts:    opts,
	}
}

// Cancel 取消正在进行的扫描；扫描开始前调用则下一次扫描立即返回
func (f *Finder) Cancel() {
	f.sw.Cancel()
}

// Scan 遍历 roots 并返回重复文件组。取消或没有可访问的根目录时返回空结果。
func (f *Finder) Scan(ctx context.Context, roots []string, onProgress progress.Func) []internal.DuplicateGroup {
	tok, end := f.sw.Begin(ctx)
	defer end()

	start := time.Now()
	gate := progress.NewGate(onProgress)
	empty := []internal.DuplicateGroup{}

	buckets := sizeBuckets{}
	collected := 0
	accessible := 0
	for i, root := range roots {
		base := 0.4 * float64(i) / float64(len(roots))
		accessible += f.walker.WalkRoots([]string{root}, tok,
			func(label string) {
				gate.Report(progress.PhaseCollecting, label, base)
			},
			func(rec internal.FileRecord) {
				if rec.Size < f.opts.MinFileSize {
					return
				}
				buckets.add(rec)
				collected++
			})
	}

	if tok.Cancelled() {
		logger.Get().Info().Msg("重复文件扫描已取消")
		return empty
	}
	if accessible == 0 {
		logger.Get().Warn().Msg("没有可访问的根目录")
		return empty
	}

	candidates := buckets.candidates()
	// 每个文件计两步：部分哈希和完整哈希
	total := 2 * countFiles(candidates)
	logger.Get().Info().Msgf("文件收集完成，共 %d 个文件，%d 个大小桶需要比较", collected, len(candidates))
	gate.Report(progress.PhaseHashing, "", 0.5)

	matches, ok := f.hashBuckets(candidates, total, tok, gate)
	if !ok {
		logger.Get().Info().Msg("重复文件扫描已取消")
		return empty
	}

	gate.Report(progress.PhaseAssembling, "", 0.95)
	groups := Assemble(matches)
	gate.Report(progress.PhaseDone, "", 1)

	logger.Get().Info().Msgf("扫描完成，发现 %d 组重复文件，耗时: %v", len(groups), time.Since(start))
	return groups
}

// hashBuckets 在协程池中并发处理各个大小桶，被取消时返回 false
func (f *Finder) hashBuckets(candidates []bucket, total int, tok *cancel.Token, gate *progress.Gate) ([]Match, bool) {
	pool, err := hasher.NewPool(f.opts.Workers)
	if err != nil {
		logger.Get().Error().Err(err).Msg("创建哈希计算池失败")
		return nil, false
	}
	defer pool.Close()

	var (
		mu      sync.Mutex
		matches []Match
		done    atomic.Int64
	)
	fraction := func(n int64) float64 {
		return 0.5 + 0.45*float64(n)/float64(total)
	}
	steps := stepFuncs{
		// 读取前报告，标签为正在计算哈希的文件
		start: func(path string) {
			gate.Report(progress.PhaseHashing, filepath.Base(path), fraction(done.Load()))
		},
		finish: func(n int) {
			gate.Report(progress.PhaseHashing, "", fraction(done.Add(int64(n))))
		},
	}

	for _, b := range candidates {
		pool.Submit(func() {
			found, ok := f.hashBucket(b, tok, steps)
			if !ok {
				return
			}
			mu.Lock()
			matches = append(matches, found...)
			mu.Unlock()
		})
	}
	pool.Wait()

	if tok.Cancelled() {
		return nil, false
	}
	return matches, true
}

// stepFuncs 报告哈希进度：start 在读取文件前调用，finish 记录完成（或跳过）的步数
type stepFuncs struct {
	start  func(path string)
	finish func(n int)
}

type partialEntry struct {
	rec  internal.FileRecord
	head []byte
}

// hashBucket 先按部分哈希分组，再对仍有多个成员的子桶计算完整哈希
func (f *Finder) hashBucket(b bucket, tok *cancel.Token, steps stepFuncs) ([]Match, bool) {
	partials := make(map[uint64][]partialEntry)
	for _, rec := range b.files {
		if tok.Cancelled() {
			return nil, false
		}
		steps.start(rec.Path)
		sum, head, err := f.hasher.Partial(rec.Path)
		if err != nil {
			// 读取失败的文件不会再计算完整哈希
			steps.finish(2)
			logger.Get().Debug().Err(err).Msgf("读取文件失败，跳过: %s", rec.Path)
			continue
		}
		steps.finish(1)
		partials[sum] = append(partials[sum], partialEntry{rec: rec, head: head})
	}

	var out []Match
	for _, entries := range partials {
		if len(entries) < 2 {
			steps.finish(len(entries))
			continue
		}

		fulls := make(map[string][]partialEntry)
		for _, e := range entries {
			if tok.Cancelled() {
				return nil, false
			}
			steps.start(e.rec.Path)
			digest, err := f.hasher.Full(e.rec.Path, tok)
			steps.finish(1)
			if err != nil {
				if tok.Cancelled() {
					return nil, false
				}
				logger.Get().Debug().Err(err).Msgf("计算完整哈希失败，跳过: %s", e.rec.Path)
				continue
			}
			fulls[digest] = append(fulls[digest], e)
		}

		for digest, same := range fulls {
			if len(same) < 2 {
				continue
			}
			files := make([]internal.FileRecord, len(same))
			for i, e := range same {
				files[i] = e.rec
			}
			out = append(out, Match{
				Digest:   digest,
				Category: classifier.Detect(same[0].rec.Ext, same[0].head),
				Files:    files,
			})
		}
	}
	return out, true
}

// MoveToTrash 逐个移入回收站，返回成功和失败的数量
func (f *Finder) MoveToTrash(files []internal.DuplicateFile) (success, failed int) {
	paths := make([]string, len(files))
	for i, file := range files {
		paths[i] = file.Path
	}
	if f.trasher == nil {
		return 0, len(paths)
	}
	return trash.MoveAll(f.trasher, paths)
}
