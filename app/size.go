package app

import (
	"context"

	"github.com/moyu-x/dupsweep/internal"
	"github.com/moyu-x/dupsweep/pkg/dirsize"
	"github.com/moyu-x/dupsweep/pkg/progress"
)

type SizeResult struct {
	Path      string
	Size      int64
	Available bool
	Items     []internal.DiskItem
}

// RunSize 统计目录大小；breakdown 为 true 时同时列出直接子项
func RunSize(ctx context.Context, env *Env, path string, breakdown bool, onProgress progress.Func) *SizeResult {
	agg := dirsize.NewAggregator(env.Walker)
	result := &SizeResult{Path: path}

	if breakdown {
		items, ok := agg.Breakdown(ctx, path, onProgress)
		if ok {
			result.Available = true
			result.Items = items
			for _, item := range items {
				result.Size += item.Size
			}
			return result
		}
	}

	result.Size, result.Available = agg.Size(ctx, path, onProgress)
	return result
}

// RunUsage 返回 path 所在卷的容量信息
func RunUsage(path string) (dirsize.VolumeUsage, error) {
	return dirsize.Volume(path)
}
