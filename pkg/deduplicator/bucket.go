package deduplicator

import (
	"sort"

	"github.com/moyu-x/dupsweep/internal"
)

// sizeBuckets 按精确大小归类的候选文件
type sizeBuckets map[int64][]internal.FileRecord

func (b sizeBuckets) add(rec internal.FileRecord) {
	b[rec.Size] = append(b[rec.Size], rec)
}

type bucket struct {
	size  int64
	files []internal.FileRecord
}

// candidates 只保留至少两个成员的桶，大文件在前
func (b sizeBuckets) candidates() []bucket {
	var out []bucket
	for size, files := range b {
		if len(files) < 2 {
			continue
		}
		out = append(out, bucket{size: size, files: files})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].size > out[j].size
	})
	return out
}

func countFiles(buckets []bucket) int {
	n := 0
	for _, b := range buckets {
		n += len(b.files)
	}
	return n
}
