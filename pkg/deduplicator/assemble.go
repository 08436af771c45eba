package deduplicator

import (
	"sort"

	"github.com/moyu-x/dupsweep/internal"
)

// Match 完整哈希相同的一组文件，尚未选出原始文件
type Match struct {
	Digest   string
	Category string
	Files    []internal.FileRecord
}

// Assemble 为每组选出原始文件并排序。
// 组内按创建时间升序，相同时路径短者在前，再按路径字典序；第一个为原始文件。
// 组之间按可释放空间降序，相同时按摘要排序。
func Assemble(matches []Match) []internal.DuplicateGroup {
	groups := make([]internal.DuplicateGroup, 0, len(matches))
	for _, m := range matches {
		if len(m.Files) < 2 {
			continue
		}

		files := append([]internal.FileRecord(nil), m.Files...)
		sort.Slice(files, func(i, j int) bool {
			a, b := files[i], files[j]
			if !a.Created.Equal(b.Created) {
				return a.Created.Before(b.Created)
			}
			if len(a.Path) != len(b.Path) {
				return len(a.Path) < len(b.Path)
			}
			return a.Path < b.Path
		})

		members := make([]internal.DuplicateFile, len(files))
		for i, f := range files {
			members[i] = internal.DuplicateFile{FileRecord: f, IsOriginal: i == 0}
		}
		groups = append(groups, internal.DuplicateGroup{
			Digest:   m.Digest,
			Category: m.Category,
			Files:    members,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		ri, rj := groups[i].ReclaimableSize(), groups[j].ReclaimableSize()
		if ri != rj {
			return ri > rj
		}
		return groups[i].Digest < groups[j].Digest
	})
	return groups
}
