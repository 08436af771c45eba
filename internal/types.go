package internal

import (
	"path/filepath"
	"strings"
	"time"
)

// 文件记录，遍历阶段产生，之后不再修改
type FileRecord struct {
	Path     string
	Size     int64
	Created  time.Time
	Modified time.Time
	Ext      string
}

// Name 返回文件名
func (r FileRecord) Name() string {
	return filepath.Base(r.Path)
}

// ExtOf 返回不带点的扩展名
func ExtOf(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}

// 重复组中的单个文件
type DuplicateFile struct {
	FileRecord
	IsOriginal bool
}

// 内容完全相同的一组文件
type DuplicateGroup struct {
	Digest   string
	Category string
	Files    []DuplicateFile
}

// TotalSize 组内所有文件的总大小
func (g DuplicateGroup) TotalSize() int64 {
	var total int64
	for _, f := range g.Files {
		total += f.Size
	}
	return total
}

// ReclaimableSize 删除所有非原始文件后可释放的空间
func (g DuplicateGroup) ReclaimableSize() int64 {
	var total int64
	for _, f := range g.Files {
		if !f.IsOriginal {
			total += f.Size
		}
	}
	return total
}

func (g DuplicateGroup) Count() int {
	return len(g.Files)
}

// Original 返回被标记为原始文件的成员
func (g DuplicateGroup) Original() (DuplicateFile, bool) {
	for _, f := range g.Files {
		if f.IsOriginal {
			return f, true
		}
	}
	return DuplicateFile{}, false
}

// 大文件扫描结果
type LargeFile struct {
	Path     string
	Size     int64
	Modified time.Time
	Ext      string
	Category string
}

func (f LargeFile) Name() string {
	return filepath.Base(f.Path)
}

// 磁盘占用明细中的一项
type DiskItem struct {
	Name       string
	Path       string
	Size       int64
	IsDir      bool
	Percentage float64
}
