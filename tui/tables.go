package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/dustin/go-humanize"

	"github.com/moyu-x/dupsweep/internal"
)

// DuplicateResult 每个成员一行，原始文件用 ★ 标出
func DuplicateResult(groups []internal.DuplicateGroup) Result {
	r := Result{
		Columns: []table.Column{
			{Title: "组", Width: 4},
			{Title: "", Width: 2},
			{Title: "大小", Width: 10},
			{Title: "类别", Width: 10},
			{Title: "路径", Width: 60},
		},
	}

	var reclaimable int64
	for i, g := range groups {
		reclaimable += g.ReclaimableSize()
		for _, f := range g.Files {
			mark := ""
			if f.IsOriginal {
				mark = "★"
			}
			r.Rows = append(r.Rows, table.Row{
				strconv.Itoa(i + 1),
				mark,
				humanize.IBytes(uint64(f.Size)),
				g.Category,
				f.Path,
			})
		}
	}

	r.Summary = fmt.Sprintf("重复文件组：%d\n可释放空间：%s", len(groups), humanize.IBytes(uint64(reclaimable)))
	return r
}

func LargeFileResult(files []internal.LargeFile) Result {
	r := Result{
		Columns: []table.Column{
			{Title: "大小", Width: 10},
			{Title: "类别", Width: 10},
			{Title: "修改时间", Width: 16},
			{Title: "路径", Width: 60},
		},
	}

	var total int64
	for _, f := range files {
		total += f.Size
		r.Rows = append(r.Rows, table.Row{
			humanize.IBytes(uint64(f.Size)),
			f.Category,
			f.Modified.Format("2006-01-02 15:04"),
			f.Path,
		})
	}

	r.Summary = fmt.Sprintf("大文件数：%d\n总大小：%s", len(files), humanize.IBytes(uint64(total)))
	return r
}

func BreakdownResult(path string, items []internal.DiskItem, available bool) Result {
	if !available {
		return Result{Summary: fmt.Sprintf("%s：不可访问", path)}
	}

	r := Result{
		Columns: []table.Column{
			{Title: "大小", Width: 10},
			{Title: "占比", Width: 7},
			{Title: "名称", Width: 50},
		},
	}

	var total int64
	for _, item := range items {
		total += item.Size
		name := item.Name
		if item.IsDir {
			name += "/"
		}
		r.Rows = append(r.Rows, table.Row{
			humanize.IBytes(uint64(item.Size)),
			fmt.Sprintf("%.1f%%", item.Percentage),
			name,
		})
	}

	r.Summary = fmt.Sprintf("%s\n总大小：%s", path, humanize.IBytes(uint64(total)))
	return r
}
