package internal

// Selection 记录调用方对重复文件的勾选状态，扫描结果本身不保存勾选信息
type Selection struct {
	selected map[string]bool
}

// NewSelection 默认勾选所有非原始文件，原始文件不勾选
func NewSelection(groups []DuplicateGroup) *Selection {
	s := &Selection{selected: make(map[string]bool)}
	for _, g := range groups {
		for _, f := range g.Files {
			s.selected[f.Path] = !f.IsOriginal
		}
	}
	return s
}

func (s *Selection) IsSelected(path string) bool {
	return s.selected[path]
}

func (s *Selection) Set(path string, selected bool) {
	s.selected[path] = selected
}

// Toggle 切换勾选状态并返回新状态
func (s *Selection) Toggle(path string) bool {
	s.selected[path] = !s.selected[path]
	return s.selected[path]
}

// Files 按组顺序返回被勾选的文件
func (s *Selection) Files(groups []DuplicateGroup) []DuplicateFile {
	var files []DuplicateFile
	for _, g := range groups {
		for _, f := range g.Files {
			if s.selected[f.Path] {
				files = append(files, f)
			}
		}
	}
	return files
}

// Size 被勾选文件的总大小
func (s *Selection) Size(groups []DuplicateGroup) int64 {
	var total int64
	for _, f := range s.Files(groups) {
		total += f.Size
	}
	return total
}
