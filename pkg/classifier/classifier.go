package classifier

import (
	"strings"

	"github.com/h2non/filetype"
)

const (
	All       = "all"
	Images    = "images"
	Videos    = "videos"
	Audio     = "audio"
	Documents = "documents"
	Archives  = "archives"
	Other     = "other"
)

// Categories 所有可用于过滤的类别，All 在最前
var Categories = []string{All, Images, Videos, Audio, Documents, Archives, Other}

var extCategories = map[string]string{}

func init() {
	register(Images, "jpg", "jpeg", "png", "gif", "bmp", "tiff", "heic", "webp", "svg", "ico", "raw", "cr2", "nef", "psd")
	register(Videos, "mp4", "mov", "avi", "mkv", "wmv", "flv", "webm", "m4v", "mpeg", "mpg", "3gp")
	register(Audio, "mp3", "wav", "flac", "aac", "m4a", "wma", "ogg", "aiff", "alac")
	register(Documents, "pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx", "txt", "rtf", "pages", "numbers", "key", "odt", "ods", "odp")
	register(Archives, "zip", "rar", "7z", "tar", "gz", "bz2", "xz", "dmg", "iso", "pkg")
}

func register(category string, exts ...string) {
	for _, ext := range exts {
		extCategories[ext] = category
	}
}

// FromExtension 按扩展名（可带点，不区分大小写）判断类别
func FromExtension(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if c, ok := extCategories[ext]; ok {
		return c
	}
	return Other
}

// FromContent 根据文件头判断类别，head 至少需要 262 字节才能识别全部类型
func FromContent(head []byte) string {
	switch {
	case len(head) == 0:
		return Other
	case filetype.IsImage(head):
		return Images
	case filetype.IsVideo(head):
		return Videos
	case filetype.IsAudio(head):
		return Audio
	case filetype.IsDocument(head):
		return Documents
	case filetype.IsArchive(head):
		return Archives
	default:
		return Other
	}
}

// Detect 先看扩展名，无法判断时再看文件头
func Detect(ext string, head []byte) string {
	if c := FromExtension(ext); c != Other {
		return c
	}
	return FromContent(head)
}

// Valid 判断过滤参数是否为已知类别
func Valid(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Match category 为 All 或空时匹配任何类别
func Match(filter, category string) bool {
	return filter == "" || filter == All || filter == category
}
