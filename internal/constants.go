package internal

const (
	// 报告数据库默认路径
	DefaultReportPath = "~/.dupsweep/reports.db"

	// 配置文件默认路径
	DefaultConfigPath = "~/.dupsweep/config.yaml"

	// 进度通道缓冲区大小
	DefaultBufferSize = 100

	// 参与去重的最小文件大小
	DefaultMinFileSize int64 = 1024

	// 部分哈希读取的前缀长度
	DefaultPartialHashSize = 4 * 1024

	// 完整哈希每次读取的块大小
	DefaultChunkSize = 64 * 1024

	// 大文件默认阈值
	DefaultLargeFileThreshold int64 = 100 * 1024 * 1024

	// 完整哈希默认算法
	DefaultHashAlgorithm = "sha256"
)

// DefaultExcludes 遍历时整棵剪枝的路径段
var DefaultExcludes = []string{
	".Trash",
	".git",
	"node_modules",
	".npm",
	"Library",
	".cache",
	".Spotlight-V100",
	".fseventsd",
}

// DefaultBundleExtensions 被视为不可拆分整体的目录后缀
var DefaultBundleExtensions = []string{
	".app",
	".bundle",
	".framework",
	".plugin",
	".kext",
	".photoslibrary",
	".fcpbundle",
	".logicx",
	".xcarchive",
	".rtfd",
}
