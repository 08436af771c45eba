package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/moyu-x/dupsweep/app"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "dupsweep",
	Short: "查找重复文件、大文件并统计目录占用",
	Long: `dupsweep 是一个用于清理磁盘空间的命令行工具。

主要功能:
- 按大小、部分哈希、完整哈希三级比较查找内容完全相同的文件
- 按创建时间和路径长度选出每组的原始文件
- 列出超过阈值的大文件
- 统计目录大小、子项占比和所在卷的使用情况
- 把多余的副本移入系统回收站，并可把扫描结果保存到 SQLite`,
	SilenceUsage: true,
}

// Execute 收到 SIGINT/SIGTERM 时取消正在进行的扫描，已得到的结果照常输出
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件路径（默认 $HOME/.dupsweep/config.yaml）")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "输出调试日志")
}

func setup() (*app.Env, error) {
	return app.Setup(cfgFile, verbose)
}
