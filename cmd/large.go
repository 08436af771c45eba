package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moyu-x/dupsweep/app"
	"github.com/moyu-x/dupsweep/pkg/progress"
	"github.com/moyu-x/dupsweep/tui"
)

var largeCmd = &cobra.Command{
	Use:   "large [directories...]",
	Short: "列出超过阈值的大文件",
	Long: `遍历指定目录，列出大小不小于阈值的文件，按大小降序排列。
按 Ctrl+C 取消时输出已经找到的文件。
` + rootRulesNote,
	RunE: runLarge,
}

func runLarge(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}
	roots, err := env.Roots(args)
	if err != nil {
		return err
	}

	thresholdStr, _ := cmd.Flags().GetString("threshold")
	category, _ := cmd.Flags().GetString("category")
	moveToTrash, _ := cmd.Flags().GetBool("trash")
	saveReport, _ := cmd.Flags().GetBool("report")
	asJSON, _ := cmd.Flags().GetBool("json")
	useTUI, _ := cmd.Flags().GetBool("tui")

	threshold, err := sizeFlag(thresholdStr, 0)
	if err != nil {
		return err
	}

	opts := &app.LargeOptions{
		Roots:     roots,
		Threshold: threshold,
		Category:  category,
		Trash:     moveToTrash,
		Report:    saveReport,
	}

	if useTUI {
		return tui.Run(cmd.Context(), tui.Job{
			Title: "正在查找大文件",
			Run: func(ctx context.Context, onProgress progress.Func) (tui.Result, error) {
				res, err := app.RunLarge(ctx, env, opts, onProgress)
				if err != nil {
					return tui.Result{}, err
				}
				return tui.LargeFileResult(res.Files), nil
			},
		})
	}

	res, err := app.RunLarge(cmd.Context(), env, opts, nil)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return printJSON(out, res)
	}

	for _, f := range res.Files {
		fmt.Fprintf(out, "%s  %s  %s\n",
			sizeStyle.Render(bytesOf(f.Size)),
			faintStyle.Render(f.Modified.Format("2006-01-02")),
			f.Path)
	}
	fmt.Fprintf(out, "\n不小于 %s 的文件: %d 个，共 %s\n", bytesOf(res.Threshold), len(res.Files), bytesOf(res.TotalSize))
	if moveToTrash {
		fmt.Fprintf(out, "移入回收站: 成功 %d 个，失败 %d 个\n", res.Trashed, res.Failed)
	}
	if res.ScanID != "" {
		fmt.Fprintln(out, faintStyle.Render("报告已保存: "+res.ScanID))
	}
	return nil
}

func init() {
	largeCmd.Flags().StringP("threshold", "t", "", "大文件阈值，如 100MiB（默认取配置）")
	largeCmd.Flags().StringP("category", "c", "all", "只显示指定类别: all, images, videos, audio, documents, archives, other")
	largeCmd.Flags().Bool("trash", false, "把列出的文件全部移入回收站")
	largeCmd.Flags().Bool("report", false, "把扫描结果保存到报告数据库")
	largeCmd.Flags().Bool("json", false, "以 JSON 输出结果")
	largeCmd.Flags().Bool("tui", false, "使用终端界面显示进度和结果")

	rootCmd.AddCommand(largeCmd)
}
