package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moyu-x/dupsweep/app"
	"github.com/moyu-x/dupsweep/pkg/progress"
	"github.com/moyu-x/dupsweep/tui"
)

var dupesCmd = &cobra.Command{
	Use:   "dupes [directories...]",
	Short: "查找内容完全相同的文件",
	Long: `遍历指定目录，先按大小分组，再比较前 4 KiB 的 xxHash，最后对候选文件计算完整哈希。
每组中创建时间最早（相同时路径最短）的文件视为原始文件，其余为可删除的副本。
未指定目录时使用配置项 scanner.roots。
` + rootRulesNote,
	RunE: runDupes,
}

// rootRulesNote 排除规则只作用于根目录之下的条目
const rootRulesNote = `排除目录、隐藏文件和应用程序包规则只作用于指定目录之下的条目：
显式给出的目录总会被扫描，即使它本身位于排除目录（例如 Library）中。`

func runDupes(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}
	roots, err := env.Roots(args)
	if err != nil {
		return err
	}

	minSizeStr, _ := cmd.Flags().GetString("min-size")
	workers, _ := cmd.Flags().GetInt("workers")
	algorithm, _ := cmd.Flags().GetString("algorithm")
	category, _ := cmd.Flags().GetString("category")
	moveToTrash, _ := cmd.Flags().GetBool("trash")
	saveReport, _ := cmd.Flags().GetBool("report")
	asJSON, _ := cmd.Flags().GetBool("json")
	useTUI, _ := cmd.Flags().GetBool("tui")

	minSize, err := sizeFlag(minSizeStr, -1)
	if err != nil {
		return err
	}

	opts := &app.DupesOptions{
		Roots:       roots,
		MinFileSize: minSize,
		Workers:     workers,
		Algorithm:   algorithm,
		Category:    category,
		Trash:       moveToTrash,
		Report:      saveReport,
	}

	if useTUI {
		return tui.Run(cmd.Context(), tui.Job{
			Title:    "正在查找重复文件",
			Fraction: true,
			Run: func(ctx context.Context, onProgress progress.Func) (tui.Result, error) {
				res, err := app.RunDupes(ctx, env, opts, onProgress)
				if err != nil {
					return tui.Result{}, err
				}
				return tui.DuplicateResult(res.Groups), nil
			},
		})
	}

	res, err := app.RunDupes(cmd.Context(), env, opts, logPhases())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return printJSON(out, res)
	}

	for i, g := range res.Groups {
		fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("组 %d  %s × %d  可释放 %s  [%s]",
			i+1, bytesOf(g.Files[0].Size), g.Count(), bytesOf(g.ReclaimableSize()), g.Category)))
		for _, f := range g.Files {
			if f.IsOriginal {
				fmt.Fprintln(out, originalStyle.Render("  ★ "+f.Path))
			} else {
				fmt.Fprintln(out, "    "+f.Path)
			}
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "重复文件组: %d，可释放空间: %s\n", len(res.Groups), bytesOf(res.Reclaimable))
	if moveToTrash {
		fmt.Fprintf(out, "移入回收站: 成功 %d 个，失败 %d 个\n", res.Trashed, res.Failed)
	}
	if res.ScanID != "" {
		fmt.Fprintln(out, faintStyle.Render("报告已保存: "+res.ScanID))
	}
	return nil
}

func init() {
	dupesCmd.Flags().String("min-size", "", "参与比较的最小文件大小，如 1KiB（默认取配置）")
	dupesCmd.Flags().IntP("workers", "w", 0, "并发处理的大小桶数量（默认取配置，0 为 CPU 核数）")
	dupesCmd.Flags().String("algorithm", "", "完整哈希算法: sha256 或 blake2b（默认取配置）")
	dupesCmd.Flags().StringP("category", "c", "all", "只显示指定类别: all, images, videos, audio, documents, archives, other")
	dupesCmd.Flags().Bool("trash", false, "把每组中的非原始文件移入回收站")
	dupesCmd.Flags().Bool("report", false, "把扫描结果保存到报告数据库")
	dupesCmd.Flags().Bool("json", false, "以 JSON 输出结果")
	dupesCmd.Flags().Bool("tui", false, "使用终端界面显示进度和结果")

	rootCmd.AddCommand(dupesCmd)
}
