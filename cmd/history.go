package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moyu-x/dupsweep/app"
	"github.com/moyu-x/dupsweep/pkg/report"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "列出已保存的扫描报告",
	Long:  `列出通过 --report 保存到报告数据库（配置项 report.path）中的扫描，最新的在前。`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup()
		if err != nil {
			return err
		}

		limit, _ := cmd.Flags().GetInt("limit")
		scans, err := app.RunHistory(env, limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(out, scans)
		}
		if len(scans) == 0 {
			fmt.Fprintln(out, "没有保存的扫描报告")
			return nil
		}

		for _, s := range scans {
			what := fmt.Sprintf("%d 组重复文件，可释放 %s", s.Items, bytesOf(s.TotalBytes))
			if s.Kind == report.KindLargeFiles {
				what = fmt.Sprintf("%d 个大文件，共 %s", s.Items, bytesOf(s.TotalBytes))
			}
			fmt.Fprintf(out, "%s  %s  %s\n", faintStyle.Render(s.CreatedAt.Format("2006-01-02 15:04")), headerStyle.Render(s.ID[:8]), what)
			fmt.Fprintf(out, "    %s\n", strings.Join(report.SplitRoots(s.Roots), ", "))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "最多显示的条数，0 表示全部")
	historyCmd.Flags().Bool("json", false, "以 JSON 输出结果")
	rootCmd.AddCommand(historyCmd)
}
