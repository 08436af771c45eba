package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moyu-x/dupsweep/app"
	"github.com/moyu-x/dupsweep/pkg/progress"
	"github.com/moyu-x/dupsweep/tui"
)

var sizeCmd = &cobra.Command{
	Use:   "size <path>",
	Short: "统计目录大小",
	Long: `统计目录下所有普通文件的总大小，隐藏文件和符号链接不计入，应用程序包等 bundle 目录会计入。
使用 --breakdown 列出直接子项及其占比。`,
	Args: cobra.ExactArgs(1),
	RunE: runSize,
}

func runSize(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}

	breakdown, _ := cmd.Flags().GetBool("breakdown")
	asJSON, _ := cmd.Flags().GetBool("json")
	useTUI, _ := cmd.Flags().GetBool("tui")
	path := args[0]

	if useTUI {
		return tui.Run(cmd.Context(), tui.Job{
			Title: "正在统计目录大小",
			Run: func(ctx context.Context, onProgress progress.Func) (tui.Result, error) {
				res := app.RunSize(ctx, env, path, true, onProgress)
				return tui.BreakdownResult(res.Path, res.Items, res.Available), nil
			},
		})
	}

	res := app.RunSize(cmd.Context(), env, path, breakdown, nil)

	out := cmd.OutOrStdout()
	if asJSON {
		return printJSON(out, res)
	}
	if !res.Available {
		return fmt.Errorf("无法访问: %s", path)
	}

	for _, item := range res.Items {
		name := item.Name
		if item.IsDir {
			name += "/"
		}
		bar := strings.Repeat("█", int(item.Percentage/5))
		fmt.Fprintf(out, "%s  %5.1f%%  %-20s %s\n",
			sizeStyle.Render(bytesOf(item.Size)), item.Percentage, faintStyle.Render(bar), name)
	}
	fmt.Fprintf(out, "%s  %s\n", headerStyle.Render(bytesOf(res.Size)), res.Path)
	return nil
}

func init() {
	sizeCmd.Flags().BoolP("breakdown", "b", false, "列出直接子项的大小和占比")
	sizeCmd.Flags().Bool("json", false, "以 JSON 输出结果")
	sizeCmd.Flags().Bool("tui", false, "使用终端界面显示进度和结果")

	rootCmd.AddCommand(sizeCmd)
}
