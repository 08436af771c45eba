package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moyu-x/dupsweep/app"
)

var usageCmd = &cobra.Command{
	Use:   "usage [path]",
	Short: "显示路径所在卷的容量",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := setup(); err != nil {
			return err
		}

		path := "/"
		if len(args) == 1 {
			path = args[0]
		}

		v, err := app.RunUsage(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(out, v)
		}

		fmt.Fprintln(out, headerStyle.Render(v.Path))
		fmt.Fprintf(out, "  总容量: %s\n", bytesOf(int64(v.Total)))
		fmt.Fprintf(out, "  已使用: %s (%.1f%%)\n", bytesOf(int64(v.Used)), v.UsedPercent())
		fmt.Fprintf(out, "  可用:   %s\n", bytesOf(int64(v.Free)))
		return nil
	},
}

func init() {
	usageCmd.Flags().Bool("json", false, "以 JSON 输出结果")
	rootCmd.AddCommand(usageCmd)
}
