package cmd

import (
	"encoding/json"
	"os"

	"github.com/eggdl-cli/eggdl/color"
	"github.com/eggdl-cli/eggdl/history"
	"github.com/eggdl-cli/eggdl/icon"
	"github.com/eggdl-cli/eggdl/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntP("limit", "n", 20, "Number of records to show, 0 for all")
	historyCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")

	historyCmd.SetOut(os.Stdout)
}

// historyCmd lists the most recently downloaded videos.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the most recently downloaded videos",
	Run: func(cmd *cobra.Command, args []string) {
		records, err := history.Recent(lo.Must(cmd.Flags().GetInt("limit")))
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(records))
			return
		}

		if len(records) == 0 {
			cmd.Printf("%s nothing downloaded yet\n", style.Fg(color.Yellow)(icon.Get(icon.Warn)))
			return
		}

		for _, record := range records {
			cmd.Printf("%s %s %s %s\n",
				style.Fg(color.Cyan)(icon.Get(icon.Video)),
				style.Bold(record.Filename),
				style.Faint(record.Path),
				style.Italic(record.SavedAt.Format("2006-01-02 15:04")),
			)
		}
	},
}
