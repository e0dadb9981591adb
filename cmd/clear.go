package cmd

import (
	"fmt"

	"github.com/eggdl-cli/eggdl/auth"
	"github.com/eggdl-cli/eggdl/color"
	"github.com/eggdl-cli/eggdl/filesystem"
	"github.com/eggdl-cli/eggdl/icon"
	"github.com/eggdl-cli/eggdl/style"
	"github.com/eggdl-cli/eggdl/util"
	"github.com/eggdl-cli/eggdl/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

// clearTarget defines a file or directory that can be wiped.
type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	location func() string
}

var clearTargets = []clearTarget{
	{"cache directory", "cache", mo.Some("c"), where.Cache},
	{"logs directory", "logs", mo.Some("l"), where.Logs},
	{"history file", "history", mo.Some("s"), where.History},
	{"remembered entries", "entries", mo.Some("e"), where.Entries},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear %s", target.name)
		if target.argShort.IsPresent() {
			clearCmd.Flags().BoolP(target.argLong, target.argShort.MustGet(), false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}

	clearCmd.Flags().StringP("password", "p", "", "forget the keyring password of the given account")
}

// clearCmd removes cached files, logs and remembered passwords.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear cached files, logs and remembered passwords",
	Run: func(cmd *cobra.Command, args []string) {
		var anyCleared bool

		for _, target := range clearTargets {
			if !lo.Must(cmd.Flags().GetBool(target.argLong)) {
				continue
			}

			anyCleared = true
			erase := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), target.name))
			err := filesystem.API().RemoveAll(target.location())
			erase()
			handleErr(err)
			fmt.Printf("%s %s cleared\n", style.Fg(color.Green)(icon.Get(icon.Success)), target.name)
		}

		if account := lo.Must(cmd.Flags().GetString("password")); account != "" {
			anyCleared = true
			handleErr(auth.DeletePassword(account))
			fmt.Printf("%s forgot the password of %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), account)
		}

		if !anyCleared {
			handleErr(cmd.Help())
		}
	},
}
