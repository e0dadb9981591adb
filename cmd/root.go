// Package cmd implements the command-line interface for eggdl.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/eggdl-cli/eggdl/color"
	"github.com/eggdl-cli/eggdl/config"
	"github.com/eggdl-cli/eggdl/constant"
	"github.com/eggdl-cli/eggdl/entry"
	"github.com/eggdl-cli/eggdl/icon"
	"github.com/eggdl-cli/eggdl/key"
	"github.com/eggdl-cli/eggdl/log"
	"github.com/eggdl-cli/eggdl/query"
	"github.com/eggdl-cli/eggdl/style"
	"github.com/eggdl-cli/eggdl/version"
	"github.com/eggdl-cli/eggdl/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.Flags().StringP("password", "p", "", "Account password (only required for Pro accounts). Prompted for when given without a value")
	rootCmd.Flags().Lookup("password").NoOptDefVal = promptPassword

	rootCmd.Flags().BoolP("count", "c", false, "Add the number of the video to the filename (only for playlists and series)")
	lo.Must0(viper.BindPFlag(key.DownloadCount, rootCmd.Flags().Lookup("count")))

	rootCmd.Flags().BoolP("force", "f", false, "Overwrite existing files")
	lo.Must0(viper.BindPFlag(key.DownloadForce, rootCmd.Flags().Lookup("force")))

	rootCmd.Flags().BoolP("json", "j", false, "Print the resolved videos as JSON instead of downloading them")

	rootCmd.Flags().Bool("remember", false, "Store the password in the system keyring after signing in")
	lo.Must0(viper.BindPFlag(key.AuthRemember, rootCmd.Flags().Lookup("remember")))

	rootCmd.Flags().IntP("concurrency", "n", 0, "Maximum number of lesson pages resolved at the same time (0 means no limit)")
	lo.Must0(viper.BindPFlag(key.ResolveConcurrency, rootCmd.Flags().Lookup("concurrency")))

	rootCmd.Flags().Bool("fingerprint", false, "Mimic a Chrome TLS fingerprint")
	lo.Must0(viper.BindPFlag(key.NetworkFingerprint, rootCmd.Flags().Lookup("fingerprint")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify(context.Background(), os.Stdout)
	})
}

// rootCmd downloads a lesson or every lesson of a collection.
var rootCmd = &cobra.Command{
	Use:   constant.Eggdl + " <account> <url> [output-dir]",
	Short: "Download egghead.io lessons with their transcripts and code",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiCyan).Render("    - Download egghead.io lessons with their transcripts and code"),
	Example: "  " + constant.Eggdl + " me@example.com https://egghead.io/courses/getting-started-with-redux ./redux -p -c",
	Args:    cobra.MaximumNArgs(3),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		switch len(args) {
		case 1:
			return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
		case 2:
			return nil, cobra.ShellCompDirectiveFilterDirs
		default:
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.SetContext(cmd.Context())
			versionCmd.Run(versionCmd, args)
			return
		}

		if len(args) < 2 {
			handleErr(cmd.Help())
			return
		}

		account, rawURL := args[0], args[1]
		if _, err := entry.Parse(rawURL); err != nil {
			log.Error(err)
			handleErr(errors.New("unsupported url!"))
		}

		outputDir := where.Output()
		if len(args) == 3 {
			outputDir = lo.Must(filepath.Abs(args[2]))
		}

		password, err := readPassword(cmd, account)
		handleErr(err)

		cfg := config.FromViper(account, rawURL, outputDir, password)
		cfg.JSON = lo.Must(cmd.Flags().GetBool("json"))

		handleErr(run(cmd.Context(), cfg, os.Stdout, os.Stderr))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", style.Fg(color.Red)(icon.Get(icon.Fail)), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
