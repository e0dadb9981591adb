package version

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/eggdl-cli/eggdl/color"
	"github.com/eggdl-cli/eggdl/constant"
	"github.com/eggdl-cli/eggdl/icon"
	"github.com/eggdl-cli/eggdl/key"
	"github.com/eggdl-cli/eggdl/log"
	"github.com/eggdl-cli/eggdl/style"
	"github.com/eggdl-cli/eggdl/util"
	"github.com/spf13/viper"
)

// Notify tells the user when a newer release than the running one exists.
func Notify(ctx context.Context, out io.Writer) {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	latest, err := Latest(ctx)
	erase()
	if err != nil {
		log.Debugf("version check: %v", err)
		return
	}

	printNotice(out, latest, constant.Version)
}

func printNotice(out io.Writer, latest, current string) {
	comp, err := Compare(latest, current)
	if err != nil || comp <= 0 {
		return
	}

	fmt.Fprintf(out, `
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", current)),
		style.Faint(fmt.Sprintf("https://github.com/%s/releases/tag/v%s", constant.Repository, latest)),
	)
}
