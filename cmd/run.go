package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/eggdl-cli/eggdl/auth"
	"github.com/eggdl-cli/eggdl/color"
	"github.com/eggdl-cli/eggdl/config"
	"github.com/eggdl-cli/eggdl/constant"
	"github.com/eggdl-cli/eggdl/download"
	"github.com/eggdl-cli/eggdl/history"
	"github.com/eggdl-cli/eggdl/icon"
	"github.com/eggdl-cli/eggdl/inline"
	"github.com/eggdl-cli/eggdl/key"
	"github.com/eggdl-cli/eggdl/log"
	"github.com/eggdl-cli/eggdl/network"
	"github.com/eggdl-cli/eggdl/query"
	"github.com/eggdl-cli/eggdl/resolve"
	"github.com/eggdl-cli/eggdl/source"
	"github.com/eggdl-cli/eggdl/style"
	"github.com/eggdl-cli/eggdl/util"
	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// endpoints the run talks to, swapped in tests
var (
	signInURL = constant.SignInURL
	lessonAPI = constant.LessonAPI
)

// run signs in when credentials are present, resolves the entry URL and
// either downloads the videos or prints them. Console messages go to msgs
// in JSON mode so out only carries the document.
func run(ctx context.Context, cfg config.Run, out, errOut io.Writer) error {
	msgs := lo.Ternary(cfg.JSON, errOut, out)
	interactive := !cfg.JSON && util.IsTerminal()

	session, err := network.NewSession(network.Options{
		Timeout:     cfg.Timeout,
		UserAgent:   cfg.UserAgent,
		Fingerprint: cfg.Fingerprint,
	})
	if err != nil {
		return err
	}

	if cfg.Authenticated() {
		if err := signIn(ctx, session, cfg, msgs, interactive); err != nil {
			return err
		}
	}

	erase := func() {}
	if interactive {
		erase = util.PrintErasable(fmt.Sprintf("%s Looking for videos...", icon.Get(icon.Progress)))
	}
	result, err := resolve.New(cfg, session, lessonAPI).ResolveAll(ctx)
	erase()

	if result != nil {
		warnFailures(msgs, result.Failures)
	}

	switch {
	case errors.Is(err, resolve.ErrEmptyResult):
		return errors.New("no video found!")
	case err != nil:
		return err
	}

	if err := query.Remember(cfg.EntryURL, 1); err != nil {
		log.Warnf("remember entry: %v", err)
	}

	if cfg.JSON {
		return inline.Run(result, &inline.Options{Out: out, Entry: cfg.EntryURL, Json: true})
	}

	fmt.Fprintf(msgs, "%s Found %s\n",
		style.Fg(color.Green)(icon.Get(icon.Success)),
		util.Quantify(len(result.Videos), "video", "videos"),
	)

	options := download.Options{
		Dir:      cfg.OutputDir,
		Count:    cfg.Count,
		Force:    cfg.Force,
		Progress: cfg.Progress && util.IsTerminal(),
		Out:      msgs,
	}
	if viper.GetBool(key.HistorySave) {
		options.OnSaved = history.Save
	}

	summary, err := download.New(session.Client(), options).All(ctx, result.Videos)
	if err != nil {
		return err
	}

	log.Infof("saved %d, skipped %d", summary.Saved, summary.Skipped)
	fmt.Fprintf(msgs, "%s Done!\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	return nil
}

func signIn(ctx context.Context, session *network.Session, cfg config.Run, msgs io.Writer, interactive bool) error {
	password := cfg.Password.MustGet()

	erase := func() {}
	if interactive {
		erase = util.PrintErasable(fmt.Sprintf("%s Signing in as %s...", icon.Get(icon.Progress), cfg.Account))
	}
	err := auth.SignIn(ctx, session, signInURL, cfg.Account, password)
	erase()
	if err != nil {
		return err
	}

	fmt.Fprintf(msgs, "%s Authenticated!\n", style.Fg(color.Green)(icon.Get(icon.Success)))

	if viper.GetBool(key.AuthRemember) {
		if err := auth.SavePassword(cfg.Account, password); err != nil {
			log.Warnf("keyring: %v", err)
		}
	}

	return nil
}

// warnFailures lists the lessons that could not be resolved.
func warnFailures(w io.Writer, failures []source.Failure) {
	if len(failures) == 0 {
		return
	}

	width := util.Min(util.TerminalWidth(80), 80) - 4
	header := fmt.Sprintf(
		"%s %s could not be resolved. They may be restricted to subscribers, try signing in with a pro account.",
		icon.Get(icon.Warn),
		util.Quantify(len(failures), "lesson", "lessons"),
	)
	fmt.Fprintln(w, style.Box(color.Yellow)(wordwrap.String(header, width)))

	for _, failure := range failures {
		fmt.Fprintf(w, "  %s %s\n", style.Faint("-"), failure.Lesson.URL)
		log.With(log.Fields{"lesson": failure.Lesson.URL}).Warn(failure.Reason)
	}
}
