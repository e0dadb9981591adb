package cmd

import (
	"github.com/AlecAivazis/survey/v2"
	"github.com/eggdl-cli/eggdl/auth"
	"github.com/eggdl-cli/eggdl/constant"
	"github.com/eggdl-cli/eggdl/log"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

// promptPassword is the value -p takes when given without one.
const promptPassword = "<prompt>"

// readPassword picks the password for account: the flag value, an
// interactive prompt for a bare -p, or the keyring when -p is absent.
// No password means the run stays signed out.
func readPassword(cmd *cobra.Command, account string) (mo.Option[string], error) {
	flag := cmd.Flags().Lookup("password")

	if flag.Changed {
		if value := flag.Value.String(); value != promptPassword {
			return mo.Some(value), nil
		}

		var password string
		err := survey.AskOne(&survey.Password{
			Message: constant.SiteHost + " password",
		}, &password, survey.WithValidator(survey.Required))
		if err != nil {
			return mo.None[string](), err
		}
		return mo.Some(password), nil
	}

	password, ok, err := auth.LoadPassword(account)
	if err != nil {
		log.Warnf("keyring: %v", err)
		return mo.None[string](), nil
	}
	if !ok {
		return mo.None[string](), nil
	}

	log.Infof("using the keyring password for %s", account)
	return mo.Some(password), nil
}
