package config

import (
	"time"

	"github.com/eggdl-cli/eggdl/key"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Run holds everything a single download run needs. It is built once from
// the command line and the configuration registry and never changes afterwards.
type Run struct {
	// Account is the email used to sign in.
	Account string
	// Password is present only when the user asked to sign in.
	Password mo.Option[string]
	// EntryURL is the lesson, series, playlist or course URL to resolve.
	EntryURL string
	// OutputDir is the absolute directory that receives the numbered lesson folders.
	OutputDir string

	// Pro enables the lessons API shortcut for single lessons.
	Pro bool
	// Concurrency caps simultaneous lesson page resolutions; 0 means unbounded.
	Concurrency int
	// Rate caps lesson page requests per second; 0 disables pacing.
	Rate float64

	Count    bool
	Force    bool
	Progress bool
	JSON     bool

	Timeout     time.Duration
	Fingerprint bool
	UserAgent   string
}

// Authenticated reports whether the run carries credentials.
func (r Run) Authenticated() bool {
	return r.Account != "" && r.Password.IsPresent()
}

// FromViper fills the tunable parts of a Run from the configuration registry.
// Values already tied to flags through viper.BindPFlag are picked up here as well.
func FromViper(account, entryURL, outputDir string, password mo.Option[string]) Run {
	return Run{
		Account:     account,
		Password:    password,
		EntryURL:    entryURL,
		OutputDir:   outputDir,
		Pro:         viper.GetBool(key.ResolveProAPI),
		Concurrency: viper.GetInt(key.ResolveConcurrency),
		Rate:        viper.GetFloat64(key.ResolveRate),
		Count:       viper.GetBool(key.DownloadCount),
		Force:       viper.GetBool(key.DownloadForce),
		Progress:    viper.GetBool(key.DownloadProgress),
		Timeout:     time.Duration(viper.GetInt(key.NetworkTimeout)) * time.Second,
		Fingerprint: viper.GetBool(key.NetworkFingerprint),
		UserAgent:   viper.GetString(key.NetworkUserAgent),
	}
}
