// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Eggdl is the canonical application identifier used for filesystem paths and CLI branding.
	Eggdl = "eggdl"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// Repository is the GitHub owner/name pair releases are published under.
	Repository = "eggdl-cli/eggdl"

	// UserAgent is the default HTTP User-Agent string used for requests to the course site.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Build metadata, overridden through -ldflags at release time.
var (
	BuiltAt  = ""
	BuiltBy  = ""
	Revision = ""
)
