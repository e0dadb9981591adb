// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Resolution Pipeline - these keys govern how lesson pages are discovered and resolved.
const (
	ResolveConcurrency = "resolve.concurrency"
	ResolveRate        = "resolve.rate"
	ResolveProAPI      = "resolve.pro_api"
)

// Network Transport - these keys configure the shared HTTP session.
const (
	NetworkTimeout     = "network.timeout"
	NetworkFingerprint = "network.fingerprint"
	NetworkUserAgent   = "network.user_agent"
)

// Download Stage - these keys control how resolved videos are persisted.
const (
	DownloadCount    = "download.count"
	DownloadForce    = "download.force"
	DownloadProgress = "download.progress"
)

// Authentication - these keys manage credential handling for pro accounts.
const (
	AuthRemember = "auth.remember"
)

// History - these keys govern what is remembered between runs.
const (
	HistorySave           = "history.save"
	HistorySuggestEntries = "history.suggest_entries"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
