package messages

// CLI messages for user-facing commands and flags.
const (
	// RootUse is the CLI command name.
	RootUse = "dla"
	// RootShort is the short description for the root command.
	RootShort = "Doc Layer CLI"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// SetupUse is the setup command usage.
	SetupUse        = "setup <server-url>"
	SetupShort      = "Wire the doc-layer server and tool allowlists into opencode.json"
	SetupMissingURL = "setup requires exactly one argument: the doc-layer server URL"

	RescanUse   = "rescan"
	RescanShort = "Refresh tool toggles from the configured doc-layer server"

	FetchUse   = "fetch"
	FetchShort = "Fetch the documentation corpus into the local cache"

	ServeUse   = "serve"
	ServeShort = "Serve the doc query tools over MCP stdio"

	DoctorUse   = "doctor"
	DoctorShort = "Check the doc-layer installation in this repository"

	FlagDryRun   = "Preview the configuration change without writing any file"
	FlagGlobal   = "Patch the global opencode config instead of the repository's"
	FlagLogLevel = "Log level (debug, info, warn, error)"
	FlagManifest = "Path to the doclayer.toml manifest"
	FlagServeURL = "Doc-layer server URL whose tools are proxied alongside the doc tools"
	FlagCorpus   = "Path to the corpus cache file"
)
