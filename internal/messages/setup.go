package messages

// Reconciliation driver messages.
const (
	DiscoveryInvalidURLFmt = "invalid server URL %q: %v"
	DiscoveryFailedFmt     = "discover tools from %s: %w"
	DiscoveryNoToolsFmt    = "no tools discovered from %s"
	RescanMissingServer    = "opencode.json has no managed doc-layer server; run 'dla setup <server-url>' first"

	URLNormalizedWarnFmt  = "server URL normalized from %q to %q"
	ServerMismatchWarnFmt = "existing doc-layer server entry does not reference %s; it was left untouched"
	ServerMismatchFix     = "remove the mcp.doclayer entry from opencode.json and re-run setup to regenerate it"
	ProfileUnknownWarnFmt = "repository profile could not be determined: %s"

	// MigrationFailedFmt reports the one partial-success case: the primary
	// write landed but the legacy rename did not.
	MigrationFailedFmt = "opencode.json was written, but renaming the legacy config failed: %v"
)

// Report block structure. Tests assert against this exact layout.
const (
	ReportSetupHeader     = "doc-layer setup complete."
	ReportRescanHeader    = "doc-layer rescan complete."
	ReportDryRunNote      = "No files were written (dry run)."
	ReportProfileFmt      = "  profile: %s"
	ReportToolCountFmt    = "  tools discovered: %d"
	ReportLibrarianFmt    = "  librarian tools enabled: %d"
	ReportFoundryFmt      = "  foundry tools enabled: %d"
	ReportServerCreated   = "  mcp server entry created"
	ReportPreserved       = "  existing toggles preserved"
	ReportMigratedFmt     = "  migrated %s -> %s"
	ReportWarningsHeader  = "Warnings:"
	ReportWarningItemFmt  = "  - %s"
	ReportDiffCurrent     = "opencode.json (current)"
	ReportDiffPatched     = "opencode.json (patched)"
	ReportNoConfigChanges = "No configuration changes."
)
