package messages

// Host configuration and credential messages.
const (
	ConfigReadFailedFmt   = "read %s: %w"
	ConfigParseFailedFmt  = "parse %s: %w"
	LegacyReadFailedFmt   = "read legacy config %s: %w"
	LegacyParseFailedFmt  = "parse legacy config %s: %w"
	ConfigWriteFailedFmt  = "write %s: %w"
	LegacyBackupFailedFmt = "rename legacy config %s: %w"
	GlobalPathFailedFmt   = "resolve global config path: %w"

	// CredentialsMissingTokenFmt reports the missing token variable by name.
	CredentialsMissingTokenFmt = "environment variable %s is not set; export it or add it to .env"
)
