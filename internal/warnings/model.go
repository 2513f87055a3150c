// Package warnings defines the warning model surfaced to users after
// setup, rescan, and fetch operations.
package warnings

// Warning codes.
const (
	CodeTogglesPreserved   = "TOGGLES_PRESERVED"
	CodeServerURLMismatch  = "MCP_SERVER_URL_MISMATCH"
	CodeURLNormalized      = "URL_NORMALIZED"
	CodeProfileUnknown     = "PROFILE_UNKNOWN"
	CodeLegacyBackupFailed = "LEGACY_BACKUP_FAILED"
	CodeShardFetchFailed   = "SHARD_FETCH_FAILED"
)

// Warning represents a warning message.
type Warning struct {
	Code    string
	Subject string
	Message string
	Fix     string
}

func (w Warning) String() string {
	s := w.Code + ": " + w.Message
	if w.Subject != "" {
		s += " (" + w.Subject + ")"
	}
	if w.Fix != "" {
		s += "; fix: " + w.Fix
	}
	return s
}
