package messages

// Doc tool server messages.
const (
	ServeRunFailedFmt = "run doc tool server: %w"

	ServeSearchDescription = "Search the cached documentation corpus. Returns ranked matches with snippets and URLs."
	ServeReadDescription   = "Read a cached document in full by its id."

	ServeSearchMissingQuery = "query is required"
	ServeReadMissingID      = "id is required"
	ServeReadNotFoundFmt    = "no document with id %q"
	ServeNoResults          = "no matching documents"
)

// Doctor check messages.
const (
	DoctorHeaderFmt          = "doc-layer health check for %s"
	DoctorCheckConfig        = "host config"
	DoctorCheckServer        = "managed server"
	DoctorCheckToken         = "credential"
	DoctorCheckCorpus        = "corpus cache"
	DoctorConfigOKFmt        = "%s parses"
	DoctorConfigMissing      = "opencode.json not found; run 'dla setup <server-url>'"
	DoctorConfigInvalidFmt   = "opencode.json is invalid: %v"
	DoctorServerOK           = "mcp.doclayer entry present"
	DoctorServerMissing      = "mcp.doclayer entry missing; run 'dla setup <server-url>'"
	DoctorTokenOK            = "token variable is set"
	DoctorTokenMissingFmt    = "%s is not set; remote tools will fail to authenticate"
	DoctorCorpusOKFmt        = "%d documents cached"
	DoctorCorpusMissing      = "corpus cache not found; run 'dla fetch'"
	DoctorCorpusInvalidFmt   = "corpus cache unreadable: %v"
	DoctorResultFmt          = "%s %s: %s\n"
	DoctorRecommendFmt       = "       fix: %s\n"
	DoctorStatusOKLabel      = "[ OK ]"
	DoctorStatusWarnLabel    = "[WARN]"
	DoctorStatusFailLabel    = "[FAIL]"
	DoctorAllChecksPassed    = "all checks passed"
	DoctorFailuresDetected   = "doctor found problems"

	DoctorConfigRecommend = "run 'dla setup <server-url>' to generate opencode.json"
	DoctorTokenRecommend  = "export DOC_LAYER_TOKEN or add it to .env"
	DoctorCorpusRecommend = "run 'dla fetch' to build the corpus cache"
)
