package warnings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWarningString(t *testing.T) {
	t.Run("message only", func(t *testing.T) {
		w := Warning{Code: CodeProfileUnknown, Message: "could not classify repository"}
		assert.Equal(t, "PROFILE_UNKNOWN: could not classify repository", w.String())
	})

	t.Run("full", func(t *testing.T) {
		w := Warning{
			Code:    CodeServerURLMismatch,
			Subject: "mcp.doclayer",
			Message: "existing server points elsewhere",
			Fix:     "remove the entry and re-run setup",
		}
		assert.Equal(t,
			"MCP_SERVER_URL_MISMATCH: existing server points elsewhere (mcp.doclayer); fix: remove the entry and re-run setup",
			w.String())
	})
}
