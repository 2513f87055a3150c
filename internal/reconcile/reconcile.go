// Package reconcile implements the configuration reconciliation core: the
// idempotent patch of the host document that wires up the doc-layer MCP
// server and per-agent tool toggles.
//
// Apply is a pure transform over an in-memory document. It never fails and
// never touches the filesystem, the network, or the process environment;
// all failure handling belongs to the driver.
package reconcile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/conn-castle/doc-layer/internal/credentials"
	"github.com/conn-castle/doc-layer/internal/jsontree"
	"github.com/conn-castle/doc-layer/internal/messages"
	"github.com/conn-castle/doc-layer/internal/profile"
	"github.com/conn-castle/doc-layer/internal/warnings"
)

// Fixed identifiers of the managed configuration surface.
const (
	// SchemaURL is written into $schema when absent.
	SchemaURL = "https://opencode.ai/config.json"
	// ServerKey is the managed entry in the top-level mcp map.
	ServerKey = "doclayer"
	// TogglePrefix prefixes every managed tool toggle key.
	TogglePrefix = "doclayer_"
	// WildcardKey is the global deny entry in the top-level tools map.
	WildcardKey = TogglePrefix + "*"
	// DeprecatedMetadataKey is always stripped: pre-1.0 versions wrote
	// plugin metadata there, and the host schema rejects unknown
	// top-level keys.
	DeprecatedMetadataKey = "doclayer"

	// AgentLibrarian and AgentFoundry are the two managed agents.
	AgentLibrarian = "librarian"
	AgentFoundry   = "foundry"

	// The two locally served doc-browsing tools.
	SearchToolKey = TogglePrefix + "search_docs"
	ReadToolKey   = TogglePrefix + "read_doc"
)

const markerPrefix = " (generated by doc-layer"

// Mode selects between the two entry procedures sharing the algorithm.
type Mode int

// Reconciliation modes.
const (
	ModeSetup Mode = iota
	ModeRescan
)

func (m Mode) String() string {
	if m == ModeRescan {
		return "rescan"
	}
	return "setup"
}

// Input carries everything Apply needs besides the document itself.
type Input struct {
	Mode Mode
	// ServerURL seeds the managed server entry; setup mode only.
	ServerURL string
	ToolNames []string
	Profile   profile.Profile
	Allowlist Allowlist
	Version   string
}

// Summary reports what reconciliation did, for the user-facing report.
type Summary struct {
	Profile   string
	ToolCount int
	// LibrarianEnabled and FoundryEnabled count discovered-tool toggles
	// set true after patching.
	LibrarianEnabled int
	FoundryEnabled   int
	// PreservedExistingToggles is true when either managed agent already
	// had managed-prefix toggle keys before this run. Reporting-only:
	// both modes skip every pre-existing key regardless.
	PreservedExistingToggles bool
}

// Result is the outcome of one reconciliation.
type Result struct {
	Doc           *jsontree.Value
	Summary       Summary
	Warnings      []warnings.Warning
	ServerCreated bool
}

// Apply patches a working copy of doc per the shared setup/rescan
// algorithm. Given identical inputs it is deterministic and idempotent:
// re-running on its own output yields byte-identical serialization.
func Apply(doc *jsontree.Value, in Input) Result {
	work := jsontree.Clone(doc)
	if work == nil || work.Kind() != jsontree.KindObject {
		work = jsontree.NewObject()
	}
	root := work.Fields()

	toolNames := dedupeSorted(in.ToolNames)

	if !root.Has("$schema") {
		root.Set("$schema", jsontree.NewString(SchemaURL))
	}

	root.Delete(DeprecatedMetadataKey)

	// Global deny gates only tools without an individual toggle, so setup
	// reasserts it; rescan adds it only when absent.
	tools := root.EnsureObject("tools")
	if in.Mode == ModeSetup || !tools.Has(WildcardKey) {
		tools.Set(WildcardKey, jsontree.NewBool(false))
	}

	serverCreated := false
	if in.Mode == ModeSetup {
		mcpServers := root.EnsureObject("mcp")
		if !mcpServers.Has(ServerKey) {
			mcpServers.Set(ServerKey, newServerEntry(in.ServerURL))
			serverCreated = true
		}
	}

	agents := root.EnsureObject("agent")
	librarianHad := patchAgent(agents, AgentLibrarian, toolNames, in.Allowlist.Librarian, in.Version)
	foundryHad := patchAgent(agents, AgentFoundry, toolNames, in.Allowlist.Foundry, in.Version)
	preserved := librarianHad || foundryHad

	summary := Summary{
		Profile:                  string(in.Profile),
		ToolCount:                len(toolNames),
		LibrarianEnabled:         countEnabled(agents, AgentLibrarian, toolNames),
		FoundryEnabled:           countEnabled(agents, AgentFoundry, toolNames),
		PreservedExistingToggles: preserved,
	}

	var warns []warnings.Warning
	if preserved {
		message := messages.ReconcilePreservedSetupWarn
		if in.Mode == ModeRescan {
			message = messages.ReconcilePreservedRescanWarn
		}
		warns = append(warns, warnings.Warning{
			Code:    warnings.CodeTogglesPreserved,
			Subject: "agent tools",
			Message: message,
			Fix:     messages.ReconcilePreservedFix,
		})
	}

	return Result{Doc: work, Summary: summary, Warnings: warns, ServerCreated: serverCreated}
}

// newServerEntry builds the managed MCP server descriptor. The token is
// persisted only as a deferred-expansion placeholder, never as a literal.
func newServerEntry(serverURL string) *jsontree.Value {
	entry := jsontree.NewObject()
	fields := entry.Fields()
	fields.Set("type", jsontree.NewString("local"))
	fields.Set("command", jsontree.NewArray(
		jsontree.NewString("dla"),
		jsontree.NewString("serve"),
		jsontree.NewString("--url"),
		jsontree.NewString(serverURL),
	))
	env := jsontree.NewObject()
	env.Fields().Set(credentials.EnvToken, jsontree.NewString(credentials.Placeholder))
	fields.Set("environment", env)
	return entry
}

// patchAgent ensures the managed agent entry and its toggles, filling in
// only what is absent. It returns whether the agent already had
// managed-prefix toggle keys before patching.
func patchAgent(agents *jsontree.Fields, name string, toolNames []string, allow map[string]bool, version string) bool {
	agent := agents.EnsureObject(name)

	setIfAbsent(agent, "mode", jsontree.NewString("subagent"))
	setIfAbsent(agent, "hidden", jsontree.NewBool(false))
	setIfAbsent(agent, "description", jsontree.NewString(defaultDescription(name)))
	setIfAbsent(agent, "prompt", jsontree.NewString(defaultPrompt(name)))

	// The generated marker is the one permitted description rewrite: the
	// previous marker segment is replaced, never appended again.
	if desc, ok := agent.Get("description"); ok && desc.Kind() == jsontree.KindString {
		agent.Set("description", jsontree.NewString(annotate(desc.StringVal(), version)))
	}

	tools := agent.EnsureObject("tools")
	had := hasManagedToggle(tools)

	setIfAbsent(tools, SearchToolKey, jsontree.NewBool(name == AgentLibrarian))
	setIfAbsent(tools, ReadToolKey, jsontree.NewBool(name == AgentLibrarian))

	for _, tool := range toolNames {
		setIfAbsent(tools, TogglePrefix+tool, jsontree.NewBool(allow[tool]))
	}
	return had
}

func setIfAbsent(fields *jsontree.Fields, key string, value *jsontree.Value) {
	if !fields.Has(key) {
		fields.Set(key, value)
	}
}

// hasManagedToggle reports whether any key carries the managed prefix.
func hasManagedToggle(tools *jsontree.Fields) bool {
	for _, key := range tools.Keys() {
		if strings.HasPrefix(key, TogglePrefix) {
			return true
		}
	}
	return false
}

// countEnabled counts discovered-tool toggles set true for the agent after
// patching.
func countEnabled(agents *jsontree.Fields, name string, toolNames []string) int {
	agent, ok := agents.Get(name)
	if !ok || agent.Kind() != jsontree.KindObject {
		return 0
	}
	tools, ok := agent.Fields().Get("tools")
	if !ok || tools.Kind() != jsontree.KindObject {
		return 0
	}
	count := 0
	for _, tool := range toolNames {
		if v, ok := tools.Fields().Get(TogglePrefix + tool); ok && v.BoolVal() {
			count++
		}
	}
	return count
}

// dedupeSorted returns the unique tool names in lexicographic order, so
// toggle key generation is deterministic regardless of discovery order.
func dedupeSorted(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func defaultDescription(agent string) string {
	if agent == AgentFoundry {
		return messages.FoundryDescription
	}
	return messages.LibrarianDescription
}

func defaultPrompt(agent string) string {
	if agent == AgentFoundry {
		return messages.FoundryPrompt
	}
	return messages.LibrarianPrompt
}

// annotate appends the generated marker to desc, replacing any previous
// marker segment so repeated runs converge to a fixed point.
func annotate(desc, version string) string {
	if version == "" {
		version = "dev"
	}
	base := desc
	if idx := strings.LastIndex(base, markerPrefix); idx >= 0 && strings.HasSuffix(base, ")") {
		base = strings.TrimRight(base[:idx], " ")
	}
	return fmt.Sprintf("%s%s %s)", base, markerPrefix, version)
}

// ServerURL extracts the --url argument from the managed server entry's
// command, or "" when the entry or argument is absent. The driver uses it
// for rescan discovery and mismatch warnings.
func ServerURL(doc *jsontree.Value) string {
	if doc == nil || doc.Kind() != jsontree.KindObject {
		return ""
	}
	mcpServers, ok := doc.Fields().Get("mcp")
	if !ok || mcpServers.Kind() != jsontree.KindObject {
		return ""
	}
	entry, ok := mcpServers.Fields().Get(ServerKey)
	if !ok || entry.Kind() != jsontree.KindObject {
		return ""
	}
	command, ok := entry.Fields().Get("command")
	if !ok || command.Kind() != jsontree.KindArray {
		return ""
	}
	items := command.Items()
	for i, item := range items {
		if item.StringVal() == "--url" && i+1 < len(items) {
			return items[i+1].StringVal()
		}
	}
	return ""
}
