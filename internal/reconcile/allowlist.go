package reconcile

import (
	"strings"

	"github.com/conn-castle/doc-layer/internal/profile"
)

// Allowlist holds, per managed agent, the discovered tools that default to
// enabled. It is recomputed on every reconciliation and never persisted.
type Allowlist struct {
	Librarian map[string]bool
	Foundry   map[string]bool
}

// readOnlyVerbs are the leading name segments that mark a tool as
// non-mutating. Anything else is treated as an action tool.
var readOnlyVerbs = map[string]bool{
	"list":     true,
	"get":      true,
	"search":   true,
	"read":     true,
	"find":     true,
	"describe": true,
	"show":     true,
	"view":     true,
	"browse":   true,
}

// policy describes which tool categories a profile enables per agent.
// The librarian never receives action tools.
type policy struct {
	librarianReadOnly bool
	foundryReadOnly   bool
	foundryAction     bool
}

// policyTable is the fixed (profile, category, agent) decision table.
// The unknown profile conservatively denies everything: toggles are still
// created for every discovered tool, just defaulted to false.
var policyTable = map[profile.Profile]policy{
	profile.Training:  {librarianReadOnly: true, foundryReadOnly: true, foundryAction: true},
	profile.Inference: {librarianReadOnly: true, foundryReadOnly: true, foundryAction: false},
	profile.Data:      {librarianReadOnly: true, foundryReadOnly: true, foundryAction: true},
	profile.App:       {librarianReadOnly: true, foundryReadOnly: true, foundryAction: true},
	profile.Unknown:   {},
}

// ComputeAllowlist decides, for every discovered tool, whether each managed
// agent should have it enabled by default under the given profile.
// The decision depends only on (profile, tool name, agent), is pure, and is
// total: unrecognized profiles use the unknown policy. Duplicate tool names
// are tolerated by set semantics.
func ComputeAllowlist(p profile.Profile, toolNames []string) Allowlist {
	pol, ok := policyTable[p]
	if !ok {
		pol = policyTable[profile.Unknown]
	}

	allow := Allowlist{
		Librarian: make(map[string]bool, len(toolNames)),
		Foundry:   make(map[string]bool, len(toolNames)),
	}
	for _, name := range toolNames {
		readOnly := isReadOnlyTool(name)
		if readOnly && pol.librarianReadOnly {
			allow.Librarian[name] = true
		}
		if (readOnly && pol.foundryReadOnly) || (!readOnly && pol.foundryAction) {
			allow.Foundry[name] = true
		}
	}
	return allow
}

// isReadOnlyTool classifies a tool by its leading name segment.
func isReadOnlyTool(name string) bool {
	verb, _, _ := strings.Cut(strings.ToLower(name), "_")
	return readOnlyVerbs[verb]
}
