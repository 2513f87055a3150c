package messages

// Reconciliation wording: managed agent defaults and preservation warnings.
const (
	LibrarianDescription = "Explores the cached documentation corpus and answers questions with citations."
	LibrarianPrompt      = "You are the librarian. Answer documentation questions using the doc-layer search and read tools. Always cite the document URL for every claim, and say so when the corpus has no answer."
	FoundryDescription   = "Executes repository tasks using the remote doc-layer tools."
	FoundryPrompt        = "You are the foundry. Use the enabled doc-layer tools to carry out repository tasks. Prefer read-only tools for investigation and confirm before destructive operations."

	ReconcilePreservedSetupWarn  = "existing doc-layer toggles were preserved; setup only filled in missing entries"
	ReconcilePreservedRescanWarn = "existing doc-layer toggles were preserved; rescan only added toggles for new tools"
	ReconcilePreservedFix        = "edit opencode.json directly to change a toggle doc-layer already wrote"
)
