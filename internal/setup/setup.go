// Package setup drives one reconciliation run: read the host config,
// discover server tools, patch the document, and write it back with a
// user-facing report.
package setup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/conn-castle/doc-layer/internal/credentials"
	"github.com/conn-castle/doc-layer/internal/discovery"
	"github.com/conn-castle/doc-layer/internal/hostconfig"
	"github.com/conn-castle/doc-layer/internal/jsontree"
	"github.com/conn-castle/doc-layer/internal/messages"
	"github.com/conn-castle/doc-layer/internal/profile"
	"github.com/conn-castle/doc-layer/internal/reconcile"
	"github.com/conn-castle/doc-layer/internal/terminal"
	"github.com/conn-castle/doc-layer/internal/warnings"
)

// Classifier determines the repository profile. Injected for tests.
type Classifier func(root string) (profile.Profile, []string)

// Options configures one Run invocation.
type Options struct {
	Mode reconcile.Mode
	// ServerURL is the raw user-supplied URL; setup mode only. Rescan
	// reuses the URL recorded in the managed server entry.
	ServerURL string
	// DryRun renders the would-be changes as a unified diff without
	// touching any file.
	DryRun bool
	// Global targets the user-level config instead of the repo one.
	Global  bool
	Version string

	Credentials credentials.Provider
	Discoverer  discovery.Discoverer
	// Classifier defaults to profile.Classify.
	Classifier Classifier
	// Out receives the report; nil means stdout with color when it is a
	// terminal.
	Out io.Writer
}

// Run executes one setup or rescan pass against the config under root.
func Run(ctx context.Context, sys hostconfig.System, root string, opts Options) error {
	out := opts.Out
	colorize := false
	if out == nil {
		out = os.Stdout
		colorize = terminal.OutputIsTerminal()
	}
	classifier := opts.Classifier
	if classifier == nil {
		classifier = profile.Classify
	}

	token, err := opts.Credentials.Token()
	if err != nil {
		return err
	}

	path := hostconfig.Path(root)
	if opts.Global {
		path, err = hostconfig.GlobalPath()
		if err != nil {
			return err
		}
	}

	current, found, err := hostconfig.Read(sys, path)
	if err != nil {
		return err
	}

	// The legacy dotfile is repo-local; global runs never migrate it.
	var legacyDoc *jsontree.Value
	legacyFound := false
	legacyPath := hostconfig.LegacyPath(root)
	if !opts.Global {
		legacyDoc, legacyFound, err = hostconfig.ReadLegacy(sys, legacyPath)
		if err != nil {
			return err
		}
	}
	merged := hostconfig.MergeLegacy(current, legacyDoc)

	var warns []warnings.Warning

	prof, reasons := classifier(root)
	if prof == profile.Unknown {
		warns = append(warns, warnings.Warning{
			Code:    warnings.CodeProfileUnknown,
			Subject: root,
			Message: fmt.Sprintf(messages.ProfileUnknownWarnFmt, strings.Join(reasons, "; ")),
		})
	}

	serverURL, urlWarns, err := resolveServerURL(opts, merged)
	if err != nil {
		return err
	}
	warns = append(warns, urlWarns...)

	toolNames, err := opts.Discoverer.ListTools(ctx, serverURL, token)
	if err != nil {
		return fmt.Errorf(messages.DiscoveryFailedFmt, serverURL, err)
	}
	if len(toolNames) == 0 {
		return fmt.Errorf(messages.DiscoveryNoToolsFmt, serverURL)
	}

	result := reconcile.Apply(merged, reconcile.Input{
		Mode:      opts.Mode,
		ServerURL: serverURL,
		ToolNames: toolNames,
		Profile:   prof,
		Allowlist: reconcile.ComputeAllowlist(prof, toolNames),
		Version:   opts.Version,
	})
	warns = append(warns, result.Warnings...)

	if opts.Mode == reconcile.ModeSetup && !result.ServerCreated {
		if existing := reconcile.ServerURL(result.Doc); existing != "" && existing != serverURL {
			warns = append(warns, warnings.Warning{
				Code:    warnings.CodeServerURLMismatch,
				Subject: reconcile.ServerKey,
				Message: fmt.Sprintf(messages.ServerMismatchWarnFmt, serverURL),
				Fix:     messages.ServerMismatchFix,
			})
		}
	}

	oldText := ""
	if found {
		oldText = string(jsontree.Encode(current))
	}
	newText := string(jsontree.Encode(result.Doc))

	rep := report{
		Mode:          opts.Mode,
		DryRun:        opts.DryRun,
		Summary:       result.Summary,
		ServerCreated: result.ServerCreated,
		Changed:       newText != oldText,
		OldText:       oldText,
		NewText:       newText,
	}

	if opts.DryRun {
		rep.Warnings = warns
		render(out, colorize, rep)
		return nil
	}

	if rep.Changed {
		if err := hostconfig.Write(sys, path, result.Doc); err != nil {
			return err
		}
	}

	var migrationErr error
	if legacyFound {
		backup, err := hostconfig.BackupLegacy(sys, legacyPath)
		if err != nil {
			migrationErr = fmt.Errorf(messages.MigrationFailedFmt, err)
			warns = append(warns, warnings.Warning{
				Code:    warnings.CodeLegacyBackupFailed,
				Subject: legacyPath,
				Message: migrationErr.Error(),
			})
		} else {
			rep.MigratedFrom = legacyPath
			rep.MigratedTo = backup
		}
	}

	rep.Warnings = warns
	render(out, colorize, rep)
	return migrationErr
}

// resolveServerURL picks the server URL for this run: normalized user
// input for setup, the recorded entry for rescan.
func resolveServerURL(opts Options, doc *jsontree.Value) (string, []warnings.Warning, error) {
	if opts.Mode == reconcile.ModeSetup {
		return discovery.NormalizeURL(opts.ServerURL)
	}
	serverURL := reconcile.ServerURL(doc)
	if serverURL == "" {
		return "", nil, errors.New(messages.RescanMissingServer)
	}
	return serverURL, nil, nil
}
