package setup

import (
	"fmt"
	"io"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/fatih/color"

	"github.com/conn-castle/doc-layer/internal/messages"
	"github.com/conn-castle/doc-layer/internal/reconcile"
	"github.com/conn-castle/doc-layer/internal/warnings"
)

// report collects everything the user-facing summary block needs.
type report struct {
	Mode          reconcile.Mode
	DryRun        bool
	Summary       reconcile.Summary
	ServerCreated bool
	Changed       bool
	OldText       string
	NewText       string
	MigratedFrom  string
	MigratedTo    string
	Warnings      []warnings.Warning
}

// render writes the report block. Layout is fixed; colorize only changes
// styling.
func render(w io.Writer, colorize bool, r report) {
	headerColor := color.New(color.Bold)
	warnColor := color.New(color.FgYellow)
	if !colorize {
		headerColor.DisableColor()
		warnColor.DisableColor()
	}

	header := messages.ReportSetupHeader
	if r.Mode == reconcile.ModeRescan {
		header = messages.ReportRescanHeader
	}
	_, _ = headerColor.Fprintln(w, header)
	if r.DryRun {
		_, _ = fmt.Fprintln(w, messages.ReportDryRunNote)
	}

	_, _ = fmt.Fprintf(w, messages.ReportProfileFmt+"\n", r.Summary.Profile)
	_, _ = fmt.Fprintf(w, messages.ReportToolCountFmt+"\n", r.Summary.ToolCount)
	_, _ = fmt.Fprintf(w, messages.ReportLibrarianFmt+"\n", r.Summary.LibrarianEnabled)
	_, _ = fmt.Fprintf(w, messages.ReportFoundryFmt+"\n", r.Summary.FoundryEnabled)
	if r.ServerCreated {
		_, _ = fmt.Fprintln(w, messages.ReportServerCreated)
	}
	if r.Summary.PreservedExistingToggles {
		_, _ = fmt.Fprintln(w, messages.ReportPreserved)
	}
	if r.MigratedFrom != "" {
		_, _ = fmt.Fprintf(w, messages.ReportMigratedFmt+"\n", r.MigratedFrom, r.MigratedTo)
	}

	if r.DryRun {
		_, _ = fmt.Fprintln(w)
		if r.Changed {
			diff := strings.TrimSpace(udiff.Unified(
				messages.ReportDiffCurrent,
				messages.ReportDiffPatched,
				r.OldText,
				r.NewText,
			))
			_, _ = fmt.Fprintln(w, diff)
		} else {
			_, _ = fmt.Fprintln(w, messages.ReportNoConfigChanges)
		}
	}

	if len(r.Warnings) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = warnColor.Fprintln(w, messages.ReportWarningsHeader)
		for _, warn := range r.Warnings {
			_, _ = warnColor.Fprintf(w, messages.ReportWarningItemFmt+"\n", warn.String())
		}
	}
}
