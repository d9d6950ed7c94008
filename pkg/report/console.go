package report

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/linkmend/pkg/match"
	"github.com/arthur-debert/linkmend/pkg/vault"
)

// TerminalRenderer produces the styled run summary shown on stdout.
type TerminalRenderer struct {
	// NoColor disables pterm styling, for non-tty output.
	NoColor bool
}

// NewTerminalRenderer creates a renderer. Styling is decided by the
// caller, which knows whether stdout is a terminal.
func NewTerminalRenderer(noColor bool) *TerminalRenderer {
	if noColor {
		pterm.DisableStyling()
	}
	return &TerminalRenderer{NoColor: noColor}
}

// RenderSummary renders the run outcome: what was (or would be) changed,
// and what needs a human decision.
func (r *TerminalRenderer) RenderSummary(partition match.MatchPartition, result *vault.ApplyResult, applied bool) string {
	var b strings.Builder

	verb := "would change"
	if applied {
		verb = "changed"
	}

	fileCount := 0
	if result != nil {
		fileCount = len(result.FilesModified)
	}

	headline := fmt.Sprintf("%d replacement(s) %s %d file(s)", len(partition.Unambiguous), verb, fileCount)
	b.WriteString(pterm.Bold.Sprint(headline) + "\n")

	if result != nil {
		for _, path := range result.FilesModified {
			b.WriteString(fmt.Sprintf("  %s %s\n", pterm.Info.Prefix.Text, path))
		}
		if result.FilesSkipped > 0 {
			b.WriteString(pterm.Warning.MessageStyle.Sprintf("  %d file(s) skipped by file limit\n", result.FilesSkipped))
		}
		for _, err := range result.Errors {
			b.WriteString(fmt.Sprintf("  %s %s\n", pterm.Error.Prefix.Text, err.Error()))
		}
	}

	if len(partition.Ambiguous) > 0 {
		b.WriteString("\n")
		b.WriteString(pterm.Warning.MessageStyle.Sprintf("%d ambiguous group(s) left unchanged:", len(partition.Ambiguous)) + "\n")
		for _, group := range partition.Ambiguous {
			b.WriteString(fmt.Sprintf("  %q could link to %s (%d occurrence(s))\n",
				group.DisplayText, strings.Join(group.Targets, " or "), len(group.Matches)))
		}
	}

	if len(partition.Unclassified) > 0 {
		b.WriteString("\n")
		b.WriteString(pterm.Error.MessageStyle.Sprintf("%d unclassified match(es) left unchanged", len(partition.Unclassified)) + "\n")
	}

	if !applied && len(partition.Unambiguous) > 0 {
		b.WriteString("\n")
		b.WriteString("Preview only. Set apply_changes to write these replacements.\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
