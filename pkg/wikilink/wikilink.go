// Package wikilink defines the wikilink data model and the per-line
// bracket scanner that extracts valid and invalid wikilinks with their
// byte spans.
package wikilink

import (
	"fmt"
	"strings"
)

// Wikilink is one known link target together with the display text users
// write in prose. When IsAlias is false, DisplayText equals Target.
type Wikilink struct {
	DisplayText string
	Target      string
	IsAlias     bool
}

func (w Wikilink) String() string {
	if w.IsAlias {
		return fmt.Sprintf("%s|%s", w.Target, w.DisplayText)
	}
	return w.Target
}

// ForFilename builds the non-alias wikilink for a document filename,
// stripping the .md extension if present.
func ForFilename(filename string) Wikilink {
	display := strings.TrimSuffix(filename, ".md")
	return Wikilink{
		DisplayText: display,
		Target:      display,
		IsAlias:     false,
	}
}

// ToWikilink converts a target to link form by surrounding it with [[ ]],
// stripping a trailing .md extension first.
func ToWikilink(target string) string {
	return "[[" + strings.TrimSuffix(target, ".md") + "]]"
}

// ToAliasedWikilink builds an aliased wikilink [[target|display]]. When the
// display text equals the target exactly (case-sensitive), the simple form
// is returned instead.
func ToAliasedWikilink(target, displayText string) string {
	stripped := strings.TrimSuffix(target, ".md")
	if stripped == displayText {
		return ToWikilink(stripped)
	}
	return fmt.Sprintf("[[%s|%s]]", stripped, displayText)
}
