// Package document models a single markdown file of the vault: its
// content, frontmatter, title, and the valid/invalid wikilink spans the
// back-populate pipeline consumes.
package document

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/arthur-debert/linkmend/pkg/errors"
	"github.com/arthur-debert/linkmend/pkg/logging"
	"github.com/arthur-debert/linkmend/pkg/wikilink"
)

// LineLink is a valid wikilink found in a document body, with its 1-based
// line number.
type LineLink struct {
	wikilink.ValidLink
	LineNumber int
}

// LineInvalid is an invalid or categorically excluded span in a document
// body, with its 1-based line number and the full line text.
type LineInvalid struct {
	wikilink.InvalidLink
	LineNumber int
	Line       string
}

// Document is one markdown file loaded into memory.
type Document struct {
	Path         string
	RelativePath string
	Title        string
	Content      string
	Frontmatter  *Frontmatter

	// Valid and Invalid hold the wikilinks the bracket scanner found in
	// the body, keyed by line number for per-line exclusion lookups.
	Valid   []LineLink
	Invalid []LineInvalid

	// Modified is set by the applier when Content changed since load.
	Modified bool

	frontmatterLines int
	doNotRegexes     []*regexp.Regexp
}

// Load reads and parses a markdown file from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", path)
	}
	return New(path, string(data))
}

// New builds a Document from in-memory content. The path is still required
// because the document's identity is its file stem.
func New(path, content string) (*Document, error) {
	doc := &Document{
		Path:    path,
		Title:   strings.TrimSuffix(filepath.Base(path), ".md"),
		Content: content,
	}

	fm, fmLines, err := parseFrontmatter(content)
	if err != nil {
		return nil, err
	}
	doc.Frontmatter = fm
	doc.frontmatterLines = fmLines

	doc.doNotRegexes = BuildWordRegexes(doc.frontmatterPatterns())
	doc.extractLinks()

	return doc, nil
}

func (d *Document) frontmatterPatterns() []string {
	if d.Frontmatter == nil {
		return nil
	}
	return d.Frontmatter.DoNotBackPopulate
}

// Aliases returns the document's declared frontmatter aliases.
func (d *Document) Aliases() []string {
	if d.Frontmatter == nil {
		return nil
	}
	return d.Frontmatter.Aliases
}

// DoNotBackPopulateRegexes returns the per-document exclusion patterns
// compiled from frontmatter.
func (d *Document) DoNotBackPopulateRegexes() []*regexp.Regexp {
	return d.doNotRegexes
}

// Lines returns the content split by newline. Line numbers used elsewhere
// are 1-based indexes into this slice.
func (d *Document) Lines() []string {
	return strings.Split(d.Content, "\n")
}

// KnownLinks returns every wikilink this document contributes to the
// corpus-wide alias set: one non-alias entry for its own title, one alias
// entry per declared frontmatter alias, and every valid wikilink found in
// its body.
func (d *Document) KnownLinks() []wikilink.Wikilink {
	links := []wikilink.Wikilink{wikilink.ForFilename(filepath.Base(d.Path))}

	for _, alias := range d.Aliases() {
		links = append(links, wikilink.Wikilink{
			DisplayText: alias,
			Target:      d.Title,
			IsAlias:     alias != d.Title,
		})
	}

	for _, link := range d.Valid {
		links = append(links, link.Wikilink)
	}
	return links
}

// ValidSpansForLine returns the byte spans of valid wikilinks on the given
// line.
func (d *Document) ValidSpansForLine(lineNumber int) [][2]int {
	var spans [][2]int
	for _, link := range d.Valid {
		if link.LineNumber == lineNumber {
			spans = append(spans, [2]int{link.Start, link.End})
		}
	}
	return spans
}

// InvalidSpansForLine returns the byte spans of invalid wikilinks on the
// given line.
func (d *Document) InvalidSpansForLine(lineNumber int) [][2]int {
	var spans [][2]int
	for _, inv := range d.Invalid {
		if inv.LineNumber == lineNumber {
			spans = append(spans, [2]int{inv.Start, inv.End})
		}
	}
	return spans
}

// extractLinks scans the document body for wikilinks, skipping the
// frontmatter block. Line numbers are 1-based over the full content.
func (d *Document) extractLinks() {
	for i, line := range d.Lines() {
		lineNumber := i + 1
		if lineNumber <= d.frontmatterLines {
			continue
		}

		extracted := wikilink.Extract(line)
		for _, v := range extracted.Valid {
			d.Valid = append(d.Valid, LineLink{ValidLink: v, LineNumber: lineNumber})
		}
		for _, inv := range extracted.Invalid {
			d.Invalid = append(d.Invalid, LineInvalid{
				InvalidLink: inv,
				LineNumber:  lineNumber,
				Line:        line,
			})
		}
	}
}

// SetContent replaces the document content and re-extracts link spans.
func (d *Document) SetContent(content string) error {
	updated, err := New(d.Path, content)
	if err != nil {
		return err
	}
	d.Content = updated.Content
	d.Frontmatter = updated.Frontmatter
	d.frontmatterLines = updated.frontmatterLines
	d.Valid = updated.Valid
	d.Invalid = updated.Invalid
	d.doNotRegexes = updated.doNotRegexes
	d.Modified = true
	return nil
}

// Save writes the document back to disk when it was modified. Trailing
// whitespace is trimmed down to a single final newline.
func (d *Document) Save() error {
	if !d.Modified {
		return nil
	}
	logger := logging.GetLogger("document")

	content := strings.TrimRight(d.Content, " \t\n") + "\n"
	if err := os.WriteFile(d.Path, []byte(content), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", d.Path)
	}

	logger.Debug().Str("path", d.Path).Msg("document saved")
	return nil
}

// BuildWordRegexes compiles patterns into case-insensitive whole-word
// matchers. Patterns are quoted, so compilation cannot fail on user text;
// config-level patterns that must support raw regex syntax are compiled in
// the config package instead.
func BuildWordRegexes(patterns []string) []*regexp.Regexp {
	if len(patterns) == 0 {
		return nil
	}
	regexes := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		regexes = append(regexes, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(p)+`\b`))
	}
	return regexes
}
