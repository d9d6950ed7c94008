// Package report renders run results two ways: a markdown report
// written into the vault and a styled terminal summary.
package report

import "strings"

// Alignment controls a markdown table column's separator row.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Table accumulates rows for one markdown table. Cell content is written
// verbatim; callers escape pipes and brackets where the content could
// break table or link syntax.
type Table struct {
	Header     []string
	Alignments []Alignment
	Rows       [][]string
}

// NewTable creates a table with the given header. Columns without an
// explicit alignment render left-aligned.
func NewTable(header []string, alignments ...Alignment) *Table {
	return &Table{Header: header, Alignments: alignments}
}

// AddRow appends one row. Short rows are padded with empty cells.
func (t *Table) AddRow(cells ...string) {
	for len(cells) < len(t.Header) {
		cells = append(cells, "")
	}
	t.Rows = append(t.Rows, cells)
}

// Render produces the markdown table, one trailing newline included.
func (t *Table) Render() string {
	var b strings.Builder

	b.WriteString("| " + strings.Join(t.Header, " | ") + " |\n")

	separators := make([]string, len(t.Header))
	for i := range t.Header {
		align := AlignLeft
		if i < len(t.Alignments) {
			align = t.Alignments[i]
		}
		switch align {
		case AlignCenter:
			separators[i] = ":---:"
		case AlignRight:
			separators[i] = "---:"
		default:
			separators[i] = "---"
		}
	}
	b.WriteString("| " + strings.Join(separators, " | ") + " |\n")

	for _, row := range t.Rows {
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}

	return b.String()
}

// EscapePipes protects cell content from being read as a column break.
func EscapePipes(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// EscapeBrackets prevents cell content from rendering as a wikilink when
// the report itself lives inside the vault.
func EscapeBrackets(s string) string {
	s = strings.ReplaceAll(s, "[[", `\[\[`)
	return strings.ReplaceAll(s, "]]", `\]\]`)
}

// HighlightMatch bolds the first occurrence of found inside line, after
// escaping, so the reader can spot the text that will change.
func HighlightMatch(line, found string) string {
	idx := strings.Index(line, found)
	if idx < 0 {
		return EscapePipes(EscapeBrackets(line))
	}
	before := EscapePipes(EscapeBrackets(line[:idx]))
	after := EscapePipes(EscapeBrackets(line[idx+len(found):]))
	return before + "**" + EscapePipes(EscapeBrackets(found)) + "**" + after
}
