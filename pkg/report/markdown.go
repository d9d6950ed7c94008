package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/linkmend/pkg/errors"
	"github.com/arthur-debert/linkmend/pkg/match"
	"github.com/arthur-debert/linkmend/pkg/vault"
)

// Markdown renders the full run report: a summary, the replacements that
// will be (or were) applied grouped by file, the ambiguous groups that
// need a human decision, and anything unclassified.
type Markdown struct {
	Partition match.MatchPartition
	Result    *vault.ApplyResult
	Applied   bool
	Timestamp time.Time
}

// WriteFile writes the rendered report to path.
func (r *Markdown) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrReportWrite, "failed to create report %s", path)
	}
	defer f.Close()
	if err := r.Write(f); err != nil {
		return errors.Wrapf(err, errors.ErrReportWrite, "failed to write report %s", path)
	}
	return nil
}

// Write renders the report to w.
func (r *Markdown) Write(w io.Writer) error {
	var b strings.Builder

	b.WriteString("# back populate report\n\n")

	ts := r.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	b.WriteString(ts.Format("2006-01-02 15:04") + "\n\n")

	r.writeSummary(&b)
	r.writeReplacements(&b)
	r.writeAmbiguous(&b)
	r.writeUnclassified(&b)

	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Markdown) writeSummary(b *strings.Builder) {
	verb := "would be applied"
	if r.Applied {
		verb = "applied"
	}

	fileCount := 0
	if r.Result != nil {
		fileCount = len(r.Result.FilesModified)
	}

	fmt.Fprintf(b, "%d replacement(s) %s across %d file(s). ", len(r.Partition.Unambiguous), verb, fileCount)
	fmt.Fprintf(b, "%d ambiguous group(s), %d unclassified match(es).\n\n", len(r.Partition.Ambiguous), len(r.Partition.Unclassified))

	if r.Result != nil && r.Result.FilesSkipped > 0 {
		fmt.Fprintf(b, "%d file(s) skipped by the file limit.\n\n", r.Result.FilesSkipped)
	}
}

func (r *Markdown) writeReplacements(b *strings.Builder) {
	if len(r.Partition.Unambiguous) == 0 {
		return
	}

	b.WriteString("## replacements\n\n")

	byFile := groupByFile(r.Partition.Unambiguous)
	for _, group := range byFile {
		fmt.Fprintf(b, "### %s\n\n", group.path)

		table := NewTable(
			[]string{"line", "text", "will become"},
			AlignRight, AlignLeft, AlignLeft,
		)
		for _, m := range group.matches {
			table.AddRow(
				strconv.Itoa(m.LineNumber),
				HighlightMatch(m.LineText, m.FoundText),
				EscapePipes(EscapeBrackets(m.Replacement)),
			)
		}
		b.WriteString(table.Render())
		b.WriteString("\n")
	}
}

func (r *Markdown) writeAmbiguous(b *strings.Builder) {
	if len(r.Partition.Ambiguous) == 0 {
		return
	}

	b.WriteString("## ambiguous\n\n")
	b.WriteString("These occurrences match more than one note and were not changed.\n\n")

	table := NewTable(
		[]string{"text", "could link to", "occurrences"},
		AlignLeft, AlignLeft, AlignRight,
	)
	for _, group := range r.Partition.Ambiguous {
		table.AddRow(
			EscapePipes(group.DisplayText),
			EscapePipes(strings.Join(group.Targets, ", ")),
			strconv.Itoa(len(group.Matches)),
		)
	}
	b.WriteString(table.Render())
	b.WriteString("\n")
}

func (r *Markdown) writeUnclassified(b *strings.Builder) {
	if len(r.Partition.Unclassified) == 0 {
		return
	}

	b.WriteString("## unclassified\n\n")
	b.WriteString("These matches no longer correspond to any known note and were not changed.\n\n")

	table := NewTable([]string{"file", "line", "text"}, AlignLeft, AlignRight, AlignLeft)
	for _, m := range r.Partition.Unclassified {
		table.AddRow(
			EscapePipes(m.RelativePath),
			strconv.Itoa(m.LineNumber),
			EscapePipes(EscapeBrackets(m.FoundText)),
		)
	}
	b.WriteString(table.Render())
	b.WriteString("\n")
}

type fileGroup struct {
	path    string
	matches []match.CandidateMatch
}

// groupByFile preserves the partition's relative-path ordering, which is
// already sorted by the pipeline.
func groupByFile(matches []match.CandidateMatch) []fileGroup {
	var groups []fileGroup
	index := make(map[string]int)
	for _, m := range matches {
		i, ok := index[m.RelativePath]
		if !ok {
			i = len(groups)
			index[m.RelativePath] = i
			groups = append(groups, fileGroup{path: m.RelativePath})
		}
		groups[i].matches = append(groups[i].matches, m)
	}
	for i := range groups {
		ms := groups[i].matches
		sort.Slice(ms, func(a, b int) bool {
			if ms[a].LineNumber != ms[b].LineNumber {
				return ms[a].LineNumber < ms[b].LineNumber
			}
			return ms[a].Position < ms[b].Position
		})
	}
	sort.Slice(groups, func(a, b int) bool { return groups[a].path < groups[b].path })
	return groups
}
