package match

import (
	"sort"
	"strings"

	"github.com/arthur-debert/linkmend/pkg/errors"
)

// Apply rewrites content with the given matches and returns the updated
// text. Matches on the same line are applied right to left so earlier
// byte positions stay valid while later spans are replaced.
//
// Every match is re-verified against the current line text before it is
// applied. A mismatch means the match set is stale for this content and
// aborts the whole application rather than corrupt the file.
func Apply(content string, matches []CandidateMatch) (string, error) {
	if len(matches) == 0 {
		return content, nil
	}

	lines := strings.Split(content, "\n")

	byLine := make(map[int][]CandidateMatch)
	for _, m := range matches {
		byLine[m.LineNumber] = append(byLine[m.LineNumber], m)
	}

	lineNumbers := make([]int, 0, len(byLine))
	for n := range byLine {
		lineNumbers = append(lineNumbers, n)
	}
	sort.Ints(lineNumbers)

	for _, n := range lineNumbers {
		if n < 1 || n > len(lines) {
			return "", errors.Newf(errors.ErrApplyConsistency,
				"match references line %d but content has %d lines", n, len(lines))
		}

		lineMatches := byLine[n]
		sort.Slice(lineMatches, func(i, j int) bool {
			return lineMatches[i].Position > lineMatches[j].Position
		})

		line := lines[n-1]
		for _, m := range lineMatches {
			end := m.Position + len(m.FoundText)
			if m.Position < 0 || end > len(line) || line[m.Position:end] != m.FoundText {
				return "", errors.Newf(errors.ErrApplyConsistency,
					"line %d no longer contains %q at position %d", n, m.FoundText, m.Position)
			}
			line = line[:m.Position] + m.Replacement + line[end:]
		}

		if strings.Count(line, "[[") != strings.Count(line, "]]") {
			return "", errors.Newf(errors.ErrApplyBrackets,
				"unbalanced wikilink brackets on line %d after replacement: %q", n, line)
		}

		lines[n-1] = line
	}

	return strings.Join(lines, "\n"), nil
}
