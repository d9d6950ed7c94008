package match

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/arthur-debert/linkmend/pkg/index"
	"github.com/arthur-debert/linkmend/pkg/wikilink"
)

// FindMatches runs the pattern index over one classified,
// exclusion-filtered line and emits candidate matches in left-to-right
// byte order. Overlapping raw hits are resolved by index priority: the
// automaton's pattern order already encodes longer-display-first and
// alias-before-non-alias, so the lowest pattern id wins and the loser is
// dropped entirely.
func FindMatches(line string, lineNumber int, ix *index.Index, zones []Zone, self Identity) []CandidateMatch {
	hits := ix.FindOverlapping(line)
	if len(hits) == 0 {
		return nil
	}

	// Priority order first, so higher-priority hits claim their spans
	// before lower-priority overlapping ones are considered.
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Pattern != hits[j].Pattern {
			return hits[i].Pattern < hits[j].Pattern
		}
		return hits[i].Start < hits[j].Start
	})

	var accepted []index.Hit
	taken := make([]Zone, 0, len(hits))

	for _, hit := range hits {
		if rangeOverlaps(zones, hit.Start, hit.End) {
			continue
		}
		if !isWordBoundary(line, hit.Start, hit.End) {
			continue
		}
		if isOwnIdentity(line[hit.Start:hit.End], self) {
			continue
		}
		if rangeOverlaps(taken, hit.Start, hit.End) {
			continue
		}
		accepted = append(accepted, hit)
		taken = append(taken, Zone{Start: hit.Start, End: hit.End})
	}

	sort.Slice(accepted, func(i, j int) bool { return accepted[i].Start < accepted[j].Start })

	matches := make([]CandidateMatch, 0, len(accepted))
	for _, hit := range accepted {
		link := ix.Link(hit.Pattern)
		foundText := line[hit.Start:hit.End]

		var replacement string
		if foundText == link.Target {
			replacement = wikilink.ToWikilink(link.Target)
		} else {
			replacement = wikilink.ToAliasedWikilink(link.Target, foundText)
		}

		inTable := isInMarkdownTable(line, foundText)
		if inTable {
			replacement = strings.ReplaceAll(replacement, "|", `\|`)
		}

		matches = append(matches, CandidateMatch{
			DocumentPath: self.Path,
			RelativePath: self.RelativePath,
			LineNumber:   lineNumber,
			Position:     hit.Start,
			LineText:     line,
			FoundText:    foundText,
			Target:       link.Target,
			Replacement:  replacement,
			InTable:      inTable,
		})
	}

	return matches
}

// isOwnIdentity reports whether the matched text is the document's own
// title or one of its declared aliases.
func isOwnIdentity(matchedText string, self Identity) bool {
	if strings.EqualFold(matchedText, self.Title) {
		return true
	}
	for _, alias := range self.Aliases {
		if strings.EqualFold(matchedText, alias) {
			return true
		}
	}
	return false
}

// isWordBoundary checks that the match neither starts nor ends in the
// middle of a word. A trailing 't or ’t contraction (as in "doesn't")
// also breaks the end boundary; possessives do not.
func isWordBoundary(line string, start, end int) bool {
	isWordChar := func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
	}

	startOK := start == 0
	if !startOK {
		r, _ := utf8.DecodeLastRuneInString(line[:start])
		startOK = !isWordChar(r)
	}

	endOK := end == len(line)
	if !endOK {
		after := line[end:]
		r, _ := utf8.DecodeRuneInString(after)
		endOK = !isWordChar(r) && !isTContraction(after)
	}

	return startOK && endOK
}

func isTContraction(s string) bool {
	r1, size := utf8.DecodeRuneInString(s)
	if r1 != '\'' && r1 != '’' {
		return false
	}
	r2, _ := utf8.DecodeRuneInString(s[size:])
	return r2 == 't' || r2 == 'T'
}

// isInMarkdownTable loosely detects a table row: the trimmed line is
// pipe-delimited on both ends with at least one interior pipe, and the
// matched text appears within it.
func isInMarkdownTable(line, matchedText string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "|") &&
		strings.HasSuffix(trimmed, "|") &&
		strings.Count(trimmed, "|") > 2 &&
		strings.Contains(trimmed, matchedText)
}
