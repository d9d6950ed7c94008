package match

import "strings"

// FilterSelfReferences drops matches whose target resolves back to the
// document they were found in. The finder already rejects hits on a
// file's own title and aliases by display text; this catches the
// remaining case where an alias of another note shares the target.
func FilterSelfReferences(matches []CandidateMatch, self Identity) []CandidateMatch {
	kept := matches[:0]
	for _, m := range matches {
		if strings.EqualFold(m.Target, self.Title) {
			continue
		}
		kept = append(kept, m)
	}
	return kept
}
