// Package match implements the back-populate matching engine: per-line
// classification, exclusion-zone arithmetic, candidate match discovery,
// corpus-wide ambiguity resolution, and replacement application.
package match

// CandidateMatch is one place where a known display text occurs as plain
// text and could become a wikilink.
type CandidateMatch struct {
	DocumentPath string
	RelativePath string
	LineNumber   int
	Position     int
	LineText     string
	FoundText    string
	Target       string
	Replacement  string
	InTable      bool
}

// AmbiguousGroup collects every match for one display text that resolves
// to more than one distinct target corpus-wide.
type AmbiguousGroup struct {
	DisplayText string
	Targets     []string
	Matches     []CandidateMatch
}

// MatchPartition is the corpus-wide split of candidate matches. It is
// recomputed from scratch whenever the candidate set changes, never
// mutated in place.
type MatchPartition struct {
	Unambiguous []CandidateMatch
	Ambiguous   []AmbiguousGroup

	// Unclassified holds matches whose found text maps to no known
	// display text. They indicate an index/finder mismatch and are never
	// auto-applied.
	Unclassified []CandidateMatch
}

// AmbiguousMatches flattens the ambiguous groups into a single slice.
func (p MatchPartition) AmbiguousMatches() []CandidateMatch {
	var all []CandidateMatch
	for _, g := range p.Ambiguous {
		all = append(all, g.Matches...)
	}
	return all
}

// Identity is the document-side information the finder needs: where the
// match lives and what the document itself is called.
type Identity struct {
	Path         string
	RelativePath string
	Title        string
	Aliases      []string
}
