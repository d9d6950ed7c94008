// Package index compiles the corpus-wide set of known link targets and
// aliases into a single multi-pattern matcher. The index is built once per
// run and treated as immutable afterwards, so it can be shared by parallel
// workers without locking.
package index

import (
	"sort"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"

	"github.com/arthur-debert/linkmend/pkg/logging"
	"github.com/arthur-debert/linkmend/pkg/wikilink"
)

// Hit is one raw automaton match on a line: the byte span and the pattern
// id, which is an index into Links().
type Hit struct {
	Pattern int
	Start   int
	End     int
}

// Index holds the sorted alias list and the automaton recognizing every
// display text case-insensitively.
type Index struct {
	links []wikilink.Wikilink
	ac    ahocorasick.AhoCorasick
}

// Build deduplicates and sorts the given wikilinks, then compiles the
// automaton over their display texts. Pattern ids correspond to positions
// in the sorted slice, so iteration order encodes match priority: longer
// display text first, aliases before non-aliases at equal display text.
func Build(links []wikilink.Wikilink) *Index {
	logger := logging.GetLogger("index")

	seen := make(map[wikilink.Wikilink]struct{}, len(links))
	unique := make([]wikilink.Wikilink, 0, len(links))
	for _, link := range links {
		if _, ok := seen[link]; ok {
			continue
		}
		seen[link] = struct{}{}
		unique = append(unique, link)
	}

	SortLinks(unique)

	patterns := make([]string, len(unique))
	for i, link := range unique {
		patterns[i] = link.DisplayText
	}

	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  false,
		MatchKind:            ahocorasick.StandardMatch,
		DFA:                  true,
	})
	ac := builder.Build(patterns)

	logger.Debug().
		Int("total", len(links)).
		Int("unique", len(unique)).
		Msg("built pattern index")

	return &Index{links: unique, ac: ac}
}

// SortLinks orders wikilinks by descending display-text byte length, then
// display text, then alias before non-alias, then target. The order is
// deterministic for identical input sets.
func SortLinks(links []wikilink.Wikilink) {
	sort.Slice(links, func(i, j int) bool {
		a, b := links[i], links[j]
		if len(a.DisplayText) != len(b.DisplayText) {
			return len(a.DisplayText) > len(b.DisplayText)
		}
		if a.DisplayText != b.DisplayText {
			return a.DisplayText < b.DisplayText
		}
		if a.IsAlias != b.IsAlias {
			return a.IsAlias
		}
		return a.Target < b.Target
	})
}

// Links returns the sorted alias list backing the automaton. Callers must
// not mutate it.
func (ix *Index) Links() []wikilink.Wikilink {
	return ix.links
}

// Link returns the wikilink for an automaton pattern id.
func (ix *Index) Link(pattern int) wikilink.Wikilink {
	return ix.links[pattern]
}

// Len returns the number of distinct patterns in the index.
func (ix *Index) Len() int {
	return len(ix.links)
}

// FindOverlapping reports every automaton hit on the line, including
// overlapping ones, in ascending end-position order. Overlap resolution is
// downstream policy, not the matcher's concern.
func (ix *Index) FindOverlapping(line string) []Hit {
	var hits []Hit
	iter := ix.ac.IterOverlapping(line)
	for next := iter.Next(); next != nil; next = iter.Next() {
		hits = append(hits, Hit{
			Pattern: next.Pattern(),
			Start:   next.Start(),
			End:     next.End(),
		})
	}
	return hits
}
