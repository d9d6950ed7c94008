package match

import (
	"sort"
	"strings"

	"github.com/arthur-debert/linkmend/pkg/logging"
	"github.com/arthur-debert/linkmend/pkg/wikilink"
)

// Partition splits candidate matches into unambiguous, ambiguous, and
// unclassified sets using the full link corpus. A display text that maps
// to more than one distinct target makes every match on that display
// text ambiguous, regardless of which file each match came from.
func Partition(matches []CandidateMatch, links []wikilink.Wikilink) MatchPartition {
	logger := logging.GetLogger("match.resolver")

	// Canonical target casing per lowercased target. When two links
	// disagree on casing, the exact-lowercase form wins so grouping is
	// stable no matter what order links arrive in.
	targetMap := make(map[string]string)
	for _, link := range links {
		lower := strings.ToLower(link.Target)
		existing, ok := targetMap[lower]
		if !ok || (existing != lower && link.Target == lower) {
			targetMap[lower] = link.Target
		}
	}

	// Display text to the set of canonical targets it can refer to.
	displayMap := make(map[string]map[string]struct{})
	for _, link := range links {
		lowerDisplay := strings.ToLower(link.DisplayText)
		canonical := targetMap[strings.ToLower(link.Target)]
		set, ok := displayMap[lowerDisplay]
		if !ok {
			set = make(map[string]struct{})
			displayMap[lowerDisplay] = set
		}
		set[canonical] = struct{}{}
	}

	grouped := make(map[string][]CandidateMatch)
	for _, m := range matches {
		key := strings.ToLower(m.FoundText)
		grouped[key] = append(grouped[key], m)
	}

	keys := make([]string, 0, len(grouped))
	for key := range grouped {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var partition MatchPartition
	for _, key := range keys {
		group := grouped[key]
		targets, known := displayMap[key]
		if !known {
			logger.Warn().
				Str("found_text", group[0].FoundText).
				Str("file", group[0].RelativePath).
				Int("count", len(group)).
				Msg("matched text does not correspond to any known link")
			partition.Unclassified = append(partition.Unclassified, group...)
			continue
		}

		if len(targets) > 1 {
			sorted := make([]string, 0, len(targets))
			for target := range targets {
				sorted = append(sorted, target)
			}
			sort.Strings(sorted)
			partition.Ambiguous = append(partition.Ambiguous, AmbiguousGroup{
				DisplayText: group[0].FoundText,
				Targets:     sorted,
				Matches:     group,
			})
			continue
		}

		partition.Unambiguous = append(partition.Unambiguous, group...)
	}

	return partition
}
