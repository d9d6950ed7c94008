package match

import (
	"regexp"
	"sort"

	"github.com/arthur-debert/linkmend/pkg/wikilink"
)

// Zone is a half-open byte range [Start, End) within one line that must
// not be treated as matchable plain text.
type Zone struct {
	Start int
	End   int
}

// CollectExclusionZones computes the off-limits byte ranges for a single
// line: the pre-identified link spans recorded for exactly that line
// (valid wikilinks and invalid-link records) plus markdown-style
// [text](url) links detected here. Zones may overlap; later containment
// checks only need a superset test. The result is sorted by start offset
// and must be recomputed for every line.
func CollectExclusionZones(line string, linkSpans [][2]int) []Zone {
	var zones []Zone

	for _, span := range linkSpans {
		zones = append(zones, Zone{Start: span[0], End: span[1]})
	}

	for _, loc := range wikilink.MarkdownLinkRegex.FindAllStringIndex(line, -1) {
		zones = append(zones, Zone{Start: loc[0], End: loc[1]})
	}

	sort.Slice(zones, func(i, j int) bool { return zones[i].Start < zones[j].Start })
	return zones
}

// rangeOverlaps reports whether [start, end) intersects any zone.
func rangeOverlaps(zones []Zone, start, end int) bool {
	for _, z := range zones {
		if (start >= z.Start && start < z.End) ||
			(end > z.Start && end <= z.End) ||
			(start <= z.Start && end >= z.End) {
			return true
		}
	}
	return false
}

// LineExempt reports whether a line matches one of the
// do-not-back-populate patterns. A matching line produces no candidate
// matches at all.
func LineExempt(line string, regexSets ...[]*regexp.Regexp) bool {
	for _, set := range regexSets {
		for _, re := range set {
			if re.MatchString(line) {
				return true
			}
		}
	}
	return false
}
