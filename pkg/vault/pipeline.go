package vault

import (
	"context"
	"regexp"
	"sort"
	"sync"
	"time"

	"github.com/arthur-debert/linkmend/pkg/document"
	"github.com/arthur-debert/linkmend/pkg/errors"
	"github.com/arthur-debert/linkmend/pkg/index"
	"github.com/arthur-debert/linkmend/pkg/logging"
	"github.com/arthur-debert/linkmend/pkg/match"
)

// ApplyResult summarizes one apply pass over the vault.
type ApplyResult struct {
	FilesModified  []string
	MatchesApplied int

	// FilesSkipped counts files left untouched because the configured
	// file limit was reached.
	FilesSkipped int

	// Errors holds per-document apply failures. A failed document is
	// left unmodified; the rest of the run proceeds.
	Errors []error
}

// FindMatches runs match collection over every document in parallel and
// partitions the combined candidate set against the full corpus. The
// partition is global: a display text made ambiguous by any two notes is
// ambiguous everywhere. The file filter narrows which documents are
// searched, never the corpus the index and partition are built from.
func (v *Vault) FindMatches(ctx context.Context) (match.MatchPartition, error) {
	logger := logging.GetLogger("vault.pipeline")
	defer logging.LogDuration(time.Now(), "match collection")

	ix := index.Build(v.CorpusLinks())
	globalExclusions := v.Config.DoNotBackPopulateRegexes()

	var mu sync.Mutex
	var all []match.CandidateMatch

	err := v.forEachDocument(ctx, func(doc *document.Document) error {
		if !v.Config.MatchesFileFilter(doc.RelativePath) {
			return nil
		}
		found := collectDocumentMatches(doc, ix, globalExclusions)
		if len(found) == 0 {
			return nil
		}
		mu.Lock()
		all = append(all, found...)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return match.MatchPartition{}, err
	}

	// Collection order depends on goroutine scheduling; sort before
	// partitioning so identical vaults always produce identical output.
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.RelativePath != b.RelativePath {
			return a.RelativePath < b.RelativePath
		}
		if a.LineNumber != b.LineNumber {
			return a.LineNumber < b.LineNumber
		}
		return a.Position < b.Position
	})

	partition := match.Partition(all, ix.Links())

	logger.Info().
		Int("candidates", len(all)).
		Int("unambiguous", len(partition.Unambiguous)).
		Int("ambiguous_groups", len(partition.Ambiguous)).
		Int("unclassified", len(partition.Unclassified)).
		Msg("match collection complete")

	return partition, nil
}

func collectDocumentMatches(doc *document.Document, ix *index.Index, globalExclusions []*regexp.Regexp) []match.CandidateMatch {
	self := match.Identity{
		Path:         doc.Path,
		RelativePath: doc.RelativePath,
		Title:        doc.Title,
		Aliases:      doc.Aliases(),
	}

	var found []match.CandidateMatch
	state := match.NewFileProcessingState()

	for i, line := range doc.Lines() {
		lineNumber := i + 1
		if state.UpdateForLine(line) {
			continue
		}
		if match.LineExempt(line, doc.DoNotBackPopulateRegexes(), globalExclusions) {
			continue
		}

		spans := doc.ValidSpansForLine(lineNumber)
		spans = append(spans, doc.InvalidSpansForLine(lineNumber)...)
		zones := match.CollectExclusionZones(line, spans)

		found = append(found, match.FindMatches(line, lineNumber, ix, zones, self)...)
	}

	return match.FilterSelfReferences(found, self)
}

// Apply writes the unambiguous matches back to their files. Ambiguous and
// unclassified matches are never applied. When the config disables
// apply_changes, nothing is written and the result reflects what a real
// run would have done.
func (v *Vault) Apply(ctx context.Context, partition match.MatchPartition) (*ApplyResult, error) {
	logger := logging.GetLogger("vault.apply")
	result := &ApplyResult{}

	byPath := make(map[string][]match.CandidateMatch)
	for _, m := range partition.Unambiguous {
		byPath[m.DocumentPath] = append(byPath[m.DocumentPath], m)
	}
	if len(byPath) == 0 {
		return result, nil
	}

	docsByPath := make(map[string]*document.Document, len(v.Documents))
	for _, doc := range v.Documents {
		docsByPath[doc.Path] = doc
	}

	// Deterministic file order so the file limit always cuts off the
	// same files for the same vault.
	paths := make([]string, 0, len(byPath))
	for path := range byPath {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	if v.Config.FileLimit > 0 && len(paths) > v.Config.FileLimit {
		result.FilesSkipped = len(paths) - v.Config.FileLimit
		paths = paths[:v.Config.FileLimit]
	}

	var mu sync.Mutex
	selected := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		selected[path] = struct{}{}
	}

	// Per-document failures abort that document's edit but never the
	// run: the remaining documents are still applied and the failures
	// surface on the result.
	recordFailure := func(doc *document.Document, err error) {
		logger.Error().Err(err).Str("file", doc.RelativePath).Msg("apply failed for document")
		mu.Lock()
		result.Errors = append(result.Errors, errors.Wrapf(err, errors.GetErrorCode(err),
			"apply failed for %s", doc.RelativePath))
		mu.Unlock()
	}

	err := v.forEachDocument(ctx, func(doc *document.Document) error {
		if _, ok := selected[doc.Path]; !ok {
			return nil
		}
		matches := byPath[doc.Path]

		updated, err := match.Apply(doc.Content, matches)
		if err != nil {
			recordFailure(doc, err)
			return nil
		}

		if v.Config.ApplyChanges {
			if err := doc.SetContent(updated); err != nil {
				recordFailure(doc, err)
				return nil
			}
			if err := doc.Save(); err != nil {
				recordFailure(doc, err)
				return nil
			}
		}

		mu.Lock()
		result.FilesModified = append(result.FilesModified, doc.RelativePath)
		result.MatchesApplied += len(matches)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(result.FilesModified)

	logger.Info().
		Int("files", len(result.FilesModified)).
		Int("matches", result.MatchesApplied).
		Bool("applied", v.Config.ApplyChanges).
		Msg("apply pass complete")

	return result, nil
}
