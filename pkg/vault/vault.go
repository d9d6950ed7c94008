// Package vault scans a markdown vault, builds the corpus-wide link
// index, and drives the back-populate pipeline: parallel match
// collection, a single global ambiguity partition, and parallel
// application of the surviving replacements.
package vault

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/arthur-debert/linkmend/pkg/config"
	"github.com/arthur-debert/linkmend/pkg/document"
	"github.com/arthur-debert/linkmend/pkg/errors"
	"github.com/arthur-debert/linkmend/pkg/logging"
	"github.com/arthur-debert/linkmend/pkg/wikilink"
)

// Vault is the loaded corpus: every markdown file under the root that
// survived the ignore filters. The file filter never shrinks the corpus;
// it only restricts which documents are processed for matches.
type Vault struct {
	Root      string
	Config    *config.Config
	Documents []*document.Document
}

// Scan walks the vault root, loads every markdown file in parallel, and
// returns the documents sorted by relative path. All documents load even
// when a file filter is set, so titles and aliases from filtered-out
// notes still feed the corpus.
func Scan(ctx context.Context, cfg *config.Config) (*Vault, error) {
	logger := logging.GetLogger("vault")
	defer logging.LogDuration(time.Now(), "vault scan")

	var paths []string
	err := filepath.WalkDir(cfg.VaultPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != cfg.VaultPath && (cfg.IgnoresFolder(d.Name()) || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".md" {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrVaultScan, "failed to scan vault %s", cfg.VaultPath)
	}

	docs := make([]*document.Document, len(paths))
	loadErrs := make([]error, len(paths))

	sem := semaphore.NewWeighted(int64(runtime.NumCPU()))
	for i, path := range paths {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		go func(i int, path string) {
			defer sem.Release(1)
			doc, err := document.Load(path)
			if err != nil {
				loadErrs[i] = err
				return
			}
			rel, _ := filepath.Rel(cfg.VaultPath, path)
			doc.RelativePath = filepath.ToSlash(rel)
			docs[i] = doc
		}(i, path)
	}
	if err := sem.Acquire(ctx, int64(runtime.NumCPU())); err != nil {
		return nil, err
	}

	loaded := make([]*document.Document, 0, len(docs))
	for i, doc := range docs {
		if loadErrs[i] != nil {
			logger.Warn().Err(loadErrs[i]).Str("path", paths[i]).Msg("skipping unreadable document")
			continue
		}
		loaded = append(loaded, doc)
	}
	sort.Slice(loaded, func(i, j int) bool {
		return loaded[i].RelativePath < loaded[j].RelativePath
	})

	logger.Info().
		Int("files", len(loaded)).
		Str("root", cfg.VaultPath).
		Msg("vault scanned")

	return &Vault{Root: cfg.VaultPath, Config: cfg, Documents: loaded}, nil
}

// CorpusLinks aggregates every document's contribution to the alias set:
// titles, frontmatter aliases, and wikilinks already present in bodies.
func (v *Vault) CorpusLinks() []wikilink.Wikilink {
	var links []wikilink.Wikilink
	for _, doc := range v.Documents {
		links = append(links, doc.KnownLinks()...)
	}
	return links
}

// forEachDocument runs fn over all documents with bounded parallelism and
// returns the first error encountered, if any. All documents are visited
// even when some fail.
func (v *Vault) forEachDocument(ctx context.Context, fn func(*document.Document) error) error {
	workers := int64(runtime.NumCPU())
	sem := semaphore.NewWeighted(workers)

	var mu sync.Mutex
	var firstErr error

	for _, doc := range v.Documents {
		if err := sem.Acquire(ctx, 1); err != nil {
			return err
		}
		go func(doc *document.Document) {
			defer sem.Release(1)
			if err := fn(doc); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(doc)
	}
	if err := sem.Acquire(ctx, workers); err != nil {
		return err
	}
	return firstErr
}
