// Package config loads and validates linkmend's runtime configuration:
// the vault location, the apply/preview switch, scan filters, and the
// global do-not-back-populate patterns.
package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/arthur-debert/linkmend/pkg/errors"
)

// Config is the effective runtime configuration after defaults, config
// file, and environment variables are merged.
type Config struct {
	// VaultPath is the root of the markdown vault. Required.
	VaultPath string `koanf:"vault_path"`

	// ApplyChanges writes replacements back to disk. When false the run
	// is a preview: everything is computed and reported, nothing written.
	ApplyChanges bool `koanf:"apply_changes"`

	// FileLimit caps how many files may be modified in one run. Zero
	// means no limit.
	FileLimit int `koanf:"file_limit"`

	// FileFilter restricts match collection to files whose relative path
	// contains the given substring. The whole vault is still scanned so
	// the alias corpus stays complete. Empty matches everything.
	FileFilter string `koanf:"file_filter"`

	// IgnoreFolders are vault-relative directory names excluded from the
	// scan.
	IgnoreFolders []string `koanf:"ignore_folders"`

	// DoNotBackPopulate are regex patterns. Any line matching one of
	// them, in any file, produces no replacements.
	DoNotBackPopulate []string `koanf:"do_not_back_populate"`

	compiled []*regexp.Regexp
}

// validate expands and checks the vault path and compiles the global
// exclusion patterns. A pattern that does not compile fails the whole
// load: silently dropping an exclusion could rewrite lines the user asked
// to protect.
func (c *Config) validate() error {
	if c.VaultPath == "" {
		return errors.New(errors.ErrConfigInvalid, "vault_path is required")
	}

	expanded, err := expandHome(c.VaultPath)
	if err != nil {
		return err
	}
	c.VaultPath = expanded

	info, err := os.Stat(c.VaultPath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrVaultNotFound, "vault path %s does not exist", c.VaultPath)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrVaultNotFound, "vault path %s is not a directory", c.VaultPath)
	}

	c.compiled = make([]*regexp.Regexp, 0, len(c.DoNotBackPopulate))
	for _, pattern := range c.DoNotBackPopulate {
		re, err := regexp.Compile(`(?i)\b(?:` + pattern + `)\b`)
		if err != nil {
			return errors.Wrapf(err, errors.ErrConfigPatternInvalid,
				"invalid do_not_back_populate pattern %q", pattern)
		}
		c.compiled = append(c.compiled, re)
	}

	return nil
}

// DoNotBackPopulateRegexes returns the compiled global exclusion
// patterns.
func (c *Config) DoNotBackPopulateRegexes() []*regexp.Regexp {
	return c.compiled
}

// MatchesFileFilter reports whether a vault-relative path passes the
// configured file filter.
func (c *Config) MatchesFileFilter(relativePath string) bool {
	if c.FileFilter == "" {
		return true
	}
	return strings.Contains(relativePath, c.FileFilter)
}

// IgnoresFolder reports whether a directory name is excluded from the
// scan.
func (c *Config) IgnoresFolder(name string) bool {
	for _, folder := range c.IgnoreFolders {
		if name == folder {
			return true
		}
	}
	return false
}

func expandHome(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrConfigInvalid, "cannot resolve home directory")
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
