package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/linkmend/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	vault := t.TempDir()
	path := writeConfig(t, `
vault_path: `+vault+`
apply_changes: true
file_limit: 10
file_filter: notes/
do_not_back_populate:
  - tomato sauce
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, vault, cfg.VaultPath)
	assert.True(t, cfg.ApplyChanges)
	assert.Equal(t, 10, cfg.FileLimit)
	assert.Equal(t, "notes/", cfg.FileFilter)

	require.Len(t, cfg.DoNotBackPopulateRegexes(), 1)
	assert.True(t, cfg.DoNotBackPopulateRegexes()[0].MatchString("my Tomato Sauce recipe"))

	// Defaults survive when the file does not override them.
	assert.Contains(t, cfg.IgnoreFolders, ".obsidian")
}

func TestLoadExplicitPathMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoadRequiresVaultPath(t *testing.T) {
	path := writeConfig(t, "apply_changes: true\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
}

func TestLoadVaultMustExist(t *testing.T) {
	path := writeConfig(t, "vault_path: /definitely/not/a/vault\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrVaultNotFound))
}

func TestLoadVaultMustBeDirectory(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "file.md")
	require.NoError(t, os.WriteFile(filePath, []byte("x"), 0644))

	path := writeConfig(t, "vault_path: "+filePath+"\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrVaultNotFound))
}

func TestLoadInvalidPattern(t *testing.T) {
	vault := t.TempDir()
	path := writeConfig(t, `
vault_path: `+vault+`
do_not_back_populate:
  - "(["
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigPatternInvalid))
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	vault := t.TempDir()
	path := writeConfig(t, "vault_path: "+vault+"\nfile_filter: notes/\n")

	t.Setenv("LINKMEND_FILE_FILTER", "projects/")
	t.Setenv("LINKMEND_APPLY_CHANGES", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "projects/", cfg.FileFilter)
	assert.True(t, cfg.ApplyChanges)
}

func TestMatchesFileFilter(t *testing.T) {
	cfg := &Config{FileFilter: "recipes/"}
	assert.True(t, cfg.MatchesFileFilter("recipes/tomato.md"))
	assert.False(t, cfg.MatchesFileFilter("people/karen.md"))

	open := &Config{}
	assert.True(t, open.MatchesFileFilter("anything.md"))
}

func TestIgnoresFolder(t *testing.T) {
	cfg := &Config{IgnoreFolders: []string{".obsidian", "templates"}}
	assert.True(t, cfg.IgnoresFolder(".obsidian"))
	assert.True(t, cfg.IgnoresFolder("templates"))
	assert.False(t, cfg.IgnoresFolder("notes"))
}

func TestEmbeddedDefaultsSeedLoad(t *testing.T) {
	vault := t.TempDir()
	path := writeConfig(t, "vault_path: "+vault+"\n")

	// A file setting only vault_path: every other value must come from
	// the embedded defaults layer.
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.ApplyChanges)
	assert.Equal(t, 0, cfg.FileLimit)
	assert.Equal(t, "", cfg.FileFilter)
	assert.Equal(t, []string{".obsidian", ".trash", "templates"}, cfg.IgnoreFolders)
	assert.Empty(t, cfg.DoNotBackPopulate)
}
