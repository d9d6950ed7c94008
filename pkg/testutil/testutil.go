// Package testutil provides helpers for building throwaway vaults and
// config files in tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// CreateFile creates a file with the given content in the specified
// directory, creating parent directories as needed. Fails the test if the
// file cannot be created.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}
	return path
}

// CreateVault lays out a temporary vault from a map of vault-relative
// paths to file contents and returns its root.
func CreateVault(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		CreateFile(t, root, rel, content)
	}
	return root
}

// CreateConfig writes a config file pointing at vaultPath, with extra
// YAML appended verbatim, and returns its path.
func CreateConfig(t *testing.T, vaultPath, extra string) string {
	t.Helper()

	content := "vault_path: " + vaultPath + "\n" + extra
	return CreateFile(t, t.TempDir(), "config.yaml", content)
}

// ReadFile reads a file's content as a string, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
