package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/linkmend/pkg/testutil"
)

func resetFlags() {
	configPath = ""
	vaultPath = ""
	reportPath = ""
}

func setupVault(t *testing.T) (string, string) {
	t.Helper()
	root := testutil.CreateVault(t, map[string]string{
		"tomato.md": "A note.\n",
		"soup.md":   "Add tomato now.\n",
	})
	return root, testutil.CreateConfig(t, root, "")
}

func TestScanCmdLeavesVaultUntouched(t *testing.T) {
	resetFlags()
	root, cfgPath := setupVault(t)

	rootCmd.SetArgs([]string{"--config", cfgPath, "scan"})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, "Add tomato now.\n", testutil.ReadFile(t, filepath.Join(root, "soup.md")))
}

func TestApplyCmdRewritesVault(t *testing.T) {
	resetFlags()
	root, cfgPath := setupVault(t)

	rootCmd.SetArgs([]string{"--config", cfgPath, "apply"})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, "Add [[tomato]] now.\n", testutil.ReadFile(t, filepath.Join(root, "soup.md")))
}

func TestApplyCmdWritesReport(t *testing.T) {
	resetFlags()
	_, cfgPath := setupVault(t)
	out := filepath.Join(t.TempDir(), "report.md")

	rootCmd.SetArgs([]string{"--config", cfgPath, "apply", "--report", out})
	require.NoError(t, rootCmd.Execute())

	data := testutil.ReadFile(t, out)
	assert.Contains(t, data, "# back populate report")
	assert.Contains(t, data, "soup.md")
}

func TestVaultFlagOverridesConfig(t *testing.T) {
	resetFlags()
	// Registers cleanup so the env override set by loadConfig does not
	// leak into later tests.
	t.Setenv("LINKMEND_VAULT_PATH", "")

	root := testutil.CreateVault(t, map[string]string{"note.md": "hello\n"})

	rootCmd.SetArgs([]string{"--vault", root, "scan"})
	require.NoError(t, rootCmd.Execute())
}

func TestScanCmdMissingConfig(t *testing.T) {
	resetFlags()

	rootCmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml"), "scan"})
	assert.Error(t, rootCmd.Execute())
}

func TestInitConfigCmd(t *testing.T) {
	resetFlags()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	defer rootCmd.SetOut(nil)

	rootCmd.SetArgs([]string{"init-config"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, buf.String(), "vault_path:")
	assert.Contains(t, buf.String(), "do_not_back_populate:")
}
