package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAccountsDefaults(t *testing.T) {
	accounts, err := LoadAccounts("")
	require.NoError(t, err)
	assert.Equal(t, DefaultAccounts, accounts)
}

func TestLoadAccountsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.yaml")
	content := "accounts:\n  - Net Revenue\n  - SG&A Expenses\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	accounts, err := LoadAccounts(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Net Revenue", "SG&A Expenses"}, accounts)
}

func TestLoadAccountsMissingFile(t *testing.T) {
	_, err := LoadAccounts(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadAccountsEmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("accounts: []\n"), 0o600))

	_, err := LoadAccounts(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no accounts")
}
