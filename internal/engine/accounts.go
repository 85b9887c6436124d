package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultAccounts are the accounts tracked by the cube view when no accounts
// file is configured. They match the sample finance dataset.
var DefaultAccounts = []string{
	"Net Revenue",
	"SG&A Expenses",
	"Operating Profit",
}

type accountsFile struct {
	Accounts []string `yaml:"accounts"`
}

// LoadAccounts reads the tracked-account list from a YAML file of the form:
//
//	accounts:
//	  - Net Revenue
//	  - SG&A Expenses
//
// An empty path selects DefaultAccounts. A configured but unreadable or empty
// file is an error — silently tracking nothing would yield an all-empty view.
func LoadAccounts(path string) ([]string, error) {
	if path == "" {
		return DefaultAccounts, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from config
	if err != nil {
		return nil, fmt.Errorf("read accounts file: %w", err)
	}

	var f accountsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse accounts file %q: %w", path, err)
	}
	if len(f.Accounts) == 0 {
		return nil, fmt.Errorf("accounts file %q lists no accounts", path)
	}
	return f.Accounts, nil
}
