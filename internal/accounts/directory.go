// Package accounts holds the caller-supplied directory mapping raw statement
// account identifiers to ledger account names. The directory must be complete
// before any extraction: a missing key is a hard failure, never a default.
package accounts

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
)

// ErrNotFound means an account identifier found in a statement has no entry
// in the directory.
var ErrNotFound = errors.New("account not in directory")

// Directory maps statement account keys to ledger account names.
type Directory map[string]string

// Resolve looks up a raw account identifier.
func (d Directory) Resolve(key string) (string, error) {
	account, ok := d[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	return account, nil
}

// directoryRow is one CSV line of the accounts file.
type directoryRow struct {
	Key     string `csv:"key"`
	Account string `csv:"account"`
}

// Load reads a directory from CSV with a "key,account" header.
func Load(r io.Reader) (Directory, error) {
	var rows []directoryRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("reading accounts csv: %w", err)
	}
	dir := make(Directory, len(rows))
	for _, row := range rows {
		if row.Key == "" || row.Account == "" {
			return nil, fmt.Errorf("accounts csv: row with empty key or account")
		}
		dir[row.Key] = row.Account
	}
	return dir, nil
}

// LoadFile reads a directory from a CSV file on disk.
func LoadFile(path string) (Directory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening accounts file: %w", err)
	}
	defer f.Close()
	return Load(f)
}
