// Package store persists the daily series as a single JSON document.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/theirongolddev/tokenledger/internal/model"
)

// ErrNotFound is returned by ReadRaw when the store file does not exist.
var ErrNotFound = errors.New("store file not found")

// Load reads the series at path. A missing file yields an empty series;
// malformed JSON is an error.
func Load(path string) (model.Series, error) {
	data, err := os.ReadFile(path) //nolint:gosec // store path comes from config
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.Series{}, nil
		}
		return nil, fmt.Errorf("reading store: %w", err)
	}

	series := model.Series{}
	if len(bytes.TrimSpace(data)) == 0 {
		return series, nil
	}
	if err := json.Unmarshal(data, &series); err != nil {
		return nil, fmt.Errorf("parsing store %s: %w", path, err)
	}
	return series, nil
}

// Save writes the whole series, replacing any previous content. Output is
// indented with two spaces, keys sorted, with a trailing newline.
func Save(path string, series model.Series) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating store dir: %w", err)
	}

	data, err := Encode(series)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".token_usage-*.json")
	if err != nil {
		return fmt.Errorf("creating temp store: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing store: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil { //nolint:gosec // served read-only to the dashboard
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing store: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replacing store: %w", err)
	}
	return nil
}

// Encode renders the series in the on-disk format.
func Encode(series model.Series) ([]byte, error) {
	if series == nil {
		series = model.Series{}
	}
	data, err := json.MarshalIndent(series, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding store: %w", err)
	}
	return append(data, '\n'), nil
}

// ReadRaw returns the store file bytes unparsed.
func ReadRaw(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // store path comes from config
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading store: %w", err)
	}
	return data, nil
}
