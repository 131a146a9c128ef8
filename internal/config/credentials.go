package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrCredentialMissing indicates the admin key file does not exist.
var ErrCredentialMissing = errors.New("admin key not found")

// LoadAdminKey reads the bearer token for the usage/cost API.
func LoadAdminKey(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // credential path comes from config
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w at %s", ErrCredentialMissing, path)
		}
		return "", fmt.Errorf("reading admin key: %w", err)
	}
	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", fmt.Errorf("%w at %s (file is empty)", ErrCredentialMissing, path)
	}
	return key, nil
}

// SaveAdminKey writes key to path, readable only by the owner.
func SaveAdminKey(path, key string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating credentials dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(strings.TrimSpace(key)+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing admin key: %w", err)
	}
	return nil
}

// MaskKey shortens a secret for display.
func MaskKey(key string) string {
	if len(key) > 16 {
		return key[:8] + "..." + key[len(key)-4:]
	}
	if len(key) > 4 {
		return key[:4] + "..."
	}
	return "****"
}
