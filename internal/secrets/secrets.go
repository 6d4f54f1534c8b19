// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file is one secret: the filename is the key and the trimmed file
// contents are the value.
//
// Supported keys: api-token (bearer token sent to the analysis backend).
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// APIToken is the key of the backend bearer token.
const APIToken = "api-token"

// DefaultDir is where the CLI looks for secrets.
const DefaultDir = ".secrets"

// Set maps secret names to values.
type Set map[string]string

// Get returns the value for key, or "".
func (s Set) Get(key string) string {
	return s[key]
}

// Keys returns the loaded key names in sorted order. Values are never listed.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Load reads every regular file in dir. A missing directory yields an empty
// Set. Dotfiles, subdirectories, and empty files are skipped; unreadable
// files are logged and skipped.
func Load(dir string, log zerolog.Logger) (Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Set{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	set := Set{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn().Str("secret", name).Err(err).Msg("could not read secret")
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			set[name] = value
		}
	}
	return set, nil
}
