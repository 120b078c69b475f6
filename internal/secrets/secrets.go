// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key
// name and the file contents (trimmed) are the value.
//
// Supported key files: openai-api-key, openai-base-url.
package secrets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Well-known key files.
const (
	OpenAIAPIKey  = "openai-api-key"
	OpenAIBaseURL = "openai-base-url"
)

// DefaultDir is the directory read at startup.
const DefaultDir = ".secrets/"

// Store maps a key file name to its trimmed contents.
type Store map[string]string

// Load reads all files in dir. A missing directory is not an error; Load
// returns an empty Store. Unreadable files are logged and skipped.
func Load(dir string, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Store{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	s := make(Store)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("could not read secret", "name", name, "error", err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			s[name] = value
		}
	}

	return s, nil
}

// Default returns value when it is non-empty, else the secret stored under
// key. Explicit configuration always wins over a key file.
func (s Store) Default(key, value string) string {
	if value != "" {
		return value
	}
	return s[key]
}

// Names returns the loaded key names in sorted order. Values are never
// exposed for logging.
func (s Store) Names() []string {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
