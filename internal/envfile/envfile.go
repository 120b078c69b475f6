// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package envfile loads .env files into the process environment before
// configuration is read.
package envfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// DisableVar turns dotenv loading off when set to 0, false, off, or no.
const DisableVar = "MINUTES_ENGINE_DOTENV"

// Files are tried in order; earlier files win because godotenv never
// overrides a variable that is already set.
var Files = []string{".env.local", ".env"}

// Load reads Files from dir and returns the paths that were loaded.
// Missing files are skipped. A malformed file is an error.
func Load(dir string) ([]string, error) {
	if Disabled() {
		return nil, nil
	}

	var loaded []string
	for _, name := range Files {
		p := filepath.Join(dir, name)
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return loaded, fmt.Errorf("loading %s: %w", p, err)
		}
		loaded = append(loaded, p)
	}
	return loaded, nil
}

// Disabled reports whether DisableVar switches loading off.
func Disabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(DisableVar))) {
	case "0", "false", "off", "no":
		return true
	default:
		return false
	}
}
