// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file is one secret: the filename is the key name and the trimmed
// file contents are the value. Secrets are a fallback for values that are
// not set in the environment.
//
// Recognized key files: gemini-api-key, smtp-password.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultDir is the secrets directory relative to the working directory.
const DefaultDir = ".secrets/"

// Key file names.
const (
	GeminiAPIKey = "gemini-api-key"
	SMTPPassword = "smtp-password"
)

// Store maps secret names to values.
type Store map[string]string

// Get returns the named secret or "".
func (s Store) Get(name string) string {
	return s[name]
}

// Names returns the loaded secret names in sorted order.
func (s Store) Names() []string {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Load reads all files in dir. A missing directory is not an error and yields
// an empty Store. Unreadable files are logged and skipped.
func Load(dir string, log logrus.FieldLogger) (Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Store{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	s := Store{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.WithError(err).Warnf("could not read secret %s", name)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			s[name] = value
		}
	}
	return s, nil
}
