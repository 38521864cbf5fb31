// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key
// name and the file contents (trimmed) are the value.
//
// Supported key files: rdm-api-token, admin-password, s3-access-key-id,
// s3-secret-access-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Well-known secret file names.
const (
	KeyAPIToken       = "rdm-api-token"
	KeyAdminPassword  = "admin-password"
	KeyS3AccessKeyID  = "s3-access-key-id"
	KeyS3SecretAccess = "s3-secret-access-key"
)

// Get returns the named secret, falling back to the environment variable
// envKey when the secret file is absent or empty. The scripts this tool
// replaces read credentials from the process environment, so both sources
// stay supported.
func Get(secrets map[string]string, name, envKey string) string {
	if v, ok := secrets[name]; ok && v != "" {
		return v
	}
	if envKey == "" {
		return ""
	}
	return os.Getenv(envKey)
}

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory or missing files are not errors; Load
// returns an empty map. Unreadable files produce a warning on stderr but
// do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
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
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}
