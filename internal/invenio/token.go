// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package invenio

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// envTokenKey is the .env variable holding the personal API token.
const envTokenKey = "RDM_API_TOKEN"

// CreateToken mints a personal API token for the given user via the
// platform CLI and returns the token string. The CLI prints the token as
// the last non-empty stdout line.
func CreateToken(r *Runner, email, name string) (string, error) {
	if email == "" {
		return "", fmt.Errorf("user email is required")
	}
	if name == "" {
		name = "API Token " + time.Now().Format("2006-01-02")
	}

	out, err := r.Invenio("tokens", "create", "-n", name, "-u", email)
	if err != nil {
		return "", fmt.Errorf("creating token for %s: %w", email, err)
	}

	var token string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			token = line
		}
	}
	if token == "" {
		return "", fmt.Errorf("token command for %s produced no output", email)
	}
	return token, nil
}

// UpdateEnvToken inserts or replaces the RDM_API_TOKEN line in the .env
// file at path, backing up an existing file to .env.bak-YYYYmmddHHMMSS
// first. A missing file is created. Returns the backup path, or "" when
// no backup was needed.
func UpdateEnvToken(path, token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("refusing to write an empty token")
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	backup := ""
	if err == nil {
		backup = path + ".bak-" + time.Now().Format("20060102150405")
		if err := os.WriteFile(backup, data, 0o600); err != nil {
			return "", fmt.Errorf("backing up %s: %w", path, err)
		}
	}

	lines := []string{}
	if len(data) > 0 {
		lines = strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	}

	replaced := false
	for i, line := range lines {
		if strings.HasPrefix(line, envTokenKey+"=") {
			lines[i] = envTokenKey + "=" + token
			replaced = true
		}
	}
	if !replaced {
		lines = append(lines, envTokenKey+"="+token)
	}

	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return backup, nil
}
