// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  map[string]string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, KeyAPIToken, "  tok_abc123  \n")
				writeFile(t, dir, KeyS3AccessKeyID, "minioadmin")
				writeFile(t, dir, KeyS3SecretAccess, "minioadmin\n")
				return dir
			},
			want: map[string]string{
				KeyAPIToken:       "tok_abc123",
				KeyS3AccessKeyID:  "minioadmin",
				KeyS3SecretAccess: "minioadmin",
			},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips dotfiles and empty files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitignore", "*")
				writeFile(t, dir, "empty-secret", "   \n")
				writeFile(t, dir, KeyAdminPassword, "hunter2")
				return dir
			},
			want: map[string]string{KeyAdminPassword: "hunter2"},
		},
		{
			name: "skips subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
				writeFile(t, dir, KeyAPIToken, "tok")
				return dir
			},
			want: map[string]string{KeyAPIToken: "tok"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.setup(t))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGet(t *testing.T) {
	secrets := map[string]string{KeyAPIToken: "from-file"}

	assert.Equal(t, "from-file", Get(secrets, KeyAPIToken, "RDM_API_TOKEN"))

	t.Setenv("RDM_API_TOKEN", "from-env")
	assert.Equal(t, "from-file", Get(secrets, KeyAPIToken, "RDM_API_TOKEN"))
	assert.Equal(t, "from-env", Get(map[string]string{}, KeyAPIToken, "RDM_API_TOKEN"))
	assert.Equal(t, "", Get(map[string]string{}, KeyAPIToken, ""))
}
