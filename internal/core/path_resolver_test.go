package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathResolver_Resolve(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name      string
		configDir string
		input     string
		want      string
	}{
		{
			name:      "absolute path",
			configDir: "/project",
			input:     "/etc/wrangler/.env",
			want:      "/etc/wrangler/.env",
		},
		{
			name:      "home directory expansion",
			configDir: "/project",
			input:     "~/.config/wrangler-manager/age.key",
			want:      filepath.Join(homeDir, ".config/wrangler-manager/age.key"),
		},
		{
			name:      "home directory only",
			configDir: "/project",
			input:     "~",
			want:      homeDir,
		},
		{
			name:      "relative path with project dir",
			configDir: "/project",
			input:     "secrets/prod.env",
			want:      "/project/secrets/prod.env",
		},
		{
			name:      "relative path without project dir",
			configDir: "",
			input:     "secrets/prod.env",
			want:      filepath.Join(cwd, "secrets/prod.env"),
		},
		{
			name:      "dot path with project dir",
			configDir: "/project",
			input:     "./.env",
			want:      "/project/.env",
		},
		{
			name:      "parent directory with project dir",
			configDir: "/project/worker",
			input:     "../shared.env",
			want:      "/project/shared.env",
		},
		{
			name:      "absolute path is cleaned",
			configDir: "/project",
			input:     "/etc//wrangler/",
			want:      "/etc/wrangler",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr := PathResolver{configDir: tt.configDir}

			got, err := pr.Resolve(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
