package ignorefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestEnsure(t *testing.T) {
	tests := []struct {
		name      string
		existing  *string
		names     []string
		want      string
		wantAdded []string
	}{
		{
			name:      "empty file",
			existing:  ptr(""),
			names:     []string{"wrangler.toml", ".env"},
			want:      "wrangler.toml\n.env\n",
			wantAdded: []string{"wrangler.toml", ".env"},
		},
		{
			name:      "missing file",
			existing:  nil,
			names:     []string{"wrangler.toml", ".dev.vars"},
			want:      "wrangler.toml\n.dev.vars\n",
			wantAdded: []string{"wrangler.toml", ".dev.vars"},
		},
		{
			name:      "no trailing newline",
			existing:  ptr("node_modules"),
			names:     []string{".env"},
			want:      "node_modules\n.env\n",
			wantAdded: []string{".env"},
		},
		{
			name:      "preserves existing order",
			existing:  ptr("dist\n.env\nnode_modules\n"),
			names:     []string{"wrangler.toml", ".dev.vars", ".env"},
			want:      "dist\n.env\nnode_modules\nwrangler.toml\n.dev.vars\n",
			wantAdded: []string{"wrangler.toml", ".dev.vars"},
		},
		{
			name:      "substring counts as present",
			existing:  ptr("wrangler.toml.bak\n"),
			names:     []string{"wrangler.toml"},
			want:      "wrangler.toml.bak\n",
			wantAdded: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ".gitignore")
			if tt.existing != nil {
				writeFile(t, path, *tt.existing)
			}

			added, err := Ensure(path, tt.names)
			require.NoError(t, err)

			assert.Equal(t, tt.wantAdded, added)
			assert.Equal(t, tt.want, readFile(t, path))
		})
	}
}

func TestEnsure_NoWriteWhenNothingMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".gitignore")

	added, err := Ensure(path, nil)
	require.NoError(t, err)
	assert.Empty(t, added)
	assert.NoFileExists(t, path)
}

func TestEnsure_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".gitignore")
	writeFile(t, path, "")

	_, err := Ensure(path, []string{"a", "b"})
	require.NoError(t, err)
	once := readFile(t, path)

	added, err := Ensure(path, []string{"a", "b"})
	require.NoError(t, err)

	assert.Empty(t, added)
	assert.Equal(t, once, readFile(t, path))
	assert.Equal(t, "a\nb\n", once)
}

func TestEnsure_ReadError(t *testing.T) {
	// A directory where the file should be cannot be read as a file.
	path := filepath.Join(t.TempDir(), ".gitignore")
	require.NoError(t, os.Mkdir(path, 0o755))

	_, err := Ensure(path, []string{".env"})
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".gitignore")
	writeFile(t, path, "# local files\n*.toml\n!wrangler-config.toml\n.env*\nsecrets/\n")

	statuses, err := Check(path, []string{
		"wrangler.toml",
		"wrangler-config.toml",
		".env",
		".dev.vars",
		"secrets/prod.env",
	})
	require.NoError(t, err)

	assert.Equal(t, []Status{
		{Name: "wrangler.toml", Ignored: true},
		{Name: "wrangler-config.toml", Ignored: false},
		{Name: ".env", Ignored: true},
		{Name: ".dev.vars", Ignored: false},
		{Name: "secrets/prod.env", Ignored: true},
	}, statuses)
}

func TestCheck_MissingFile(t *testing.T) {
	statuses, err := Check(filepath.Join(t.TempDir(), ".gitignore"), []string{".env"})
	require.NoError(t, err)
	assert.Equal(t, []Status{{Name: ".env", Ignored: false}}, statuses)
}

func ptr(s string) *string { return &s }
