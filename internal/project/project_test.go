package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/wrangler-manager/internal/core"
	"github.com/hay-kot/wrangler-manager/internal/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}

func TestInit_FreshDirectory(t *testing.T) {
	dir := t.TempDir()

	result, err := Init(dir)
	require.NoError(t, err)

	assert.Equal(t, []FileStatus{
		{Name: core.TemplateFile, Created: true},
		{Name: core.DotenvFile, Created: true},
	}, result.Files)
	assert.Equal(t, []string{core.OutputFile, core.SecretsFile, core.DotenvFile}, result.IgnoreAdded)

	assert.Equal(t, DefaultTemplate, readFile(t, filepath.Join(dir, core.TemplateFile)))
	assert.Equal(t, DefaultEnv, readFile(t, filepath.Join(dir, core.DotenvFile)))
	assert.Equal(t, "wrangler.toml\n.dev.vars\n.env\n", readFile(t, filepath.Join(dir, core.IgnoreFile)))
}

func TestInit_KeepsExistingFiles(t *testing.T) {
	dir := t.TempDir()

	edited := "name = \"edited\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, core.TemplateFile), []byte(edited), 0o644))

	result, err := Init(dir)
	require.NoError(t, err)

	assert.Equal(t, []FileStatus{
		{Name: core.TemplateFile, Created: false},
		{Name: core.DotenvFile, Created: true},
	}, result.Files)
	assert.Equal(t, edited, readFile(t, filepath.Join(dir, core.TemplateFile)))
}

func TestInit_Idempotent(t *testing.T) {
	dir := t.TempDir()

	_, err := Init(dir)
	require.NoError(t, err)

	snapshot := map[string]string{}
	for _, name := range []string{core.TemplateFile, core.DotenvFile, core.IgnoreFile} {
		snapshot[name] = readFile(t, filepath.Join(dir, name))
	}

	result, err := Init(dir)
	require.NoError(t, err)

	for _, f := range result.Files {
		assert.False(t, f.Created, f.Name)
	}
	assert.Empty(t, result.IgnoreAdded)

	for name, want := range snapshot {
		assert.Equal(t, want, readFile(t, filepath.Join(dir, name)), name)
	}
}

func TestInit_WriteFailure(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "does-not-exist")

	_, err := Init(dir)
	assert.Error(t, err)
}

func TestDefaultTemplate_Placeholders(t *testing.T) {
	placeholders := generator.Scan(DefaultTemplate)

	names := []string{}
	for _, p := range generator.Distinct(placeholders) {
		names = append(names, p.Name)
	}

	assert.Equal(t, []string{
		"MY_KV_STORE_ID",
		"MY_KV_BUCKET_NAME",
		"MY_DATABASE_NAME",
		"MY_DATABASE_ID",
	}, names)
}
