package core

import (
	"os"
	"path/filepath"
	"testing"

	"filippo.io/age"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupEnv_MissingProjectFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := SetupEnv(filepath.Join(dir, DefaultProjectFile))
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, []EnvFile{{Path: filepath.Join(dir, DotenvFile)}}, cfg.EnvFiles)
	assert.Equal(t, DefaultIdentityFile(), cfg.Age.IdentityFile)
	assert.Empty(t, cfg.Secrets.Filter)
	assert.Empty(t, cfg.VaultFiles())
	assert.Equal(t, []string{OutputFile, SecretsFile, DotenvFile}, cfg.SensitiveFiles())
}

func TestSetupEnv_ParsesProjectFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultProjectFile)

	content := `age:
  recipients:
    - age1example
  identity_file: keys/age.key
env_files:
  - path: .env
  - path: secrets/prod.env
    vault: true
secrets:
  filter: 'placeholder'
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := SetupEnv(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"age1example"}, cfg.Age.Recipients)
	assert.Equal(t, filepath.Join(dir, "keys/age.key"), cfg.Age.IdentityFile)
	assert.Equal(t, "placeholder", cfg.Secrets.Filter)
	assert.Equal(t, []string{filepath.Join(dir, "secrets/prod.env")}, cfg.VaultFiles())
	assert.Equal(t,
		[]string{OutputFile, SecretsFile, DotenvFile, "secrets/prod.env"},
		cfg.SensitiveFiles(),
	)
}

func TestSetupEnv_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultProjectFile)
	require.NoError(t, os.WriteFile(path, []byte("env_files: [\n"), 0o644))

	_, err := SetupEnv(path)
	assert.Error(t, err)
}

func TestAge_ReadIdentity(t *testing.T) {
	identity, err := age.GenerateX25519Identity()
	require.NoError(t, err)

	dir := t.TempDir()

	t.Run("skips comment header", func(t *testing.T) {
		path := filepath.Join(dir, "key.txt")
		content := "# created: 2026-10-18\n# public key: " + identity.Recipient().String() + "\n" + identity.String() + "\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		a := Age{IdentityFile: path}
		assert.True(t, a.HasIdentity())

		got, err := a.ReadIdentity()
		require.NoError(t, err)
		assert.Equal(t, identity.String(), got.(*age.X25519Identity).String())
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty.txt")
		require.NoError(t, os.WriteFile(path, []byte("# nothing\n"), 0o600))

		_, err := Age{IdentityFile: path}.ReadIdentity()
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		a := Age{IdentityFile: filepath.Join(dir, "missing.txt")}
		assert.False(t, a.HasIdentity())

		_, err := a.ReadIdentity()
		assert.Error(t, err)
	})
}
