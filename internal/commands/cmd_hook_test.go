package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShellQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "/usr/local/bin/wrangler-manager", want: "'/usr/local/bin/wrangler-manager'"},
		{in: "/Users/me/My Tools/wrangler-manager", want: "'/Users/me/My Tools/wrangler-manager'"},
		{in: "it's", want: `'it'\''s'`},
		{in: "", want: "''"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, shellQuote(tt.in))
		})
	}
}

func TestRemoveHookSection(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "only our section",
			content: "#!/bin/sh\n\n# " + hookMarker + " - check\n'wm' --file='x.yml' check || exit 1\n",
			want:    "#!/bin/sh\n",
		},
		{
			name:    "keeps other commands",
			content: "#!/bin/sh\nnpm run lint\n\n# " + hookMarker + " - check\n'wm' check || exit 1\necho done\n",
			want:    "#!/bin/sh\nnpm run lint\necho done\n",
		},
		{
			name:    "no section",
			content: "#!/bin/sh\nnpm test\n",
			want:    "#!/bin/sh\nnpm test\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, removeHookSection(tt.content))
		})
	}
}

func TestOpenRepository(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	sub := filepath.Join(dir, "apps", "worker")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	root, hooks, err := openRepository(sub)
	require.NoError(t, err)

	assert.Equal(t, dir, root)
	assert.Equal(t, filepath.Join(dir, ".git", "hooks"), hooks)
}

func TestOpenRepository_GitFile(t *testing.T) {
	gitDir := filepath.Join(t.TempDir(), "modules", "worker")
	_, err := git.PlainInit(gitDir, true)
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git"), []byte("gitdir: "+gitDir+"\n"), 0o644))

	root, hooks, err := openRepository(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, root)
	assert.Equal(t, filepath.Join(gitDir, "hooks"), hooks)
}

func TestOpenRepository_LinkedWorktree(t *testing.T) {
	mainDir := t.TempDir()
	_, err := git.PlainInit(mainDir, false)
	require.NoError(t, err)

	wtGitDir := filepath.Join(mainDir, ".git", "worktrees", "feature")
	require.NoError(t, os.MkdirAll(wtGitDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(wtGitDir, "commondir"), []byte("../..\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(wtGitDir, "HEAD"), []byte("ref: refs/heads/feature\n"), 0o644))

	wtDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(wtGitDir, "gitdir"), []byte(filepath.Join(wtDir, ".git")+"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(wtDir, ".git"), []byte("gitdir: "+wtGitDir+"\n"), 0o644))

	root, hooks, err := openRepository(wtDir)
	require.NoError(t, err)

	assert.Equal(t, wtDir, root)
	assert.Equal(t, filepath.Join(mainDir, ".git", "hooks"), hooks)
}

func TestOpenRepository_NotARepository(t *testing.T) {
	_, _, err := openRepository(t.TempDir())
	assert.ErrorContains(t, err, "not in a git repository")
}
