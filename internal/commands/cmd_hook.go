package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/hay-kot/wrangler-manager/internal/core"
	"github.com/hay-kot/wrangler-manager/pkgs/printer"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

const hookMarker = "wrangler-manager pre-commit hook"

type HookCmd struct {
	coreFlags *core.Flags
}

func NewHookCmd(coreFlags *core.Flags) *HookCmd {
	return &HookCmd{coreFlags: coreFlags}
}

func (hc *HookCmd) Register(app *cli.Command) *cli.Command {
	cmds := []*cli.Command{
		{
			Name:  "hook",
			Usage: "manage the git pre-commit hook",
			Commands: []*cli.Command{
				{
					Name:  "install",
					Usage: "install a pre-commit hook that refuses commits exposing secret files",
					Description: `Installs a pre-commit hook that runs 'wrangler-manager check' before each
commit, so wrangler.toml, .dev.vars and .env cannot be committed by accident.

If a pre-commit hook already exists, the check is appended to it.`,
					Action: hc.install,
				},
				{
					Name:  "uninstall",
					Usage: "remove the wrangler-manager section from the pre-commit hook",
					Description: `Removes the section added by 'wrangler-manager hook install'. A hook left with
nothing but a shebang is deleted.`,
					Action: hc.uninstall,
				},
			},
		},
	}

	app.Commands = append(app.Commands, cmds...)
	return app
}

func (hc *HookCmd) install(ctx context.Context, cmd *cli.Command) error {
	cfg, err := core.SetupEnv(hc.coreFlags.ProjectFile)
	if err != nil {
		return err
	}

	gitRoot, hooksDir, err := openRepository(cfg.Dir)
	if err != nil {
		return err
	}

	hookPath := filepath.Join(hooksDir, "pre-commit")

	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return fmt.Errorf("failed to create hooks directory: %w", err)
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get wrangler-manager executable path: %w", err)
	}

	// Hooks run from the repository root.
	projectFile := filepath.Join(cfg.Dir, filepath.Base(hc.coreFlags.ProjectFile))
	if rel, err := filepath.Rel(gitRoot, projectFile); err == nil && !strings.HasPrefix(rel, "..") {
		projectFile = rel
	}

	section := fmt.Sprintf("\n# %s - check secret files are git-ignored\n%s --file=%s check || exit 1\n",
		hookMarker, shellQuote(exe), shellQuote(projectFile))

	p := printer.Ctx(ctx)

	var content string
	existing, err := os.ReadFile(hookPath)
	switch {
	case err == nil:
		if strings.Contains(string(existing), hookMarker) {
			p.Skip("pre-commit hook already installed")
			return nil
		}

		content = string(existing)
		if !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		content += section
		log.Debug().Str("path", hookPath).Msg("appending to existing pre-commit hook")
	case errors.Is(err, fs.ErrNotExist):
		content = "#!/bin/sh\n" + section
		log.Debug().Str("path", hookPath).Msg("creating pre-commit hook")
	default:
		return fmt.Errorf("failed to read pre-commit hook: %w", err)
	}

	if err := os.WriteFile(hookPath, []byte(content), 0o755); err != nil {
		return fmt.Errorf("failed to write pre-commit hook: %w", err)
	}

	p.Success("Installed pre-commit hook " + hookPath)
	return nil
}

func (hc *HookCmd) uninstall(ctx context.Context, cmd *cli.Command) error {
	cfg, err := core.SetupEnv(hc.coreFlags.ProjectFile)
	if err != nil {
		return err
	}

	_, hooksDir, err := openRepository(cfg.Dir)
	if err != nil {
		return err
	}

	hookPath := filepath.Join(hooksDir, "pre-commit")
	p := printer.Ctx(ctx)

	content, err := os.ReadFile(hookPath)
	if errors.Is(err, fs.ErrNotExist) {
		p.Skip("No pre-commit hook found")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read pre-commit hook: %w", err)
	}

	if !strings.Contains(string(content), hookMarker) {
		p.Skip("wrangler-manager section not found in pre-commit hook")
		return nil
	}

	newContent := removeHookSection(string(content))

	trimmed := strings.TrimSpace(newContent)
	if trimmed == "" || trimmed == "#!/bin/sh" {
		if err := os.Remove(hookPath); err != nil {
			return fmt.Errorf("failed to remove pre-commit hook: %w", err)
		}

		p.Success("Removed pre-commit hook " + hookPath)
		return nil
	}

	if err := os.WriteFile(hookPath, []byte(newContent), 0o755); err != nil {
		return fmt.Errorf("failed to write pre-commit hook: %w", err)
	}

	p.Success("Removed wrangler-manager section from " + hookPath)
	return nil
}

// removeHookSection drops the marker comment, the command line after it and
// the blank line install put in front of them.
func removeHookSection(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		if !strings.Contains(lines[i], hookMarker) {
			out = append(out, lines[i])
			continue
		}

		if n := len(out); n > 0 && strings.TrimSpace(out[n-1]) == "" {
			out = out[:n-1]
		}

		i++ // command line
	}

	return strings.Join(out, "\n")
}

// shellQuote wraps s in single quotes for a POSIX shell.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// openRepository returns the worktree root and the hooks directory of the
// repository containing dir. The hooks directory comes from the repository
// storage, so a .git file (submodules, linked worktrees) is followed. Linked
// worktrees share the hooks of their main repository.
func openRepository(dir string) (root string, hooksDir string, err error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return "", "", fmt.Errorf("%s is not in a git repository", dir)
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to open git repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", "", fmt.Errorf("failed to open git worktree: %w", err)
	}

	storage, ok := repo.Storer.(*filesystem.Storage)
	if !ok {
		return "", "", fmt.Errorf("unsupported git storage %T", repo.Storer)
	}

	gitDir := storage.Filesystem().Root()

	data, err := os.ReadFile(filepath.Join(gitDir, "commondir"))
	switch {
	case err == nil:
		common := strings.TrimSpace(string(data))
		if !filepath.IsAbs(common) {
			common = filepath.Join(gitDir, common)
		}
		gitDir = filepath.Clean(common)
	case !errors.Is(err, fs.ErrNotExist):
		return "", "", fmt.Errorf("failed to read git common dir: %w", err)
	}

	return wt.Filesystem.Root(), filepath.Join(gitDir, "hooks"), nil
}
