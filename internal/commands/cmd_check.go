package commands

import (
	"context"
	"fmt"

	"github.com/hay-kot/wrangler-manager/internal/core"
	"github.com/hay-kot/wrangler-manager/internal/ignorefile"
	"github.com/hay-kot/wrangler-manager/pkgs/printer"
	"github.com/urfave/cli/v3"
)

type CheckCmd struct {
	coreFlags *core.Flags
}

func NewCheckCmd(coreFlags *core.Flags) *CheckCmd {
	return &CheckCmd{coreFlags: coreFlags}
}

func (cc *CheckCmd) Register(app *cli.Command) *cli.Command {
	cmd := &cli.Command{
		Name:  "check",
		Usage: "verify generated and secret files are git-ignored",
		Description: `Matches wrangler.toml, .dev.vars, .env and any plaintext vault env files
against the patterns in .gitignore and fails if one of them would be committed.

This is the command run by the pre-commit hook from 'wrangler-manager hook install'.`,
		Action: cc.check,
	}

	app.Commands = append(app.Commands, cmd)
	return app
}

func (cc *CheckCmd) check(ctx context.Context, c *cli.Command) error {
	cfg, err := core.SetupEnv(cc.coreFlags.ProjectFile)
	if err != nil {
		return err
	}

	statuses, err := ignorefile.Check(cfg.Path(core.IgnoreFile), cfg.SensitiveFiles())
	if err != nil {
		return err
	}

	items := make([]printer.StatusListItem, 0, len(statuses))
	exposed := 0

	for _, s := range statuses {
		status := s.Name
		if !s.Ignored {
			status += " is not ignored"
			exposed++
		}

		items = append(items, printer.StatusListItem{Ok: s.Ignored, Status: status})
	}

	printer.Ctx(ctx).StatusList("Ignored files", items)

	if exposed > 0 {
		return fmt.Errorf("%d sensitive file(s) not covered by %s, run 'wrangler-manager init' or add them manually", exposed, core.IgnoreFile)
	}

	return nil
}
