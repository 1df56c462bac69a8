package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/hay-kot/wrangler-manager/internal/core"
	"github.com/hay-kot/wrangler-manager/internal/project"
	"github.com/hay-kot/wrangler-manager/pkgs/printer"
	"github.com/hay-kot/wrangler-manager/pkgs/styles"
	"github.com/urfave/cli/v3"
)

type InitCmd struct {
	coreFlags *core.Flags
}

func NewInitCmd(coreFlags *core.Flags) *InitCmd {
	return &InitCmd{coreFlags: coreFlags}
}

func (ic *InitCmd) Register(app *cli.Command) *cli.Command {
	cmd := &cli.Command{
		Name:  "init",
		Usage: "Initialize a new project with template files",
		Description: `Creates wrangler-config.toml and .env in the project directory.

Files that already exist are left untouched, so init is safe to re-run.
wrangler.toml, .dev.vars and .env are added to .gitignore.`,
		Action: ic.init,
	}

	app.Commands = append(app.Commands, cmd)
	return app
}

func (ic *InitCmd) init(ctx context.Context, c *cli.Command) error {
	cfg, err := core.SetupEnv(ic.coreFlags.ProjectFile)
	if err != nil {
		return err
	}

	result, err := project.Init(cfg.Dir)
	if err != nil {
		return err
	}

	p := printer.Ctx(ctx)

	for _, f := range result.Files {
		if f.Created {
			p.Success("Created " + f.Name)
		} else {
			p.Skip(f.Name + " already exists, skipping")
		}
	}

	if len(result.IgnoreAdded) > 0 {
		p.Success(fmt.Sprintf("Added to %s: %s", core.IgnoreFile, strings.Join(result.IgnoreAdded, ", ")))
	}

	p.LineBreak()
	p.Success("Project initialized successfully!")
	p.LineBreak()
	p.NumberedList("Next steps:", []string{
		"Edit " + core.TemplateFile + " with your project settings",
		"Update " + core.DotenvFile + " with your secret values",
		"Run " + styles.Accent("wrangler-manager generate") + " to create config files",
	})

	return nil
}
