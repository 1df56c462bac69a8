package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/hay-kot/wrangler-manager/internal/core"
	"github.com/hay-kot/wrangler-manager/internal/env"
	"github.com/hay-kot/wrangler-manager/internal/generator"
	"github.com/hay-kot/wrangler-manager/pkgs/printer"
	"github.com/hay-kot/wrangler-manager/pkgs/styles"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

type GenerateCmd struct {
	coreFlags *core.Flags
	flags     struct {
		Template      string
		Prompt        bool
		SecretsFilter string
		DryRun        bool
	}
}

func NewGenerateCmd(coreFlags *core.Flags) *GenerateCmd {
	return &GenerateCmd{coreFlags: coreFlags}
}

func (gc *GenerateCmd) Register(app *cli.Command) *cli.Command {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate configuration files from templates",
		Description: `Renders wrangler.toml and .dev.vars from the config template.

Every __NAME__ placeholder in the template must have a non-empty value in the
environment. Values come from the process environment first, then from the
project's env files (.env by default); env files never override variables that
are already set. If any placeholder is unresolved nothing is written.

Each variable replaces only the first occurrence of its placeholder.

.dev.vars receives every variable of the environment as KEY=VALUE. Use
--secrets-filter to narrow it, for example:

  wrangler-manager generate --secrets-filter 'placeholder'
  wrangler-manager generate --secrets-filter 'not (key startsWith "npm_")'

Filter expressions can use key, value and placeholder (true when the template
references the variable).`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config template",
				Value:       core.TemplateFile,
				Destination: &gc.flags.Template,
			},
			&cli.BoolFlag{
				Name:        "prompt",
				Usage:       "interactively ask for missing variables (terminal only)",
				Destination: &gc.flags.Prompt,
			},
			&cli.StringFlag{
				Name:        "secrets-filter",
				Usage:       "expression selecting the variables written to .dev.vars",
				Sources:     envvars("SECRETS_FILTER"),
				Destination: &gc.flags.SecretsFilter,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "print the rendered config without writing any file",
				Destination: &gc.flags.DryRun,
			},
		},
		Action: gc.generate,
	}

	app.Commands = append(app.Commands, cmd)
	return app
}

func (gc *GenerateCmd) generate(ctx context.Context, c *cli.Command) error {
	cfg, err := core.SetupEnv(gc.coreFlags.ProjectFile)
	if err != nil {
		return err
	}

	vars, err := loadEnvironment(cfg)
	if err != nil {
		return err
	}

	filterExpr := gc.flags.SecretsFilter
	if filterExpr == "" {
		filterExpr = cfg.Secrets.Filter
	}

	filter, err := env.CompileFilter(filterExpr)
	if err != nil {
		return err
	}

	// An explicit template path is relative to the working directory, the
	// default one to the project directory.
	templatePath := core.TemplateFile
	if c.IsSet("config") {
		templatePath, err = filepath.Abs(gc.flags.Template)
		if err != nil {
			return err
		}
	}

	opts := generator.Options{
		Dir:          cfg.Dir,
		TemplatePath: templatePath,
		Env:          vars,
		Filter:       filter,
		DryRun:       gc.flags.DryRun,
	}

	if gc.flags.Prompt {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			opts.Prompt = promptMissing
		} else {
			log.Warn().Msg("stdin is not a terminal, ignoring --prompt")
		}
	}

	log.Debug().
		Str("template", templatePath).
		Str("filter", filter.String()).
		Bool("dry-run", gc.flags.DryRun).
		Msg("generate cmd")

	result, err := generator.New(opts).Generate()
	if err != nil {
		return err
	}

	p := printer.Ctx(ctx)

	if gc.flags.DryRun {
		_, err := fmt.Fprintln(p, result.Rendered)
		return err
	}

	fmt.Fprintf(p, "%s %s %s %s\n",
		styles.Success(styles.Check),
		shortenPath(cfg.Dir, result.TemplatePath),
		styles.Subtle(styles.Arrow),
		core.OutputFile,
	)
	fmt.Fprintf(p, "%s %d variables %s %s\n",
		styles.Success(styles.Check),
		result.SecretsCount,
		styles.Subtle(styles.Arrow),
		core.SecretsFile,
	)

	if len(result.IgnoreAdded) > 0 {
		p.Success(fmt.Sprintf("Added to %s: %s", core.IgnoreFile, strings.Join(result.IgnoreAdded, ", ")))
	}

	p.LineBreak()
	p.Success("Configuration files generated successfully")

	return nil
}

// promptMissing asks for each missing variable with the input hidden.
func promptMissing(names []string) (map[string]string, error) {
	answers := make([]string, len(names))
	fields := make([]huh.Field, len(names))

	for i, name := range names {
		fields[i] = huh.NewInput().
			Title(name).
			Description("not set in the environment or env files").
			EchoMode(huh.EchoModePassword).
			Value(&answers[i])
	}

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return nil, err
	}

	values := make(map[string]string, len(names))
	for i, name := range names {
		values[name] = strings.TrimSpace(answers[i])
	}

	return values, nil
}

// shortenPath returns path relative to dir when it lives inside it.
func shortenPath(dir, path string) string {
	if rel, err := filepath.Rel(dir, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}

	return path
}
