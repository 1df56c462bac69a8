package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/wrangler-manager/internal/commands"
	"github.com/hay-kot/wrangler-manager/internal/core"
	"github.com/hay-kot/wrangler-manager/pkgs/cll"
	"github.com/hay-kot/wrangler-manager/pkgs/printer"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "v0.1.0-develop"
	commit  = "HEAD"
	date    = time.Now().Format(time.DateTime)
)

var envvars = cll.EnvWithPrefix(core.EnvPrefix)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func newApp(flags *core.Flags) *cli.Command {
	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "wrangler-manager",
		Usage:                 "Manages Wrangler configuration files",
		Version:               build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Aliases:     []string{"l"},
				Usage:       "set the logging verbosity level",
				Value:       "info",
				Sources:     envvars("LOG_LEVEL"),
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to the optional wrangler-manager project file, its directory is the project directory",
				Value:       core.DefaultProjectFile,
				Sources:     envvars("FILE"),
				Destination: &flags.ProjectFile,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(flags.LogLevel)
			if err != nil {
				return ctx, fmt.Errorf("failed to parse log level: %w", err)
			}

			log.Logger = log.Level(level)

			log.Debug().
				Str("log-level", flags.LogLevel).
				Str("file", flags.ProjectFile).
				Msg("global flags")

			return ctx, nil
		},
		OnUsageError: func(ctx context.Context, cmd *cli.Command, err error, isSubcommand bool) error {
			return err
		},
	}

	return cll.Register(app,
		commands.NewInitCmd(flags),
		commands.NewGenerateCmd(flags),
		commands.NewCheckCmd(flags),
		commands.NewEncryptCmd(flags),
		commands.NewHookCmd(flags),
	)
}

// execute runs the CLI with args and returns the process exit code. Errors
// are reported through the printer.
func execute(ctx context.Context, flags *core.Flags, args []string) int {
	if err := newApp(flags).Run(ctx, args); err != nil {
		printer.Ctx(ctx).FatalError(err)
		return 1
	}

	return 0
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var (
		ctx    = context.Background()
		writer = printer.NewDeferredWriter(os.Stdout)
	)

	ctx = printer.WithWriter(ctx, writer)
	printer.ConsolePrinter = printer.Ctx(ctx)

	exitCode := execute(ctx, &core.Flags{}, os.Args)

	err := writer.Flush()
	if err != nil {
		panic(err)
	}
	os.Exit(exitCode)
}
