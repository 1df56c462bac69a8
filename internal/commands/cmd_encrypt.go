package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/hay-kot/wrangler-manager/internal/core"
	"github.com/hay-kot/wrangler-manager/pkgs/fcrypt"
	"github.com/hay-kot/wrangler-manager/pkgs/printer"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

type EncryptCmd struct {
	coreFlags *core.Flags
	flags     struct {
		DryRun bool
	}
}

func NewEncryptCmd(coreFlags *core.Flags) *EncryptCmd {
	return &EncryptCmd{coreFlags: coreFlags}
}

func (ec *EncryptCmd) Register(app *cli.Command) *cli.Command {
	cmds := []*cli.Command{
		{
			Name:  "encrypt",
			Usage: "encrypt vault env files in-place",
			Description: `Encrypts every env file marked 'vault: true' in wrangler-manager.yml
with age, writing <file>.age and removing the plaintext.

Files whose .age version already exists are skipped. With --dry-run nothing is
written and the command fails if any vault file is still in plaintext.`,
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:        "dry-run",
					Usage:       "report plaintext vault files without encrypting them",
					Destination: &ec.flags.DryRun,
				},
			},
			Action: ec.encrypt,
		},
		{
			Name:  "decrypt",
			Usage: "decrypt vault env files in-place",
			Description: `Decrypts every <file>.age vault env file with the configured age identity,
restoring the plaintext and removing the encrypted version.

Files whose plaintext already exists are skipped.`,
			Action: ec.decrypt,
		},
	}

	app.Commands = append(app.Commands, cmds...)
	return app
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

func (ec *EncryptCmd) encrypt(ctx context.Context, cmd *cli.Command) error {
	cfg, err := core.SetupEnv(ec.coreFlags.ProjectFile)
	if err != nil {
		return err
	}

	files := cfg.VaultFiles()
	if len(files) == 0 {
		log.Info().Msg("No vault files configured")
		return nil
	}

	pending := []string{}
	for _, file := range files {
		switch {
		case !exists(file):
			log.Debug().Str("file", file).Msg("plaintext file doesn't exist, skipping")
		case exists(file + fcrypt.Ext):
			log.Debug().Str("file", file+fcrypt.Ext).Msg("encrypted file already exists, skipping")
		default:
			pending = append(pending, file)
		}
	}

	p := printer.Ctx(ctx)

	if ec.flags.DryRun {
		if len(pending) == 0 {
			p.Success("All vault files are encrypted")
			return nil
		}

		p.List("Vault files not encrypted:", pending)
		return fmt.Errorf("%d vault file(s) not encrypted, run 'wrangler-manager encrypt'", len(pending))
	}

	if len(pending) == 0 {
		p.Success("Nothing to encrypt")
		return nil
	}

	recipients, err := fcrypt.LoadPublicKeys(cfg.Age.Recipients)
	if err != nil {
		return err
	}

	for _, file := range pending {
		if err := fcrypt.EncryptInPlace(file, recipients...); err != nil {
			return fmt.Errorf("failed to encrypt %s: %w", file, err)
		}

		p.Success("Encrypted " + shortenPath(cfg.Dir, file) + fcrypt.Ext)
	}

	return nil
}

func (ec *EncryptCmd) decrypt(ctx context.Context, cmd *cli.Command) error {
	cfg, err := core.SetupEnv(ec.coreFlags.ProjectFile)
	if err != nil {
		return err
	}

	files := cfg.VaultFiles()
	if len(files) == 0 {
		log.Info().Msg("No vault files configured")
		return nil
	}

	identity, err := cfg.Age.ReadIdentity()
	if err != nil {
		return err
	}

	p := printer.Ctx(ctx)

	decrypted := 0
	for _, file := range files {
		source := file + fcrypt.Ext

		if !exists(source) {
			log.Debug().Str("file", source).Msg("encrypted file doesn't exist, skipping")
			continue
		}

		if exists(file) {
			p.Skip(shortenPath(cfg.Dir, file) + " already exists, skipping")
			continue
		}

		if err := fcrypt.DecryptInPlace(source, identity); err != nil {
			return fmt.Errorf("failed to decrypt %s: %w", source, err)
		}

		decrypted++
		p.Success("Decrypted " + strings.TrimSuffix(shortenPath(cfg.Dir, source), fcrypt.Ext))
	}

	if decrypted == 0 {
		p.Success("Nothing to decrypt")
	}

	return nil
}
