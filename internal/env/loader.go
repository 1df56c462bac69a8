package env

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"filippo.io/age"
	"github.com/hay-kot/wrangler-manager/internal/core"
	"github.com/hay-kot/wrangler-manager/pkgs/fcrypt"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Load merges every env file into e. Variables already present, including
// those from the process environment, are never overridden.
//
// Plain files that do not exist are skipped. Vault files are read from
// <path>.age and decrypted with identity; a missing vault file is skipped
// but an existing one without an identity is an error.
func Load(e *Environment, files []core.EnvFile, identity age.Identity) error {
	for _, f := range files {
		vars, err := loadFile(f, identity)
		if err != nil {
			return fmt.Errorf("failed to load env file %s: %w", f.Path, err)
		}

		if vars == nil {
			continue
		}

		added := e.Merge(vars)

		log.Debug().
			Str("path", f.Path).
			Bool("vault", f.IsVault).
			Int("added", len(added)).
			Msg("loaded env file")
	}

	return nil
}

func loadFile(f core.EnvFile, identity age.Identity) (map[string]string, error) {
	if !f.IsVault {
		vars, err := godotenv.Read(f.Path)
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("path", f.Path).Msg("env file does not exist, skipping")
			return nil, nil
		}

		return vars, err
	}

	path := f.Path + fcrypt.Ext
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("path", path).Msg("vault file does not exist, skipping")
		return nil, nil
	}

	if identity == nil {
		return nil, fmt.Errorf("no age identity loaded for encrypted file %s", path)
	}

	plaintext, err := fcrypt.DecryptToBytes(path, identity)
	if err != nil {
		return nil, err
	}

	return godotenv.Parse(bytes.NewReader(plaintext))
}
