// Package commands contains the CLI commands for the application
package commands

import (
	"filippo.io/age"
	"github.com/hay-kot/wrangler-manager/internal/core"
	"github.com/hay-kot/wrangler-manager/internal/env"
	"github.com/hay-kot/wrangler-manager/pkgs/cll"
	"github.com/rs/zerolog/log"
)

var envvars = cll.EnvWithPrefix(core.EnvPrefix)

// loadEnvironment snapshots the process environment and merges the project's
// env files into it. The age identity is only loaded when the project has
// vault files and the identity file exists.
func loadEnvironment(cfg core.ConfigFile) (*env.Environment, error) {
	vars := env.FromOS()

	var identity age.Identity
	if len(cfg.VaultFiles()) > 0 && cfg.Age.HasIdentity() {
		var err error
		identity, err = cfg.Age.ReadIdentity()
		if err != nil {
			return nil, err
		}
	}

	if err := env.Load(vars, cfg.EnvFiles, identity); err != nil {
		return nil, err
	}

	log.Debug().Int("count", vars.Len()).Msg("variable environment loaded")

	return vars, nil
}
