// Package cll provides utilities for building CLI applications with urfave/cli/v3.
package cll

import "github.com/urfave/cli/v3"

// Registerable defines a type that can register itself with a CLI command.
// Implementations append subcommands to the provided root command.
type Registerable interface {
	Register(*cli.Command) *cli.Command
}

// Register chains multiple Registerable implementations onto a root command
// in the order given.
//
// Example:
//
//	root := &cli.Command{Name: "wrangler-manager"}
//	root = cll.Register(root, initCmd, generateCmd)
func Register(root *cli.Command, subs ...Registerable) *cli.Command {
	for _, s := range subs {
		root = s.Register(root)
	}

	return root
}

// EnvWithPrefix returns a function that creates environment variable sources
// with a consistent prefix.
//
// Example:
//
//	env := cll.EnvWithPrefix("WRANGLER_MANAGER_")
//	flag := &cli.StringFlag{
//		Name:    "log-level",
//		Sources: env("LOG_LEVEL"), // reads WRANGLER_MANAGER_LOG_LEVEL
//	}
func EnvWithPrefix(prefix string) func(strs ...string) cli.ValueSourceChain {
	return func(strs ...string) cli.ValueSourceChain {
		withPrefix := make([]string, len(strs))

		for i, str := range strs {
			withPrefix[i] = prefix + str
		}

		return cli.EnvVars(withPrefix...)
	}
}
