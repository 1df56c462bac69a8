package core

// Conventional file names, relative to the project directory.
const (
	TemplateFile = "wrangler-config.toml"
	OutputFile   = "wrangler.toml"
	DotenvFile   = ".env"
	SecretsFile  = ".dev.vars"
	IgnoreFile   = ".gitignore"
)

// DefaultProjectFile is the optional wrangler-manager settings file.
const DefaultProjectFile = "wrangler-manager.yml"

// EnvPrefix namespaces the environment variables read by CLI flags.
const EnvPrefix = "WRANGLER_MANAGER_"

type Flags struct {
	LogLevel    string
	ProjectFile string
}
