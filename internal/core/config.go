package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"filippo.io/age"
	"github.com/adrg/xdg"
	"github.com/goccy/go-yaml"
	"github.com/hay-kot/wrangler-manager/pkgs/fcrypt"
	"github.com/rs/zerolog/log"
)

type ConfigFile struct {
	Age      Age       `yaml:"age"`
	EnvFiles []EnvFile `yaml:"env_files"`
	Secrets  Secrets   `yaml:"secrets"`

	// Dir is the absolute project directory. Every conventional file lives here.
	Dir string `yaml:"-"`
}

// DefaultIdentityFile is used when the project file does not name an age identity.
func DefaultIdentityFile() string {
	return filepath.Join(xdg.ConfigHome, "wrangler-manager", "age.key")
}

// SetupEnv loads the project file at cfgpath. The file is optional: when it
// does not exist the defaults are returned with Dir set to the directory that
// would have held it.
func SetupEnv(cfgpath string) (ConfigFile, error) {
	cfg := ConfigFile{}

	absolutePath, err := filepath.Abs(cfgpath)
	if err != nil {
		return cfg, err
	}

	cfg.Dir = filepath.Dir(absolutePath)

	data, err := os.ReadFile(absolutePath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Debug().Str("path", absolutePath).Msg("no project file, using defaults")
	case err != nil:
		return cfg, fmt.Errorf("failed to read project file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse project file %s: %w", cfgpath, err)
		}
	}

	if len(cfg.EnvFiles) == 0 {
		cfg.EnvFiles = []EnvFile{{Path: DotenvFile}}
	}

	if cfg.Age.IdentityFile == "" {
		cfg.Age.IdentityFile = DefaultIdentityFile()
	}

	pr := PathResolver{configDir: cfg.Dir}

	for i := range cfg.EnvFiles {
		cfg.EnvFiles[i].Path, err = pr.Resolve(cfg.EnvFiles[i].Path)
		if err != nil {
			return cfg, err
		}
	}

	cfg.Age.IdentityFile, err = pr.Resolve(cfg.Age.IdentityFile)
	if err != nil {
		return cfg, err
	}

	log.Debug().
		Str("dir", cfg.Dir).
		Int("env_files", len(cfg.EnvFiles)).
		Msg("project configured")

	return cfg, nil
}

// Path joins name onto the project directory.
func (c ConfigFile) Path(name string) string {
	return filepath.Join(c.Dir, name)
}

// VaultFiles returns the plaintext paths of every env file stored encrypted.
func (c ConfigFile) VaultFiles() []string {
	files := []string{}

	for _, ef := range c.EnvFiles {
		if ef.IsVault {
			files = append(files, ef.Path)
		}
	}

	return files
}

// SensitiveFiles lists the project relative names that must never be committed.
func (c ConfigFile) SensitiveFiles() []string {
	files := []string{OutputFile, SecretsFile, DotenvFile}

	for _, vf := range c.VaultFiles() {
		rel, err := filepath.Rel(c.Dir, vf)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}

		files = append(files, filepath.ToSlash(rel))
	}

	return files
}

type Age struct {
	Recipients   []string `yaml:"recipients"`
	IdentityFile string   `yaml:"identity_file"`
}

func (a Age) ReadIdentity() (age.Identity, error) {
	identityData, err := os.ReadFile(a.IdentityFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read identity file %s: %w", a.IdentityFile, err)
	}

	// Skip comments and blank lines, age-keygen writes a commented header.
	var keyLine string
	for _, line := range strings.Split(string(identityData), "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			keyLine = line
			break
		}
	}

	if keyLine == "" {
		return nil, fmt.Errorf("no valid key found in identity file %s", a.IdentityFile)
	}

	identity, err := fcrypt.LoadPrivateKey(keyLine)
	if err != nil {
		return nil, fmt.Errorf("failed to load private key: %w", err)
	}

	return identity, nil
}

// HasIdentity reports whether the identity file exists.
func (a Age) HasIdentity() bool {
	_, err := os.Stat(a.IdentityFile)
	return err == nil
}

type EnvFile struct {
	Path    string `yaml:"path"`
	IsVault bool   `yaml:"vault"`
}

type Secrets struct {
	// Filter is an expr-lang expression selecting which variables are written
	// to the secrets file. Empty selects everything.
	Filter string `yaml:"filter"`
}
