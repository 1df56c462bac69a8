// Package generator renders the final wrangler configuration and the local
// secrets file from a placeholder template and a variable environment.
package generator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hay-kot/wrangler-manager/internal/core"
	"github.com/hay-kot/wrangler-manager/internal/env"
	"github.com/hay-kot/wrangler-manager/internal/ignorefile"
	"github.com/rs/zerolog/log"
)

// PromptFunc asks for values of the named variables. Returned empty values
// are treated as still missing.
type PromptFunc func(names []string) (map[string]string, error)

type Options struct {
	// Dir is the project directory all conventional files are written to.
	Dir string
	// TemplatePath defaults to core.TemplateFile. Relative paths resolve
	// against Dir.
	TemplatePath string
	Env          *env.Environment
	// Filter selects the variables written to the secrets file. Nil keeps
	// every variable.
	Filter *env.Filter
	// Prompt, when set, is given one chance to fill in missing variables
	// before validation fails.
	Prompt PromptFunc
	// DryRun renders without writing anything.
	DryRun bool
}

type Result struct {
	TemplatePath string
	OutputPath   string
	SecretsPath  string
	// Rendered is the substituted template.
	Rendered string
	// Placeholders are the distinct variables the template references.
	Placeholders []string
	// SecretsCount is the number of KEY=VALUE lines written.
	SecretsCount int
	// IgnoreAdded lists the names appended to .gitignore.
	IgnoreAdded []string
}

type Generator struct {
	opts Options
}

func New(opts Options) *Generator {
	if opts.TemplatePath == "" {
		opts.TemplatePath = core.TemplateFile
	}

	if !filepath.IsAbs(opts.TemplatePath) {
		opts.TemplatePath = filepath.Join(opts.Dir, opts.TemplatePath)
	}

	if opts.Env == nil {
		opts.Env = env.New(nil)
	}

	return &Generator{opts: opts}
}

// Generate validates the template against the environment and, when every
// placeholder resolves, writes the output and secrets files and updates the
// ignore file. Validation failures return a *MissingVariablesError before
// any file is touched.
func (g *Generator) Generate() (Result, error) {
	result := Result{
		TemplatePath: g.opts.TemplatePath,
		OutputPath:   filepath.Join(g.opts.Dir, core.OutputFile),
		SecretsPath:  filepath.Join(g.opts.Dir, core.SecretsFile),
	}

	data, err := os.ReadFile(g.opts.TemplatePath)
	if errors.Is(err, fs.ErrNotExist) {
		return result, fmt.Errorf("config template %s: %w", g.opts.TemplatePath, ErrTemplateNotFound)
	}
	if err != nil {
		return result, fmt.Errorf("failed to read template file %s: %w", g.opts.TemplatePath, err)
	}

	tmpl := string(data)
	placeholders := Scan(tmpl)

	referenced := map[string]bool{}
	for _, p := range Distinct(placeholders) {
		referenced[p.Name] = true
		result.Placeholders = append(result.Placeholders, p.Name)
	}

	if err := g.validate(tmpl, placeholders); err != nil {
		return result, err
	}

	result.Rendered = Render(tmpl, g.opts.Env)

	log.Debug().
		Str("template", g.opts.TemplatePath).
		Int("placeholders", len(result.Placeholders)).
		Int("variables", g.opts.Env.Len()).
		Msg("rendered template")

	secrets, err := g.opts.Env.Secrets(func(key, value string) (bool, error) {
		if g.opts.Filter == nil {
			return true, nil
		}
		return g.opts.Filter.Match(key, value, referenced[key])
	})
	if err != nil {
		return result, err
	}

	if secrets != "" {
		result.SecretsCount = strings.Count(secrets, "\n") + 1
	}

	if g.opts.DryRun {
		return result, nil
	}

	if err := os.WriteFile(result.OutputPath, []byte(result.Rendered), 0o644); err != nil {
		return result, fmt.Errorf("failed to write output file: %w", err)
	}

	if err := os.WriteFile(result.SecretsPath, []byte(secrets), 0o600); err != nil {
		return result, fmt.Errorf("failed to write secrets file: %w", err)
	}

	result.IgnoreAdded, err = ignorefile.Ensure(
		filepath.Join(g.opts.Dir, core.IgnoreFile),
		[]string{core.OutputFile, core.SecretsFile},
	)
	if err != nil {
		return result, err
	}

	return result, nil
}

func (g *Generator) validate(tmpl string, placeholders []Placeholder) error {
	missing := Unresolved(placeholders, g.opts.Env)
	if len(missing) == 0 {
		return nil
	}

	if g.opts.Prompt != nil {
		names := make([]string, len(missing))
		for i, p := range missing {
			names[i] = p.Name
		}

		values, err := g.opts.Prompt(names)
		if err != nil {
			return fmt.Errorf("failed to prompt for missing variables: %w", err)
		}

		for _, name := range names {
			if v := values[name]; v != "" {
				g.opts.Env.Set(name, v)
			}
		}

		missing = Unresolved(placeholders, g.opts.Env)
		if len(missing) == 0 {
			return nil
		}
	}

	return NewMissingVariablesError(g.opts.TemplatePath, tmpl, missing)
}
