// Package project scaffolds a new wrangler-manager project.
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hay-kot/wrangler-manager/internal/core"
	"github.com/hay-kot/wrangler-manager/internal/ignorefile"
	"github.com/rs/zerolog/log"
)

type FileStatus struct {
	Name    string
	Created bool // false when the file already existed and was left alone
}

type InitResult struct {
	Files       []FileStatus
	IgnoreAdded []string
}

// Init writes the default template and env file into dir unless they already
// exist, then makes sure the generated and secret files are git-ignored.
// Existing files are never modified, so Init is safe to run repeatedly. A
// failure part way through leaves whatever was already written.
func Init(dir string) (InitResult, error) {
	result := InitResult{}

	scaffold := []struct {
		name    string
		content string
	}{
		{core.TemplateFile, DefaultTemplate},
		{core.DotenvFile, DefaultEnv},
	}

	for _, f := range scaffold {
		created, err := writeIfAbsent(filepath.Join(dir, f.name), f.content)
		if err != nil {
			return result, err
		}

		result.Files = append(result.Files, FileStatus{Name: f.name, Created: created})
	}

	added, err := ignorefile.Ensure(
		filepath.Join(dir, core.IgnoreFile),
		[]string{core.OutputFile, core.SecretsFile, core.DotenvFile},
	)
	if err != nil {
		return result, err
	}

	result.IgnoreAdded = added

	return result, nil
}

func writeIfAbsent(path, content string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		log.Debug().Str("path", path).Msg("file exists, skipping")
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}

	log.Debug().Str("path", path).Msg("created file")

	return true, nil
}
