// Package ignorefile maintains the project's .gitignore. Entries are only ever
// appended; existing lines are never removed or reordered.
package ignorefile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// Ensure appends every name in names that does not already occur in the file
// at path and returns the names it added. A name counts as present when it
// is a substring of the current content, so "wrangler.toml" is considered
// ignored by a line reading "wrangler.toml.bak". The file is only written
// when something is missing.
func Ensure(path string, names []string) ([]string, error) {
	content, err := read(path)
	if err != nil {
		return nil, err
	}

	missing := []string{}
	for _, name := range names {
		if !strings.Contains(content, name) {
			missing = append(missing, name)
		}
	}

	if len(missing) == 0 {
		log.Debug().Str("path", path).Msg("ignore file up to date")
		return nil, nil
	}

	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	content += strings.Join(missing, "\n") + "\n"

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}

	log.Debug().Str("path", path).Strs("added", missing).Msg("updated ignore file")

	return missing, nil
}

func read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	return string(data), nil
}
