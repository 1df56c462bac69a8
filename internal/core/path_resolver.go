package core

import (
	"os"
	"path/filepath"
	"strings"
)

// PathResolver turns relative paths, and paths starting with '~', into
// absolute paths rooted at the project directory.
type PathResolver struct {
	configDir string
}

func (pr PathResolver) Resolve(ip string) (string, error) {
	if strings.HasPrefix(ip, "~") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		ip = filepath.Join(homeDir, strings.TrimPrefix(ip, "~"))
	}

	if filepath.IsAbs(ip) {
		return filepath.Clean(ip), nil
	}

	if pr.configDir != "" {
		return filepath.Join(pr.configDir, ip), nil
	}

	absPath, err := filepath.Abs(ip)
	if err != nil {
		return "", err
	}

	return absPath, nil
}
