package ignorefile

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

type Status struct {
	Name    string
	Ignored bool
}

// Check reports, for each slash separated project relative name, whether the
// patterns in the ignore file at path exclude it. Unlike [Ensure] this uses
// real gitignore matching, including negations.
func Check(path string, names []string) ([]Status, error) {
	content, err := read(path)
	if err != nil {
		return nil, err
	}

	matcher := gitignore.NewMatcher(parsePatterns(content))

	statuses := make([]Status, 0, len(names))
	for _, name := range names {
		statuses = append(statuses, Status{
			Name:    name,
			Ignored: matcher.Match(strings.Split(name, "/"), false),
		})
	}

	return statuses, nil
}

func parsePatterns(content string) []gitignore.Pattern {
	var patterns []gitignore.Pattern

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}

	return patterns
}
