package generator

import (
	"cmp"
	"regexp"
	"slices"
	"strings"

	"github.com/hay-kot/wrangler-manager/internal/env"
)

// placeholderPattern matches tokens such as __MY_DATABASE_ID__.
var placeholderPattern = regexp.MustCompile(`__[A-Z0-9_]+__`)

// Placeholder is a single token occurrence in a template. Line and Column are
// 1-based.
type Placeholder struct {
	Token  string
	Name   string
	Line   int
	Column int
}

// Scan returns every placeholder occurrence in text, in order of appearance.
func Scan(text string) []Placeholder {
	matches := placeholderPattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	placeholders := make([]Placeholder, 0, len(matches))
	for _, m := range matches {
		token := text[m[0]:m[1]]
		before := text[:m[0]]

		placeholders = append(placeholders, Placeholder{
			Token:  token,
			Name:   nameOf(token),
			Line:   strings.Count(before, "\n") + 1,
			Column: m[0] - (strings.LastIndex(before, "\n") + 1) + 1,
		})
	}

	return placeholders
}

// nameOf strips exactly two leading and two trailing underscores.
func nameOf(token string) string {
	return strings.TrimSuffix(strings.TrimPrefix(token, "__"), "__")
}

// Distinct keeps the first occurrence of each variable name.
func Distinct(placeholders []Placeholder) []Placeholder {
	seen := make(map[string]struct{}, len(placeholders))
	out := make([]Placeholder, 0, len(placeholders))

	for _, p := range placeholders {
		if _, ok := seen[p.Name]; ok {
			continue
		}

		seen[p.Name] = struct{}{}
		out = append(out, p)
	}

	return out
}

// Unresolved returns the distinct placeholders whose variable is unset or
// empty in e. Every placeholder is checked; the result is in order of first
// appearance.
func Unresolved(placeholders []Placeholder, e *env.Environment) []Placeholder {
	var missing []Placeholder

	for _, p := range Distinct(placeholders) {
		if e.Get(p.Name) == "" {
			missing = append(missing, p)
		}
	}

	return missing
}

// Render replaces, for every variable in e, the first occurrence of its
// __KEY__ token with the value. Later occurrences of the same token are left
// as they are. Longer keys are applied first so a key whose token is part of
// another placeholder, such as A inside __A__B__, cannot break it. Keys of
// equal length are applied in key order.
func Render(text string, e *env.Environment) string {
	keys := e.Keys()
	slices.SortStableFunc(keys, func(a, b string) int {
		return cmp.Compare(len(b), len(a))
	})

	for _, k := range keys {
		text = strings.Replace(text, "__"+k+"__", e.Get(k), 1)
	}

	return text
}
