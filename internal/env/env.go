// Package env builds the variable environment that placeholders are resolved
// against and that the secrets file mirrors.
package env

import (
	"maps"
	"os"
	"slices"
	"strings"
)

// Environment maps variable names to values. Iteration through Keys is in
// sorted order so rendering and the secrets file are deterministic.
type Environment struct {
	vars map[string]string
}

func New(vars map[string]string) *Environment {
	e := &Environment{vars: make(map[string]string, len(vars))}
	maps.Copy(e.vars, vars)
	return e
}

// FromOS snapshots the process environment. Later duplicates win, matching
// os.Getenv.
func FromOS() *Environment {
	return FromList(os.Environ())
}

// FromList parses KEY=VALUE pairs. Entries without '=' are ignored.
func FromList(list []string) *Environment {
	e := &Environment{vars: make(map[string]string, len(list))}

	for _, kv := range list {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}

		e.vars[k] = v
	}

	return e
}

// Lookup returns the value for key and whether it is set.
func (e *Environment) Lookup(key string) (string, bool) {
	v, ok := e.vars[key]
	return v, ok
}

// Get returns the value for key, or "" when unset.
func (e *Environment) Get(key string) string {
	return e.vars[key]
}

func (e *Environment) Set(key, value string) {
	e.vars[key] = value
}

// Merge adds every entry of vars whose key is not already set and returns
// the keys that were added.
func (e *Environment) Merge(vars map[string]string) []string {
	added := []string{}

	for _, k := range slices.Sorted(maps.Keys(vars)) {
		if _, ok := e.vars[k]; ok {
			continue
		}

		e.vars[k] = vars[k]
		added = append(added, k)
	}

	return added
}

func (e *Environment) Keys() []string {
	return slices.Sorted(maps.Keys(e.vars))
}

func (e *Environment) Len() int {
	return len(e.vars)
}
