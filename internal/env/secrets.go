package env

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Secrets renders the selected entries as KEY=VALUE lines, in key order,
// joined by newlines with no trailing newline. Values are written verbatim.
// A nil keep selects every entry.
func (e *Environment) Secrets(keep func(key, value string) (bool, error)) (string, error) {
	lines := make([]string, 0, len(e.vars))

	for _, k := range e.Keys() {
		v := e.vars[k]

		if keep != nil {
			ok, err := keep(k, v)
			if err != nil {
				return "", err
			}
			if !ok {
				continue
			}
		}

		lines = append(lines, k+"="+v)
	}

	return strings.Join(lines, "\n"), nil
}

// Filter is a compiled expr-lang predicate over a single variable. The
// expression sees `key`, `value` and `placeholder`, the latter being true
// when the template references the variable.
type Filter struct {
	code    string
	program *vm.Program
}

func filterEnv(key, value string, placeholder bool) map[string]any {
	return map[string]any{
		"key":         key,
		"value":       value,
		"placeholder": placeholder,
	}
}

// CompileFilter compiles code once for reuse. An empty expression matches
// every variable.
func CompileFilter(code string) (*Filter, error) {
	if strings.TrimSpace(code) == "" {
		code = "true"
	}

	program, err := expr.Compile(code, expr.Env(filterEnv("", "", false)), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid secrets filter %q: %w", code, err)
	}

	return &Filter{code: code, program: program}, nil
}

func (f *Filter) Match(key, value string, placeholder bool) (bool, error) {
	output, err := expr.Run(f.program, filterEnv(key, value, placeholder))
	if err != nil {
		return false, fmt.Errorf("secrets filter failed for %s: %w", key, err)
	}

	// expr.AsBool guarantees a bool result.
	result, ok := output.(bool)
	if !ok {
		return false, fmt.Errorf("secrets filter did not evaluate to boolean, got %T", output)
	}

	return result, nil
}

func (f *Filter) String() string {
	return f.code
}
