package output

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// varPattern matches {{variableName}} with optional whitespace inside braces.
var varPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_.]*)\s*\}\}`)

// RenderTemplate substitutes {{name}} placeholders in tpl with values from
// vars. Commands expose the variables number, words and digits, so
// "{{number}} reads as {{words}}" becomes "55 reads as fifty-five".
// An unknown placeholder is an error, naming what would have been available.
func RenderTemplate(tpl string, vars map[string]string) (string, error) {
	var unknown []string
	out := varPattern.ReplaceAllStringFunc(tpl, func(m string) string {
		name := varPattern.FindStringSubmatch(m)[1]
		if v, ok := vars[name]; ok {
			return v
		}
		unknown = append(unknown, name)
		return m
	})
	if len(unknown) > 0 {
		sort.Strings(unknown)
		known := make([]string, 0, len(vars))
		for name := range vars {
			known = append(known, name)
		}
		sort.Strings(known)
		return "", fmt.Errorf("unknown template variable %s (available: %s)",
			strings.Join(unknown, ", "), strings.Join(known, ", "))
	}
	return out, nil
}

// TemplateVars returns the unique placeholder names used in tpl, sorted.
func TemplateVars(tpl string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range varPattern.FindAllStringSubmatch(tpl, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	sort.Strings(names)
	return names
}
