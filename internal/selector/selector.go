package selector

import "strings"

// ModuleExtension is the only file extension ever handed to the decompiler.
const ModuleExtension = ".dll"

// Rule selects modules by exact filename or by keyword substring.
type Rule struct {
	ExplicitNames []string
	Keywords      []string
}

// Matches reports whether name is a module accepted by the rule.
// Matching is case-sensitive.
func (r Rule) Matches(name string) bool {
	if !strings.HasSuffix(name, ModuleExtension) {
		return false
	}
	for _, explicit := range r.ExplicitNames {
		if name == explicit {
			return true
		}
	}
	for _, keyword := range r.Keywords {
		if strings.Contains(name, keyword) {
			return true
		}
	}
	return false
}

// Select returns the names accepted by rule, preserving input order.
func Select(names []string, rule Rule) []string {
	selected := make([]string, 0, len(names))
	for _, name := range names {
		if rule.Matches(name) {
			selected = append(selected, name)
		}
	}
	return selected
}
