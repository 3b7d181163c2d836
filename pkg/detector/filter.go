package detector

import "strings"

// Without returns a copy of m without the metrics whose names match any of
// patterns. A pattern is an exact name or uses a leading and/or trailing
// "*" wildcard: "memory*", "*Rate", "*Cost*".
func (m Metrics) Without(patterns []string) Metrics {
	out := make(Metrics, len(m))
	for name, v := range m {
		if !matchesAny(name, patterns) {
			out[name] = v
		}
	}
	return out
}

func matchesAny(name string, patterns []string) bool {
	for _, p := range patterns {
		if matchesPattern(name, p) {
			return true
		}
	}
	return false
}

func matchesPattern(name, pattern string) bool {
	prefix := strings.HasSuffix(pattern, "*")
	suffix := strings.HasPrefix(pattern, "*")
	core := strings.Trim(pattern, "*")

	switch {
	case prefix && suffix:
		return strings.Contains(name, core)
	case suffix:
		return strings.HasSuffix(name, core)
	case prefix:
		return strings.HasPrefix(name, core)
	default:
		return name == pattern
	}
}
