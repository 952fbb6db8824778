package trace

import (
	"fmt"
	"strings"
)

// nameOf returns names[v], or "unknown" for values without a name.
func nameOf[T ~uint8](names []string, v T) string {
	if int(v) < len(names) && names[v] != "" {
		return names[v]
	}
	return "unknown"
}

// parseName is the inverse of nameOf. what names the setting in errors.
func parseName[T ~uint8](what string, names []string, s string) (T, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	valid := make([]string, 0, len(names))
	for i, n := range names {
		if n == "" {
			continue
		}
		if n == s {
			return T(i), nil
		}
		valid = append(valid, n)
	}
	var zero T
	return zero, fmt.Errorf("invalid %s: %q (expected: %s)", what, s, strings.Join(valid, "|"))
}
