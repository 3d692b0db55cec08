// AngelaMos | 2026
// validation.go

package core

import (
	"strings"
)

type Field struct {
	Name  string
	Value string
}

// RequireNonBlank runs before any persistence call so the same rules apply
// regardless of which store backs a repository.
func RequireNonBlank(fields ...Field) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			missing = append(missing, f.Name)
		}
	}

	switch len(missing) {
	case 0:
		return nil
	case 1:
		return ValidationError(missing[0] + " is required")
	default:
		return ValidationError(strings.Join(missing, ", ") + " are required")
	}
}

func OneOf(field, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return ValidationError(
		field + " must be one of: " + strings.Join(allowed, ", "),
	)
}
