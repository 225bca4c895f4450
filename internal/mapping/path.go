package mapping

import (
	"errors"
	"fmt"
	"strings"
)

// FieldPath is a parsed field name; promoted fields have one segment per
// embedded struct, e.g. "Base.ID".
type FieldPath []string

// String returns the dotted form.
func (p FieldPath) String() string {
	return strings.Join(p, ".")
}

// Last returns the name of the field itself.
func (p FieldPath) Last() string {
	if len(p) == 0 {
		return ""
	}

	return p[len(p)-1]
}

// ParsePath parses a field path string into a FieldPath.
// Supports: "Field", "Embedded.Field".
func ParsePath(path string) (FieldPath, error) {
	if path == "" {
		return nil, errors.New("empty path")
	}

	var segments FieldPath

	for part := range strings.SplitSeq(path, ".") {
		if part == "" {
			return nil, fmt.Errorf("invalid path %q: empty segment", path)
		}

		// Validate identifier (basic check)
		if !isValidIdent(part) {
			return nil, fmt.Errorf("invalid path %q: invalid identifier %q", path, part)
		}

		segments = append(segments, part)
	}

	return segments, nil
}

// isValidIdent checks if a string is a valid Go identifier.
func isValidIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			// First character must be letter or underscore
			if !isLetter(r) && r != '_' {
				return false
			}
		} else {
			// Subsequent characters can be letter, digit, or underscore
			if !isLetter(r) && !isDigit(r) && r != '_' {
				return false
			}
		}
	}

	return true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
