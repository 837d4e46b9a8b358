package slug

import (
	"strings"
)

// Derive normalizes a directory name into a registry-safe package name.
// It lowercases the input, replaces every character outside [a-z0-9-~]
// with a dash, collapses runs of dashes and trims dashes from both ends.
//
// The result is a best-effort slug; no uniqueness or registry check is done.
func Derive(name string) string {
	lowered := strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(lowered))

	lastDash := false
	for _, r := range lowered {
		if isAllowed(r) && r != '-' {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		// literal dashes and replaced characters collapse together
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}

	return strings.Trim(b.String(), "-")
}

func isAllowed(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '-' || r == '~':
		return true
	}
	return false
}
