package tagbump

import (
	"strings"
)

// toTok normalizes a free-form string into a lowercased token.
func toTok(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SplitList splits a comma or newline separated input into trimmed,
// non-empty items. Used for multi-value inputs such as ignore labels.
func SplitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})

	return compactStrings(fields)
}

// compactStrings trims items and drops empty ones and repeats,
// preserving the order of first appearance.
func compactStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}

		if _, ok := seen[s]; ok {
			continue
		}

		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out
}

// capStrings returns out[:min(limit, len(out))] if limit>0; otherwise out.
func capStrings(out []string, limit int) []string {
	if limit > 0 && limit < len(out) {
		return out[:limit]
	}

	return out
}

// isSigTag reports whether s matches "sha256-<64 anycase hex>.sig".
func isSigTag(s string) bool {
	// "sha256-" (7) + 64 hex + ".sig" (4) = 75
	if len(s) != 75 || s[:7] != "sha256-" || s[71:] != ".sig" {
		return false
	}

	// check 64 anycase hex chars
	for i := 7; i < 71; i++ {
		c := s[i]
		if (c < '0' || c > '9') &&
			(c < 'a' || c > 'f') &&
			(c < 'A' || c > 'F') {
			return false
		}
	}

	return true
}
