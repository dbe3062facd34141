package tagbump

import "strings"

// DeriveVersion returns the release version encoded in tag as "<prefix><version>".
// It fails when tag does not start with prefix, when the remainder is not a
// full SemVer, or when the version is a prerelease.
func DeriveVersion(prefix, tag string) (Version, bool) {
	rest, ok := strings.CutPrefix(tag, prefix)
	if !ok {
		return Version{}, false
	}

	v, ok := Clean(rest)
	if !ok || !v.IsRelease() {
		return Version{}, false
	}

	return v, true
}

// FormatTag renders v as a tag name with prefix.
func FormatTag(prefix string, v Version) string {
	return prefix + v.String()
}

// resolveOverride parses an explicit last-version input that may or may not
// carry the prefix.
func resolveOverride(prefix, raw string) (Version, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Version{}, false
	}

	if v, ok := DeriveVersion(prefix, raw); ok {
		return v, true
	}

	v, ok := Clean(raw)
	if !ok || !v.IsRelease() {
		return Version{}, false
	}

	return v, true
}

// resolveFallback parses the fallback version, substituting 0.0.0 when it is
// empty, invalid or a prerelease.
func resolveFallback(raw string) (Version, bool) {
	v, ok := Clean(raw)
	if !ok || !v.IsRelease() {
		return Version{}, false
	}

	return v, true
}
