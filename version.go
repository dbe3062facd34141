package tagbump

import (
	"strconv"
	"strings"
)

// Version is a MAJOR.MINOR.PATCH[-PRERELEASE] triple.
// Values are only produced by Clean, Bump and DeriveVersion; build metadata is dropped.
type Version struct {
	// Prerelease holds dot-separated identifiers without the leading '-'.
	Prerelease string

	Major int
	Minor int
	Patch int
}

// Clean validates raw and returns it as a Version.
//
// Surrounding whitespace, leading '=' and a leading 'v' are accepted.
// Shorthand forms (X, X.Y), non-numeric components and anything else
// rejected by the SemVer grammar yield false.
func Clean(raw string) (Version, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSpace(strings.TrimLeft(s, "="))
	if s == "" {
		return Version{}, false
	}

	v, ok := parseSemver(s)
	if !ok || !v.IsValid() || !v.HasPatch() {
		return Version{}, false
	}

	return Version{
		Major:      v.Major,
		Minor:      v.Minor,
		Patch:      v.Patch,
		Prerelease: v.Prerelease,
	}, true
}

// IsRelease reports whether v carries no prerelease identifiers.
func (v Version) IsRelease() bool {
	return v.Prerelease == ""
}

// Compare returns -1, 0 or +1 by SemVer precedence.
func (v Version) Compare(o Version) int {
	c := makeSemver(v.Major, v.Minor, v.Patch, v.Prerelease).
		Compare(makeSemver(o.Major, o.Minor, o.Patch, o.Prerelease))

	switch {
	case c < 0:
		return -1
	case c > 0:
		return 1
	default:
		return 0
	}
}

// String returns "MAJOR.MINOR.PATCH[-PRERELEASE]" without any prefix.
func (v Version) String() string {
	var b strings.Builder
	b.Grow(16 + len(v.Prerelease))

	b.WriteString(strconv.Itoa(v.Major))
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(v.Minor))
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(v.Patch))

	if v.Prerelease != "" {
		b.WriteByte('-')
		b.WriteString(v.Prerelease)
	}

	return b.String()
}
