package tagbump

import "github.com/woozymasta/semver"

// bounds is a Range compiled once per scan.
type bounds struct {
	minFloor     semver.Semver
	maxCeil      semver.Semver // strict exclusive ceiling
	haveMin      bool
	haveMax      bool
	minExclusive bool
}

// compileRange parses both ends of r. Unparseable ends are ignored.
func compileRange(r Range) bounds {
	var b bounds
	if !r.Enabled() {
		return b
	}

	if r.Min != "" {
		b.minFloor, b.haveMin = compileMin(r.Min)
		b.minExclusive = r.MinExclusive
	}

	if r.Max != "" {
		b.maxCeil, b.haveMax = compileMaxExclusive(r.Max, r.MaxExclusive)
	}

	return b
}

// contains reports whether v lies within the compiled bounds.
func (b bounds) contains(v Version) bool {
	if !b.haveMin && !b.haveMax {
		return true
	}

	sv := makeSemver(v.Major, v.Minor, v.Patch, v.Prerelease)

	if b.haveMin {
		cmp := sv.Compare(b.minFloor)
		if b.minExclusive {
			if cmp <= 0 {
				return false
			}
		} else if cmp < 0 {
			return false
		}
	}

	if b.haveMax && sv.Compare(b.maxCeil) >= 0 {
		return false
	}

	return true
}

// compileMin parses the lower bound; shorthands X / X.Y floor to X.0.0 / X.Y.0.
func compileMin(raw string) (semver.Semver, bool) {
	v, ok := semver.Parse(raw)
	if !ok || !v.IsValid() {
		return semver.Semver{}, false
	}

	if !v.HasPatch() {
		maj, min := v.Major, 0
		if v.HasMinor() {
			min = v.Minor
		}

		return makeSemver(maj, min, 0, ""), true
	}

	return v, true
}

// compileMaxExclusive turns the upper bound into a strict exclusive ceiling.
// Shorthand X:   excl -> < X.0.0-0;  incl -> < (X+1).0.0-0
// Shorthand X.Y: excl -> < X.Y.0-0;  incl -> < X.(Y+1).0-0
// Full:
//
//	excl -> < v
//	incl -> pre: < v.pre.0; release: < (patch+1)-0
func compileMaxExclusive(raw string, maxExclusive bool) (semver.Semver, bool) {
	v, ok := semver.Parse(raw)
	if !ok || !v.IsValid() {
		return semver.Semver{}, false
	}

	if !v.HasPatch() {
		maj, min := v.Major, 0
		if v.HasMinor() {
			min = v.Minor
		}

		if maxExclusive {
			return makeSemver(maj, min, 0, "0"), true
		}

		if !v.HasMinor() {
			return makeSemver(maj+1, 0, 0, "0"), true
		}

		return makeSemver(maj, min+1, 0, "0"), true
	}

	if maxExclusive {
		return v, true
	}

	if v.HasPre() {
		return makeSemver(v.Major, v.Minor, v.Patch, v.Prerelease+".0"), true
	}

	return makeSemver(v.Major, v.Minor, v.Patch+1, "0"), true
}
