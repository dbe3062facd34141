package tagbump

import sv "github.com/woozymasta/semver"

// parseSemver accepts an optional leading 'v' and shorthand forms; callers
// check HasPatch when a full triple is required.
func parseSemver(s string) (sv.Semver, bool) {
	return sv.Parse(s)
}

// makeSemver is a light Semver constructor without parsing.
// prerelease is given without the leading '-' (e.g. "0" or "alpha.0").
func makeSemver(maj, min, pat int, prerelease string) sv.Semver {
	flags := sv.FlagHasMajor | sv.FlagHasMinor | sv.FlagHasPatch
	if prerelease != "" {
		flags |= sv.FlagHasPre
	}

	return sv.Semver{
		Major:      maj,
		Minor:      min,
		Patch:      pat,
		Prerelease: prerelease,
		Flags:      flags,
		Valid:      true,
	}
}
