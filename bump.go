package tagbump

// Bump returns v incremented by f with lower components reset and no
// prerelease. FragmentIgnore and unknown fragments return false: no new
// version is produced.
func Bump(v Version, f Fragment) (Version, bool) {
	switch f {
	case FragmentMajor:
		return Version{Major: v.Major + 1}, true
	case FragmentMinor:
		return Version{Major: v.Major, Minor: v.Minor + 1}, true
	case FragmentPatch:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}, true
	default:
		return Version{}, false
	}
}
