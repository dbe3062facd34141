package tagbump

// Fragment is the version component to increment, or the ignore directive.
type Fragment uint8

const (
	// FragmentPatch increments PATCH. It is the default when no label matches.
	FragmentPatch Fragment = iota
	// FragmentMinor increments MINOR and resets PATCH.
	FragmentMinor
	// FragmentMajor increments MAJOR and resets MINOR and PATCH.
	FragmentMajor
	// FragmentIgnore suppresses the increment.
	FragmentIgnore
)

// fragmentRank is the label precedence: a higher rank wins.
var fragmentRank = map[Fragment]int{
	FragmentIgnore: 3,
	FragmentMajor:  2,
	FragmentMinor:  1,
	FragmentPatch:  0,
}

// Rank returns the precedence of f, -1 for unknown values.
func (f Fragment) Rank() int {
	if r, ok := fragmentRank[f]; ok {
		return r
	}

	return -1
}

// String returns a stable textual representation for Fragment.
func (f Fragment) String() string {
	switch f {
	case FragmentPatch:
		return "patch"
	case FragmentMinor:
		return "minor"
	case FragmentMajor:
		return "major"
	case FragmentIgnore:
		return "ignore"
	default:
		return "unknown"
	}
}
