package tagbump

// Binding ties a label string to the fragment it selects.
type Binding struct {
	Label    string
	Fragment Fragment
}

// ResolveFragment selects the fragment of the highest-ranked binding whose
// label is present in labels (ignore > major > minor > patch).
// It returns false when no label matches; callers default to FragmentPatch.
//
// A label bound to several fragments selects the highest-ranked of them.
func ResolveFragment(labels []string, priority []Binding) (Fragment, bool) {
	if len(labels) == 0 || len(priority) == 0 {
		return FragmentPatch, false
	}

	present := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		present[l] = struct{}{}
	}

	var (
		best  Fragment
		found bool
	)

	for _, b := range priority {
		if b.Label == "" {
			continue
		}

		if _, ok := present[b.Label]; !ok {
			continue
		}

		if !found || b.Fragment.Rank() > best.Rank() {
			best, found = b.Fragment, true
		}
	}

	if !found {
		return FragmentPatch, false
	}

	return best, true
}
