package tagbump

import "testing"

func TestFragmentString(t *testing.T) {
	t.Parallel()

	cases := map[Fragment]string{
		FragmentPatch:  "patch",
		FragmentMinor:  "minor",
		FragmentMajor:  "major",
		FragmentIgnore: "ignore",
		Fragment(42):   "unknown",
	}

	for f, want := range cases {
		if got := f.String(); got != want {
			t.Fatalf("Fragment(%d).String() = %q; want %q", f, got, want)
		}
	}
}

func TestFragmentRank(t *testing.T) {
	t.Parallel()

	order := []Fragment{FragmentPatch, FragmentMinor, FragmentMajor, FragmentIgnore}
	for i := 1; i < len(order); i++ {
		if order[i].Rank() <= order[i-1].Rank() {
			t.Fatalf("%v rank %d not above %v rank %d", order[i], order[i].Rank(), order[i-1], order[i-1].Rank())
		}
	}

	if got := Fragment(42).Rank(); got != -1 {
		t.Fatalf("unknown fragment rank = %d; want -1", got)
	}
}
