package tagbump

import (
	"regexp"
	"testing"
)

func TestMatcherCandidate(t *testing.T) {
	t.Parallel()

	sig := "sha256-aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa.sig"

	cases := []struct {
		name string
		opt  Options
		tag  string
		want bool
	}{
		{"plain", Options{}, "v1.2.3", true},
		{"empty", Options{}, "", false},
		{"prefix mismatch", Options{}, "1.2.3", false},
		{"prerelease", Options{}, "v1.2.3-rc.1", false},
		{"signature", Options{ExcludeSignatures: true}, sig, false},
		{"include miss", Options{Include: regexp.MustCompile(`^v1\.`)}, "v2.0.0", false},
		{"include hit", Options{Include: regexp.MustCompile(`^v1\.`)}, "v1.0.0", true},
		{"exclude hit", Options{Exclude: regexp.MustCompile(`\.0$`)}, "v1.0.0", false},
		{"exclude miss", Options{Exclude: regexp.MustCompile(`\.0$`)}, "v1.0.1", true},

		// strict mode rejects decorations the parser tolerates
		{"loose double v", Options{}, "vv1.2.3", true},
		{"strict double v", Options{Strict: true}, "vv1.2.3", false},
		{"strict build", Options{Strict: true}, "v1.2.3+build", false},
		{"strict plain", Options{Strict: true}, "v1.2.3", true},

		{"range in", Options{Range: Range{Min: "1", Max: "1"}}, "v1.9.9", true},
		{"range out", Options{Range: Range{Min: "1", Max: "1"}}, "v2.0.0", false},
	}

	for _, tc := range cases {
		m := newMatcher(tc.opt.normalized())
		if _, got := m.candidate(tc.tag); got != tc.want {
			t.Fatalf("%s: candidate(%q) = %v; want %v", tc.name, tc.tag, got, tc.want)
		}
	}
}

func TestPrefilterTag(t *testing.T) {
	t.Parallel()

	opt := Options{
		ExcludeSignatures: true,
		Include:           regexp.MustCompile(`^[a-z0-9.]+$`),
		Exclude:           regexp.MustCompile(`^ba`),
	}

	cases := map[string]bool{
		"foo":   true,
		"bar":   false, // excluded
		"1.2.3": true,
		"V1":    false, // include is lowercase only
		"":      false,
		"sha256-0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef.sig": false,
	}

	for in, want := range cases {
		if got := prefilterTag(in, opt); got != want {
			t.Fatalf("prefilterTag(%q) = %v; want %v", in, got, want)
		}
	}
}
