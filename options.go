package tagbump

import "regexp"

// Defaults applied by DefaultOptions and to zero fields of Options.
const (
	DefaultPrefix      = "v"
	DefaultMajorLabel  = "major"
	DefaultMinorLabel  = "minor"
	DefaultPatchLabel  = "patch"
	DefaultIgnoreLabel = "no-version"
	DefaultFallback    = "0.0.0"
	DefaultPageSize    = 50
)

// Options configures version resolution, label mapping and publication.
type Options struct {
	// Include positive regex filter applied to the raw tag; keep only tags that match.
	Include *regexp.Regexp

	// Exclude negative regex filter applied to the raw tag; drop tags that match.
	Exclude *regexp.Regexp

	// Prefix every release tag starts with. Empty means DefaultPrefix.
	Prefix string

	// Labels bound to each fragment. Empty means the matching Default*Label.
	MajorLabel string
	MinorLabel string
	PatchLabel string

	// Fallback version used when no tag matches. Invalid or prerelease
	// values are replaced by DefaultFallback.
	Fallback string

	// LastVersion overrides discovery when it parses as a release version
	// (with or without Prefix).
	LastVersion string

	// Message passed to the publisher with the new tag.
	Message string

	// Target commit (or digest) the new tag points to.
	Target string

	// IgnoreLabels suppress the increment. Empty means [DefaultIgnoreLabel].
	IgnoreLabels []string

	// Range clipping of discovered candidates.
	Range Range

	// PageSize is the tag source batch size. <=0 means DefaultPageSize.
	PageSize int

	// Discovery selects how the latest release is found among tags.
	Discovery Discovery

	// ExcludeSignatures drops signature-like tags: sha256-<64 hex>.sig
	ExcludeSignatures bool

	// Strict requires the prefix-stripped tag to be exactly X.Y.Z.
	Strict bool

	// DryRun computes the next tag without publishing it.
	DryRun bool
}

// DefaultOptions returns the stock configuration:
//
//   - Prefix:       "v"
//   - Labels:       major / minor / patch, ignore "no-version"
//   - Fallback:     "0.0.0"
//   - Discovery:    DiscoveryFirst
//   - PageSize:     50
func DefaultOptions() Options {
	return Options{
		Prefix:       DefaultPrefix,
		MajorLabel:   DefaultMajorLabel,
		MinorLabel:   DefaultMinorLabel,
		PatchLabel:   DefaultPatchLabel,
		IgnoreLabels: []string{DefaultIgnoreLabel},
		Fallback:     DefaultFallback,
		Discovery:    DiscoveryFirst,
		PageSize:     DefaultPageSize,
	}
}

// normalized returns a copy with implicit defaults applied.
func (o Options) normalized() Options {
	out := o

	if out.Prefix == "" {
		out.Prefix = DefaultPrefix
	}

	if out.MajorLabel == "" {
		out.MajorLabel = DefaultMajorLabel
	}

	if out.MinorLabel == "" {
		out.MinorLabel = DefaultMinorLabel
	}

	if out.PatchLabel == "" {
		out.PatchLabel = DefaultPatchLabel
	}

	if out.Fallback == "" {
		out.Fallback = DefaultFallback
	}

	ignore := compactStrings(out.IgnoreLabels)
	if len(ignore) == 0 {
		ignore = []string{DefaultIgnoreLabel}
	}
	out.IgnoreLabels = ignore

	if out.PageSize <= 0 {
		out.PageSize = DefaultPageSize
	}

	return out
}

// Priority returns the fragment bindings in precedence order:
// ignore labels, then major, minor and patch.
func (o Options) Priority() []Binding {
	n := o.normalized()

	out := make([]Binding, 0, len(n.IgnoreLabels)+3)
	for _, l := range n.IgnoreLabels {
		out = append(out, Binding{Fragment: FragmentIgnore, Label: l})
	}

	return append(out,
		Binding{Fragment: FragmentMajor, Label: n.MajorLabel},
		Binding{Fragment: FragmentMinor, Label: n.MinorLabel},
		Binding{Fragment: FragmentPatch, Label: n.PatchLabel},
	)
}

// Discovery selects the strategy used to find the latest release tag.
type Discovery uint8

const (
	// DiscoveryFirst returns the first valid tag in source order.
	// The source listing is trusted to be newest first.
	DiscoveryFirst Discovery = iota

	// DiscoveryMax scans every tag and returns the highest release by SemVer.
	DiscoveryMax
)

// String returns a stable textual representation for Discovery.
func (d Discovery) String() string {
	switch d {
	case DiscoveryMax:
		return "max"
	default:
		return "first"
	}
}

// ParseDiscovery maps free-form tokens to Discovery.
// Supported aliases (case-insensitive):
//
//	first: "first","first-match","newest","recent","order"
//	max:   "max","max-match","highest","semver","latest"
func ParseDiscovery(s string) Discovery {
	switch toTok(s) {
	// trust the listing order
	case "first", "first-match", "newest", "recent", "order":
		return DiscoveryFirst

	// full scan, SemVer maximum
	case "max", "max-match", "highest", "semver", "latest":
		return DiscoveryMax

	default:
		return DiscoveryFirst
	}
}

// Range clips candidates to [Min, Max] with optional exclusive ends.
// Min/Max accept X, X.Y, X.Y.Z (with optional 'v') or full SemVer.
type Range struct {
	Min string // empty => no lower bound
	Max string // empty => no upper bound

	// When true => exclusive bound. Default false => inclusive.
	MinExclusive bool
	MaxExclusive bool
}

// Enabled reports whether any bound is set.
func (r Range) Enabled() bool {
	return r.Min != "" || r.Max != ""
}
