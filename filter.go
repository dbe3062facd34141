package tagbump

import "strings"

// matcher derives release candidates from raw tags under one Options value.
type matcher struct {
	opt    Options
	bounds bounds
}

func newMatcher(opt Options) matcher {
	return matcher{opt: opt, bounds: compileRange(opt.Range)}
}

// candidate returns the release version of tag when it passes every filter.
func (m matcher) candidate(tag string) (Version, bool) {
	if !prefilterTag(tag, m.opt) {
		return Version{}, false
	}

	if m.opt.Strict {
		rest, ok := strings.CutPrefix(tag, m.opt.Prefix)
		if !ok || !relXYZ.MatchString(rest) {
			return Version{}, false
		}
	}

	v, ok := DeriveVersion(m.opt.Prefix, tag)
	if !ok {
		return Version{}, false
	}

	if !m.bounds.contains(v) {
		return Version{}, false
	}

	return v, true
}

// prefilterTag: cheap checks before parsing (user regexes, signatures).
func prefilterTag(t string, opt Options) bool {
	if t == "" {
		return false
	}

	if opt.ExcludeSignatures && isSigTag(t) {
		return false
	}

	if opt.Include != nil && !opt.Include.MatchString(t) {
		return false
	}

	if opt.Exclude != nil && opt.Exclude.MatchString(t) {
		return false
	}

	return true
}
