package tagbump

import (
	"context"
	"fmt"

	"github.com/datawire/dlib/dlog"
)

// Scan walks src page by page and calls fn for every release candidate in
// source order. fn returning false stops the scan early.
func Scan(ctx context.Context, src TagSource, opt Options, fn func(tag string, v Version) bool) error {
	opt = opt.normalized()
	m := newMatcher(opt)

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		tags, err := src.ListTags(ctx, page, opt.PageSize)
		if err != nil {
			return fmt.Errorf("list tags (page %d): %w", page, err)
		}

		if len(tags) == 0 {
			return nil
		}

		dlog.Debugf(ctx, "page %d: %d tags", page, len(tags))

		for _, t := range tags {
			v, ok := m.candidate(t)
			if !ok {
				continue
			}

			if !fn(t, v) {
				return nil
			}
		}
	}
}

// FindLatest resolves the latest release version from src.
//
// DiscoveryFirst stops at the first candidate, DiscoveryMax scans everything
// and keeps the SemVer maximum. When nothing matches, the fallback version is
// returned (DefaultFallback when the fallback is unset or invalid).
// Only source errors are returned.
func FindLatest(ctx context.Context, src TagSource, opt Options) (Version, error) {
	opt = opt.normalized()

	var (
		best    Version
		bestTag string
		found   bool
	)

	err := Scan(ctx, src, opt, func(tag string, v Version) bool {
		if opt.Discovery == DiscoveryFirst {
			best, bestTag, found = v, tag, true
			return false
		}

		if !found || v.Compare(best) > 0 {
			best, bestTag, found = v, tag, true
		}

		return true
	})
	if err != nil {
		return Version{}, fmt.Errorf("no tags found, %w", err)
	}

	if found {
		dlog.Infof(ctx, "found tag %s (%s match)", bestTag, opt.Discovery)
		return best, nil
	}

	fallback, ok := resolveFallback(opt.Fallback)
	if !ok {
		dlog.Warnf(ctx, "invalid fallback version %q, using %s", opt.Fallback, DefaultFallback)
		fallback = Version{}
	}

	dlog.Infof(ctx, "no tags found, using %s", fallback)

	return fallback, nil
}
