package tagbump

import (
	"context"
	"sort"
)

// Releases returns every release tag of src that passes the Options filters,
// sorted descending by SemVer and capped to limit (<=0 = unlimited).
//
// Note: ties (equal versions, e.g. "v1.2.3" and "v1.2.3+build") are broken
// by the raw tag string, then by source order.
func Releases(ctx context.Context, src TagSource, opt Options, limit int) ([]string, error) {
	type item struct {
		tag string
		v   Version
		idx int
	}

	var arr []item
	err := Scan(ctx, src, opt, func(tag string, v Version) bool {
		arr = append(arr, item{tag: tag, v: v, idx: len(arr)})
		return true
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(arr, func(i, j int) bool {
		a, b := arr[i], arr[j]
		if c := a.v.Compare(b.v); c != 0 {
			return c > 0
		}

		if a.tag != b.tag {
			return a.tag > b.tag
		}

		return a.idx < b.idx
	})

	out := make([]string, len(arr))
	for i, it := range arr {
		out[i] = it.tag
	}

	return capStrings(out, limit), nil
}
