/*
Package tagbump selects the next release tag of a repository from its existing
tags and the labels attached to the triggering CI event.

The package is network-agnostic: tags are read through a TagSource and new
tags are written through a TagPublisher. Typical flow:

 1. Resolve the latest release: an explicit override, or a scan of the tag
    source (first valid match in listing order, or the maximum by SemVer).
 2. Resolve the version fragment from the event labels
    (ignore > major > minor > patch, patch when nothing matches).
 3. Bump the latest version and publish "<prefix><next>" unless ignored.

SemVer notes:
  - Tags must start with the configured prefix (default "v"); the remainder
    must be a full MAJOR.MINOR.PATCH version.
  - Prerelease tags are never considered as the latest release.
  - Build metadata is dropped.

Usage example:

	src := tagbump.SliceSource{"v1.2.0", "v1.10.0", "v1.3.0-beta", "v2.0.0"}

	opt := tagbump.DefaultOptions()
	opt.Discovery = tagbump.DiscoveryMax

	runner := tagbump.Runner{Source: src, Options: opt}
	res, err := runner.Run(ctx, tagbump.Event{Extra: []string{"minor"}})
	if err != nil {
		return err
	}

	fmt.Println(res.Latest, res.Next) // v2.0.0 v2.1.0
*/
package tagbump
