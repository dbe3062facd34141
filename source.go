package tagbump

import (
	"context"
	"errors"
)

// ErrTagExists is matched (errors.Is) by the error of every bundled publisher
// when the tag name is already taken.
var ErrTagExists = errors.New("tag already exists")

// TagSource yields raw tag names in pages.
//
// Pages are 1-based; an empty page ends the listing. Implementations decide
// the order, DiscoveryFirst trusts it to be newest first.
type TagSource interface {
	ListTags(ctx context.Context, page, limit int) ([]string, error)
}

// TagSourceFunc adapts a function to TagSource.
type TagSourceFunc func(ctx context.Context, page, limit int) ([]string, error)

// ListTags calls f.
func (f TagSourceFunc) ListTags(ctx context.Context, page, limit int) ([]string, error) {
	return f(ctx, page, limit)
}

// SliceSource serves an in-memory list of tags in the given order.
type SliceSource []string

// ListTags returns the requested window of s.
func (s SliceSource) ListTags(_ context.Context, page, limit int) ([]string, error) {
	return Page(s, page, limit), nil
}

// Page returns the 1-based page of size limit from all, nil past the end.
// Backends that load their whole listing at once page it with this helper.
func Page(all []string, page, limit int) []string {
	if page < 1 || limit <= 0 {
		return nil
	}

	start := (page - 1) * limit
	if start >= len(all) {
		return nil
	}

	end := start + limit
	if end > len(all) {
		end = len(all)
	}

	return all[start:end]
}

// NewTag describes a tag to publish.
type NewTag struct {
	// Name is the full tag name, prefix included.
	Name string

	// Message is optional; backends that support annotations use it.
	Message string

	// Target is the commit (or digest) the tag points to. Backends may
	// resolve an empty target to their current head.
	Target string
}

// TagPublisher creates tags. Publishing an existing tag must fail.
type TagPublisher interface {
	CreateTag(ctx context.Context, tag NewTag) error
}

// TagPublisherFunc adapts a function to TagPublisher.
type TagPublisherFunc func(ctx context.Context, tag NewTag) error

// CreateTag calls f.
func (f TagPublisherFunc) CreateTag(ctx context.Context, tag NewTag) error {
	return f(ctx, tag)
}
