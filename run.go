package tagbump

import (
	"context"
	"fmt"

	"github.com/datawire/dlib/dlog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/woozymasta/tagbump"

// Result is the outcome of a run.
type Result struct {
	// Latest is the prefixed latest release tag.
	Latest string `json:"latest"`

	// Next is the prefixed new tag, empty when no increment happened.
	Next string `json:"next"`

	// Fragment applied (or ignored) in this run.
	Fragment Fragment `json:"-"`

	// Published reports whether Next was handed to the publisher.
	Published bool `json:"-"`
}

// Runner resolves, bumps and publishes one release tag.
type Runner struct {
	// Source lists existing tags. Unused when Options.LastVersion resolves.
	Source TagSource

	// Publisher creates the new tag. When nil, Next is reported but not published.
	Publisher TagPublisher

	Options Options
}

// Run executes one resolution for ev.
//
// Latest is always reported. Next is empty when the ignore fragment is
// selected. Only tag listing and publication errors are returned.
func (r Runner) Run(ctx context.Context, ev Event) (res Result, err error) {
	opt := r.Options.normalized()

	ctx, span := otel.Tracer(tracerName).Start(ctx, "run",
		trace.WithAttributes(attribute.String("tagbump.event", ev.Name)))
	defer func() { endSpan(span, err) }()

	last, err := r.resolveLast(ctx, opt)
	if err != nil {
		return Result{}, err
	}

	res.Latest = FormatTag(opt.Prefix, last)
	dlog.Infof(ctx, "found last version %s", last)

	fragment := r.resolveFragment(ctx, opt, ev)
	res.Fragment = fragment

	if fragment == FragmentIgnore {
		dlog.Infof(ctx, "fragment %s selected, no new tag", fragment)
		return res, nil
	}

	next, ok := Bump(last, fragment)
	if !ok {
		return res, nil
	}

	res.Next = FormatTag(opt.Prefix, next)

	if opt.DryRun || r.Publisher == nil {
		dlog.Infof(ctx, "dry run, tag %s not created", res.Next)
		return res, nil
	}

	if err := r.publish(ctx, opt, res.Next); err != nil {
		return Result{}, err
	}
	res.Published = true

	return res, nil
}

// resolveLast uses the override when it parses, otherwise scans the source.
func (r Runner) resolveLast(ctx context.Context, opt Options) (v Version, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "resolve-last")
	defer func() { endSpan(span, err) }()

	if opt.LastVersion != "" {
		if v, ok := resolveOverride(opt.Prefix, opt.LastVersion); ok {
			span.SetAttributes(attribute.String("tagbump.source", "override"))
			return v, nil
		}

		dlog.Warnf(ctx, "ignoring invalid last version %q", opt.LastVersion)
	}

	if r.Source == nil {
		return Version{}, fmt.Errorf("no tags found, tag source is not configured")
	}

	span.SetAttributes(attribute.String("tagbump.discovery", opt.Discovery.String()))

	return FindLatest(ctx, r.Source, opt)
}

// resolveFragment maps event labels to a fragment, patch by default.
func (r Runner) resolveFragment(ctx context.Context, opt Options, ev Event) Fragment {
	_, span := otel.Tracer(tracerName).Start(ctx, "resolve-fragment")
	defer span.End()

	labels := ev.Labels()
	dlog.Debugf(ctx, "event %q labels: %q", ev.Name, labels)

	fragment, ok := ResolveFragment(labels, opt.Priority())
	if !ok {
		fragment = FragmentPatch
	}

	span.SetAttributes(
		attribute.String("tagbump.fragment", fragment.String()),
		attribute.Bool("tagbump.matched", ok),
	)
	dlog.Infof(ctx, "using version fragment %s", fragment)

	return fragment
}

func (r Runner) publish(ctx context.Context, opt Options, name string) (err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "publish",
		trace.WithAttributes(attribute.String("tagbump.tag", name)))
	defer func() { endSpan(span, err) }()

	dlog.Infof(ctx, "creating tag %s", name)

	tag := NewTag{Name: name, Message: opt.Message, Target: opt.Target}
	if err := r.Publisher.CreateTag(ctx, tag); err != nil {
		return fmt.Errorf("create tag %s: %w", name, err)
	}

	return nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	span.End()
}
