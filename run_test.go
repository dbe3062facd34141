package tagbump

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/datawire/dlib/dlog"
)

// record returns a publisher that appends created tags to *tags, or fails with err.
func record(tags *[]NewTag, err error) TagPublisherFunc {
	return func(_ context.Context, tag NewTag) error {
		if err != nil {
			return err
		}

		*tags = append(*tags, tag)
		return nil
	}
}

func labelsEvent(labels ...string) Event {
	ls := make([]Label, 0, len(labels))
	for _, l := range labels {
		ls = append(ls, Label{Name: l})
	}

	return Event{Name: EventPullRequest, Payload: EventPayload{PullRequest: &PullRequest{Labels: ls}}}
}

func TestRun_Scenarios(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		opt    Options
		src    SliceSource
		ev     Event
		latest string
		next   string
		frag   Fragment
	}{
		{
			name:   "override minor",
			opt:    Options{LastVersion: "1.4.2"},
			ev:     labelsEvent("minor"),
			latest: "v1.4.2", next: "v1.5.0", frag: FragmentMinor,
		},
		{
			name:   "override ignored",
			opt:    Options{LastVersion: "1.4.2"},
			ev:     labelsEvent("no-version"),
			latest: "v1.4.2", next: "", frag: FragmentIgnore,
		},
		{
			name:   "no tags, patch",
			ev:     labelsEvent("patch"),
			latest: "v0.0.0", next: "v0.0.1", frag: FragmentPatch,
		},
		{
			name:   "no labels defaults to patch",
			src:    SliceSource{"v2.3.4"},
			ev:     Event{Name: "push"},
			latest: "v2.3.4", next: "v2.3.5", frag: FragmentPatch,
		},
		{
			name:   "ignore beats major",
			src:    SliceSource{"v2.3.4"},
			ev:     labelsEvent("major", "no-version"),
			latest: "v2.3.4", next: "", frag: FragmentIgnore,
		},
		{
			name:   "major",
			src:    SliceSource{"v2.3.4"},
			ev:     labelsEvent("major", "minor"),
			latest: "v2.3.4", next: "v3.0.0", frag: FragmentMajor,
		},
		{
			name:   "override with prefix",
			opt:    Options{LastVersion: "v1.4.2"},
			src:    SliceSource{"v9.9.9"},
			ev:     labelsEvent("patch"),
			latest: "v1.4.2", next: "v1.4.3", frag: FragmentPatch,
		},
		{
			name:   "invalid override falls back to discovery",
			opt:    Options{LastVersion: "1.4"},
			src:    SliceSource{"v3.0.0"},
			ev:     labelsEvent("minor"),
			latest: "v3.0.0", next: "v3.1.0", frag: FragmentMinor,
		},
		{
			name:   "custom prefix and labels",
			opt:    Options{Prefix: "release-", MinorLabel: "feature", Fallback: "1.0.0"},
			src:    SliceSource{"v5.0.0"},
			ev:     Event{Name: EventRepositoryDispatch, Payload: EventPayload{ClientPayload: map[string]any{"fragment": "feature"}}},
			latest: "release-1.0.0", next: "release-1.1.0", frag: FragmentMinor,
		},
		{
			name:   "max discovery",
			opt:    Options{Discovery: DiscoveryMax},
			src:    SliceSource{"v1.2.0", "v1.10.0", "v1.3.0-beta", "v2.0.0"},
			ev:     labelsEvent("minor"),
			latest: "v2.0.0", next: "v2.1.0", frag: FragmentMinor,
		},
	}

	for _, tc := range cases {
		ctx := dlog.NewTestContext(t, false)
		var published []NewTag

		opt := tc.opt
		opt.Target = "abc123"

		r := Runner{Source: tc.src, Publisher: record(&published, nil), Options: opt}
		res, err := r.Run(ctx, tc.ev)
		if err != nil {
			t.Fatalf("%s: Run: %v", tc.name, err)
		}

		if res.Latest != tc.latest || res.Next != tc.next || res.Fragment != tc.frag {
			t.Fatalf("%s: Run = %+v; want latest=%q next=%q fragment=%v", tc.name, res, tc.latest, tc.next, tc.frag)
		}

		var want []NewTag
		if tc.next != "" {
			want = []NewTag{{Name: tc.next, Target: "abc123"}}
		}

		if !reflect.DeepEqual(published, want) {
			t.Fatalf("%s: published %+v; want %+v", tc.name, published, want)
		}

		if res.Published != (tc.next != "") {
			t.Fatalf("%s: Published = %v", tc.name, res.Published)
		}
	}
}

func TestRun_DryRun(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)

	var published []NewTag
	r := Runner{
		Source:    SliceSource{"v1.0.0"},
		Publisher: record(&published, nil),
		Options:   Options{DryRun: true},
	}

	res, err := r.Run(ctx, labelsEvent("major"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Next != "v2.0.0" || res.Published {
		t.Fatalf("dry run = %+v; want next v2.0.0 unpublished", res)
	}

	if len(published) != 0 {
		t.Fatalf("dry run published %v", published)
	}
}

func TestRun_NilPublisher(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)

	res, err := Runner{Source: SliceSource{"v1.0.0"}}.Run(ctx, Event{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Next != "v1.0.1" || res.Published {
		t.Fatalf("nil publisher = %+v; want next v1.0.1 unpublished", res)
	}
}

func TestRun_PublishError(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)

	boom := errors.New("tag already exists")
	r := Runner{
		Source:    SliceSource{"v1.0.0"},
		Publisher: record(nil, boom),
		Options:   Options{Message: "release"},
	}

	_, err := r.Run(ctx, Event{})
	if !errors.Is(err, boom) {
		t.Fatalf("Run err = %v; want %v", err, boom)
	}

	if want := "create tag v1.0.1: tag already exists"; err.Error() != want {
		t.Fatalf("Run err = %q; want %q", err, want)
	}
}

func TestRun_SourceError(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)

	boom := errors.New("401 unauthorized")
	var published []NewTag
	r := Runner{
		Source: TagSourceFunc(func(context.Context, int, int) ([]string, error) {
			return nil, boom
		}),
		Publisher: record(&published, nil),
	}

	if _, err := r.Run(ctx, Event{}); !errors.Is(err, boom) {
		t.Fatalf("Run err = %v; want %v", err, boom)
	}

	if len(published) != 0 {
		t.Fatalf("published after source error: %v", published)
	}
}

func TestRun_NoSource(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)

	if _, err := (Runner{}).Run(ctx, Event{}); err == nil {
		t.Fatalf("Run without source and override succeeded")
	}

	// An override needs no source.
	res, err := Runner{Options: Options{LastVersion: "0.1.0"}}.Run(ctx, Event{})
	if err != nil || res.Latest != "v0.1.0" {
		t.Fatalf("Run with override = %+v, %v", res, err)
	}
}
