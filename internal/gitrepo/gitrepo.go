// Package gitrepo reads and creates tags in a local git repository.
package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/datawire/dlib/dlog"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"

	"github.com/woozymasta/tagbump"
)

// DefaultRemote is pushed to when Push is enabled and Remote is empty.
const DefaultRemote = "origin"

// Repo is a tag source and publisher backed by a local repository.
//
// Tags are listed newest first: by tagger time for annotated tags, by commit
// time for lightweight ones. Equal times fall back to version order under
// Prefix, then to the name.
type Repo struct {
	repo *git.Repository

	// Tagger signs annotated tags; nil reads user.name/user.email from git config.
	Tagger *object.Signature

	// Auth for pushes.
	Auth transport.AuthMethod

	// Prefix used to order tags created at the same time.
	Prefix string

	// Remote receives created tags when Push is set.
	Remote string

	// cached listing, reset by CreateTag
	tags []string

	Push bool
}

// Open opens the repository containing path (parent directories are searched).
func Open(path string) (*Repo, error) {
	r, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", path, err)
	}

	return New(r), nil
}

// New wraps an already opened repository.
func New(r *git.Repository) *Repo {
	return &Repo{repo: r}
}

type tagRef struct {
	when time.Time
	name string
}

// ListTags returns one page of tag names, newest first.
// The listing is read once and served from memory for the following pages.
func (r *Repo) ListTags(ctx context.Context, page, limit int) ([]string, error) {
	if page <= 1 || r.tags == nil {
		tags, err := r.load(ctx)
		if err != nil {
			return nil, err
		}
		r.tags = tags
	}

	return tagbump.Page(r.tags, page, limit), nil
}

func (r *Repo) load(ctx context.Context) ([]string, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer iter.Close()

	var refs []tagRef
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		refs = append(refs, tagRef{name: ref.Name().Short(), when: r.tagTime(ref.Hash())})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	sort.SliceStable(refs, func(i, j int) bool {
		a, b := refs[i], refs[j]
		if !a.when.Equal(b.when) {
			return a.when.After(b.when)
		}

		av, aok := tagbump.DeriveVersion(r.Prefix, a.name)
		bv, bok := tagbump.DeriveVersion(r.Prefix, b.name)
		if aok && bok {
			if c := av.Compare(bv); c != 0 {
				return c > 0
			}
		} else if aok != bok {
			return aok
		}

		return a.name > b.name
	})

	out := make([]string, len(refs))
	for i, ref := range refs {
		out[i] = ref.name
	}

	dlog.Debugf(ctx, "read %d tags from local repository", len(out))

	return out, nil
}

// tagTime returns the tagger time of an annotated tag or the committer time
// of a tagged commit; zero when the object is neither.
func (r *Repo) tagTime(h plumbing.Hash) time.Time {
	if tag, err := r.repo.TagObject(h); err == nil {
		return tag.Tagger.When
	}

	if c, err := r.repo.CommitObject(h); err == nil {
		return c.Committer.When
	}

	return time.Time{}
}

// CreateTag creates tag.Name at tag.Target (HEAD when empty). A message makes
// it an annotated tag. With Push set, the tag is pushed to Remote.
func (r *Repo) CreateTag(ctx context.Context, tag tagbump.NewTag) error {
	if tag.Name == "" {
		return errors.New("empty tag name")
	}

	target := tag.Target
	if target == "" {
		target = "HEAD"
	}

	hash, err := r.repo.ResolveRevision(plumbing.Revision(target))
	if err != nil {
		return fmt.Errorf("resolve %s: %w", target, err)
	}

	var opts *git.CreateTagOptions
	if tag.Message != "" {
		opts = &git.CreateTagOptions{Message: tag.Message, Tagger: r.Tagger}
	}

	if _, err := r.repo.CreateTag(tag.Name, *hash, opts); err != nil {
		if errors.Is(err, git.ErrTagExists) {
			return fmt.Errorf("%w: %s", tagbump.ErrTagExists, tag.Name)
		}

		return err
	}
	r.tags = nil

	dlog.Debugf(ctx, "tagged %s as %s", hash, tag.Name)

	if !r.Push {
		return nil
	}

	remote := r.Remote
	if remote == "" {
		remote = DefaultRemote
	}

	spec := config.RefSpec("refs/tags/" + tag.Name + ":refs/tags/" + tag.Name)
	err = r.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		RefSpecs:   []config.RefSpec{spec},
		Auth:       r.Auth,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("push %s to %s: %w", tag.Name, remote, err)
	}

	return nil
}
