// Package registry lists and creates tags in an OCI container registry.
package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/datawire/dlib/dlog"
	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/v1/remote"
	"github.com/google/go-containerregistry/pkg/v1/remote/transport"

	"github.com/woozymasta/tagbump"
)

// Repository is a tag source and publisher for one image repository.
//
// Registries list tags in lexical order, so the listing carries no notion of
// recency and should be scanned with DiscoveryMax.
type Repository struct {
	auth     authn.Authenticator
	repo     name.Repository
	tags     []string
	Insecure bool
}

// New parses ref ("registry.example.com/group/app") into a Repository.
// An empty token uses the default docker keychain.
func New(ref, token string, insecure bool) (*Repository, error) {
	var opts []name.Option
	if insecure {
		opts = append(opts, name.Insecure)
	}

	repo, err := name.NewRepository(ref, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse repository %q: %w", ref, err)
	}

	r := &Repository{repo: repo, Insecure: insecure}
	if token != "" {
		r.auth = &authn.Bearer{Token: token}
	}

	return r, nil
}

func (r *Repository) options(ctx context.Context) []remote.Option {
	opts := []remote.Option{remote.WithContext(ctx)}
	if r.auth != nil {
		opts = append(opts, remote.WithAuth(r.auth))
	} else {
		opts = append(opts, remote.WithAuthFromKeychain(authn.DefaultKeychain))
	}

	return opts
}

// ListTags returns one page of the repository tags. The registry is queried
// once, later pages are served from memory.
func (r *Repository) ListTags(ctx context.Context, page, limit int) ([]string, error) {
	if page <= 1 || r.tags == nil {
		tags, err := remote.List(r.repo, r.options(ctx)...)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", r.repo, err)
		}

		dlog.Debugf(ctx, "registry returned %d tags for %s", len(tags), r.repo)
		if tags == nil {
			tags = []string{}
		}
		r.tags = tags
	}

	return tagbump.Page(r.tags, page, limit), nil
}

// CreateTag points tag.Name at the manifest named by tag.Target, which is
// either a digest ("sha256:...") or an existing tag of the repository.
func (r *Repository) CreateTag(ctx context.Context, tag tagbump.NewTag) error {
	if tag.Target == "" {
		return errors.New("registry tags need a target digest or tag")
	}

	dst := r.repo.Tag(tag.Name)

	if _, err := remote.Head(dst, r.options(ctx)...); err == nil {
		return fmt.Errorf("%w: %s", tagbump.ErrTagExists, dst)
	} else if !isNotFound(err) {
		return fmt.Errorf("check %s: %w", dst, err)
	}

	src, err := r.target(tag.Target)
	if err != nil {
		return err
	}

	desc, err := remote.Get(src, r.options(ctx)...)
	if err != nil {
		return fmt.Errorf("get %s: %w", src, err)
	}

	if err := remote.Tag(dst, desc, r.options(ctx)...); err != nil {
		return fmt.Errorf("tag %s: %w", dst, err)
	}
	r.tags = nil

	dlog.Debugf(ctx, "tagged %s as %s", desc.Digest, dst)

	return nil
}

func (r *Repository) target(target string) (name.Reference, error) {
	var opts []name.Option
	if r.Insecure {
		opts = append(opts, name.Insecure)
	}

	sep := ":"
	if strings.Contains(target, ":") {
		sep = "@"
	}

	ref, err := name.ParseReference(r.repo.Name()+sep+target, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse target %q: %w", target, err)
	}

	return ref, nil
}

func isNotFound(err error) bool {
	var terr *transport.Error
	return errors.As(err, &terr) && terr.StatusCode == 404
}
