package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/datawire/dlib/dlog"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/woozymasta/tagbump"
	"github.com/woozymasta/tagbump/internal/forge"
	"github.com/woozymasta/tagbump/internal/gitrepo"
	"github.com/woozymasta/tagbump/internal/registry"
)

const (
	backendGitea    = "gitea"
	backendGitHub   = "github"
	backendGit      = "git"
	backendRegistry = "registry"
)

// backend is both ends of a tag store.
type backend interface {
	tagbump.TagSource
	tagbump.TagPublisher
}

// openBackend builds the tag store selected by --source.
func openBackend(ctx context.Context, opt OptionsSource, prefix string) (backend, error) {
	kind := opt.Backend
	if kind == "" {
		kind = backendGitea
	}
	dlog.Debugf(ctx, "using %s tag source", kind)

	switch kind {
	case backendGitea, backendGitHub:
		owner, repo, err := splitRepository(opt.Repository)
		if err != nil {
			return nil, &usageError{err}
		}

		fr := forge.Repo{Owner: owner, Name: repo, Token: opt.Token, UserAgent: userAgent()}

		if kind == backendGitHub {
			gh, err := forge.NewGitHub(opt.APIURL, fr)
			if err != nil {
				return nil, &usageError{err}
			}

			return gh, nil
		}

		if opt.Server == "" {
			return nil, &usageError{fmt.Errorf("gitea source needs --server")}
		}

		g, err := forge.NewGitea(opt.Server, fr)
		if err != nil {
			return nil, err
		}

		return g, nil

	case backendGit:
		path := opt.Path
		if path == "" {
			path = "."
		}

		r, err := gitrepo.Open(path)
		if err != nil {
			return nil, err
		}

		r.Prefix = prefix
		r.Push = opt.Push
		r.Remote = opt.Remote
		if opt.Token != "" {
			r.Auth = &githttp.BasicAuth{Username: "x-access-token", Password: opt.Token}
		}

		return r, nil

	case backendRegistry:
		if opt.Image == "" {
			return nil, &usageError{fmt.Errorf("registry source needs --image")}
		}

		r, err := registry.New(opt.Image, opt.Token, opt.Insecure)
		if err != nil {
			return nil, &usageError{err}
		}

		return r, nil

	default:
		return nil, &usageError{fmt.Errorf("unknown tag source %q", kind)}
	}
}

// splitRepository splits "owner/name".
func splitRepository(s string) (string, string, error) {
	owner, repo, ok := strings.Cut(strings.Trim(strings.TrimSpace(s), "/"), "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("repository must be owner/name, got %q", s)
	}

	return owner, repo, nil
}
