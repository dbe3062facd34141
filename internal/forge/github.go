package forge

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/datawire/dlib/dlog"
	"github.com/google/go-github/v75/github"

	"github.com/woozymasta/tagbump"
)

// DefaultGitHubAPI is the public GitHub API root.
const DefaultGitHubAPI = "https://api.github.com/"

// GitHub lists and creates tags through the GitHub REST API.
type GitHub struct {
	client *github.Client
	repo   Repo
}

// NewGitHub returns a GitHub backend for the API root apiURL
// (DefaultGitHubAPI when empty; "<server>/api/v3" for Enterprise).
func NewGitHub(apiURL string, repo Repo) (*GitHub, error) {
	c := github.NewClient(repo.httpClient())
	if repo.Token != "" {
		c = c.WithAuthToken(repo.Token)
	}

	if apiURL != "" {
		u, err := url.Parse(strings.TrimRight(apiURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("github api url: %w", err)
		}
		c.BaseURL = u
	}

	c.UserAgent = repo.userAgent()

	return &GitHub{client: c, repo: repo}, nil
}

func githubResponse(r *github.Response) *http.Response {
	if r == nil {
		return nil
	}

	return r.Response
}

// ListTags returns one page of tag names as the API lists them.
func (g *GitHub) ListTags(ctx context.Context, page, limit int) ([]string, error) {
	dlog.Debugf(ctx, "github: list tags of %s/%s, page %d", g.repo.Owner, g.repo.Name, page)

	tags, resp, err := g.client.Repositories.ListTags(ctx, g.repo.Owner, g.repo.Name,
		&github.ListOptions{Page: page, PerPage: limit})
	if err != nil {
		return nil, statusError(githubResponse(resp), err)
	}

	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if name := t.GetName(); name != "" {
			out = append(out, name)
		}
	}

	return out, nil
}

// CreateTag creates a lightweight tag ref at tag.Target, which must be a commit SHA.
// The message is not used; GitHub annotations need a separate tag object.
func (g *GitHub) CreateTag(ctx context.Context, tag tagbump.NewTag) error {
	if tag.Name == "" {
		return errors.New("empty tag name")
	}

	if tag.Target == "" {
		return errors.New("target commit is required")
	}

	_, resp, err := g.client.Git.CreateRef(ctx, g.repo.Owner, g.repo.Name, github.CreateRef{
		Ref: "refs/tags/" + tag.Name,
		SHA: tag.Target,
	})

	return statusError(githubResponse(resp), err)
}
