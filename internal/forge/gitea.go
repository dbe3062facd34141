package forge

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"code.gitea.io/sdk/gitea"
	"github.com/datawire/dlib/dlog"

	"github.com/woozymasta/tagbump"
)

// Gitea lists and creates tags through the Gitea API.
type Gitea struct {
	client *gitea.Client
	repo   Repo
}

// NewGitea returns a Gitea backend for server, e.g. "https://gitea.example.com".
// The server version is not probed.
func NewGitea(server string, repo Repo) (*Gitea, error) {
	c, err := gitea.NewClient(strings.TrimRight(server, "/"),
		gitea.SetHTTPClient(repo.httpClient()),
		gitea.SetToken(repo.Token),
		gitea.SetUserAgent(repo.userAgent()),
		gitea.SetGiteaVersion(""),
	)
	if err != nil {
		return nil, fmt.Errorf("gitea client: %w", err)
	}

	return &Gitea{client: c, repo: repo}, nil
}

func giteaResponse(r *gitea.Response) *http.Response {
	if r == nil {
		return nil
	}

	return r.Response
}

// ListTags returns one page of tag names, newest first.
func (g *Gitea) ListTags(ctx context.Context, page, limit int) ([]string, error) {
	g.client.SetContext(ctx)

	dlog.Debugf(ctx, "gitea: list tags of %s/%s, page %d", g.repo.Owner, g.repo.Name, page)

	tags, resp, err := g.client.ListRepoTags(g.repo.Owner, g.repo.Name, gitea.ListRepoTagsOptions{
		ListOptions: gitea.ListOptions{Page: page, PageSize: limit},
	})
	if err != nil {
		return nil, statusError(giteaResponse(resp), err)
	}

	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != nil && t.Name != "" {
			out = append(out, t.Name)
		}
	}

	return out, nil
}

// CreateTag creates tag.Name at tag.Target (the default branch head when empty).
func (g *Gitea) CreateTag(ctx context.Context, tag tagbump.NewTag) error {
	if tag.Name == "" {
		return errors.New("empty tag name")
	}

	g.client.SetContext(ctx)

	_, resp, err := g.client.CreateTag(g.repo.Owner, g.repo.Name, gitea.CreateTagOption{
		TagName: tag.Name,
		Message: tag.Message,
		Target:  tag.Target,
	})

	return statusError(giteaResponse(resp), err)
}
