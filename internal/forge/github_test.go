package forge

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/datawire/dlib/dlog"
	"github.com/google/go-github/v75/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woozymasta/tagbump"
)

func newFakeGitHub(t *testing.T, tags []string, refs *[]github.CreateRef) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/repos/acme/app/tags", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer ghs_token", r.Header.Get("Authorization"))
		assert.Equal(t, "tagbump/2.0.0", r.Header.Get("User-Agent"))

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

		out := []map[string]string{}
		for _, name := range tagbump.Page(tags, page, perPage) {
			out = append(out, map[string]string{"name": name})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	})

	mux.HandleFunc("/repos/acme/app/git/refs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var body github.CreateRef
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		for _, name := range tags {
			if body.Ref == "refs/tags/"+name {
				w.WriteHeader(http.StatusUnprocessableEntity)
				_, _ = w.Write([]byte(`{"message":"Reference already exists"}`))
				return
			}
		}

		*refs = append(*refs, body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ref":"` + body.Ref + `"}`))
	})

	return httptest.NewServer(mux)
}

func newGitHub(t *testing.T, url string) *GitHub {
	t.Helper()

	gh, err := NewGitHub(url, Repo{Owner: "acme", Name: "app", Token: "ghs_token", UserAgent: "tagbump/2.0.0"})
	require.NoError(t, err)

	return gh
}

func TestGitHub_RunMaxMatch(t *testing.T) {
	ctx := dlog.NewTestContext(t, false)

	var refs []github.CreateRef
	srv := newFakeGitHub(t, []string{"v1.2.0", "v1.10.0", "v1.3.0-beta", "v2.0.0"}, &refs)
	defer srv.Close()

	gh := newGitHub(t, srv.URL)
	r := tagbump.Runner{
		Source:    gh,
		Publisher: gh,
		Options: tagbump.Options{
			Discovery: tagbump.DiscoveryMax,
			PageSize:  3,
			Target:    "0123abcd",
		},
	}

	res, err := r.Run(ctx, tagbump.Event{Extra: []string{"major"}})
	require.NoError(t, err)
	assert.Equal(t, "v2.0.0", res.Latest)
	assert.Equal(t, "v3.0.0", res.Next)
	assert.Equal(t, []github.CreateRef{{Ref: "refs/tags/v3.0.0", SHA: "0123abcd"}}, refs)
}

func TestGitHub_CreateTagErrors(t *testing.T) {
	ctx := dlog.NewTestContext(t, false)

	var refs []github.CreateRef
	srv := newFakeGitHub(t, []string{"v1.0.0"}, &refs)
	defer srv.Close()

	gh := newGitHub(t, srv.URL+"/")

	err := gh.CreateTag(ctx, tagbump.NewTag{Name: "v1.0.1"})
	assert.EqualError(t, err, "target commit is required")

	err = gh.CreateTag(ctx, tagbump.NewTag{Name: "v1.0.0", Target: "abc"})
	var serr *StatusError
	require.True(t, errors.As(err, &serr), "err = %v", err)
	assert.Equal(t, http.StatusUnprocessableEntity, serr.Code)
	assert.Equal(t, "Reference already exists", serr.Message)
	assert.Equal(t, http.MethodPost, serr.Method)
	assert.True(t, errors.Is(err, tagbump.ErrTagExists))
	assert.Empty(t, refs)
}

func TestStatusError_Unwrap(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err    StatusError
		exists bool
	}{
		{StatusError{Code: http.StatusConflict}, true},
		{StatusError{Code: http.StatusUnprocessableEntity, Message: "Reference already exists"}, true},
		{StatusError{Code: http.StatusUnprocessableEntity, Message: "Object does not exist"}, false},
		{StatusError{Code: http.StatusNotFound, Message: "already exists"}, false},
	}

	for _, c := range cases {
		if got := errors.Is(&c.err, tagbump.ErrTagExists); got != c.exists {
			t.Fatalf("errors.Is(%d %q, ErrTagExists) = %v; want %v", c.err.Code, c.err.Message, got, c.exists)
		}
	}
}

func TestNewGitHub_DefaultAPI(t *testing.T) {
	gh, err := NewGitHub("", Repo{Owner: "acme", Name: "app"})
	require.NoError(t, err)
	assert.Equal(t, DefaultGitHubAPI, gh.client.BaseURL.String())
	assert.Equal(t, DefaultUserAgent, gh.client.UserAgent)

	gh, err = NewGitHub("https://ghe.example.com/api/v3", Repo{Owner: "acme", Name: "app"})
	require.NoError(t, err)
	assert.Equal(t, "https://ghe.example.com/api/v3/", gh.client.BaseURL.String())
}
