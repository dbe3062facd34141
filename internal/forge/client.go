package forge

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v75/github"

	"github.com/woozymasta/tagbump"
)

const (
	// DefaultTimeout bounds a single API round trip when no HTTP client is given.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is sent when Repo.UserAgent is empty.
	DefaultUserAgent = "tagbump"
)

// Repo addresses one repository on a forge.
type Repo struct {
	// HTTP client; nil means a client with DefaultTimeout.
	HTTP *http.Client

	Owner string
	Name  string

	// Token authenticates every request when set.
	Token string

	UserAgent string
}

func (r Repo) httpClient() *http.Client {
	if r.HTTP != nil {
		return r.HTTP
	}

	return &http.Client{Timeout: DefaultTimeout}
}

func (r Repo) userAgent() string {
	if r.UserAgent != "" {
		return r.UserAgent
	}

	return DefaultUserAgent
}

// StatusError is returned for non-2xx API responses.
//
// A conflict on tag creation (409, or 422 "already exists") unwraps to
// tagbump.ErrTagExists.
type StatusError struct {
	Method  string
	URL     string
	Status  string
	Message string
	Code    int
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %s: %s", e.Method, e.URL, e.Status, e.Message)
	}

	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Status)
}

func (e *StatusError) Unwrap() error {
	switch {
	case e.Code == http.StatusConflict:
		return tagbump.ErrTagExists
	case e.Code == http.StatusUnprocessableEntity && strings.Contains(strings.ToLower(e.Message), "already exists"):
		return tagbump.ErrTagExists
	default:
		return nil
	}
}

// statusError turns an SDK error into a *StatusError when resp carries a
// failed status. Transport errors are returned as they are.
func statusError(resp *http.Response, err error) error {
	if err == nil || resp == nil || resp.StatusCode/100 == 2 {
		return err
	}

	se := &StatusError{Code: resp.StatusCode, Status: resp.Status, Message: err.Error()}
	if req := resp.Request; req != nil {
		se.Method = req.Method
		se.URL = req.URL.String()
	}

	// go-github formats the request into Error(); keep the server message only
	var gh *github.ErrorResponse
	if errors.As(err, &gh) {
		se.Message = gh.Message
	}

	return se
}
