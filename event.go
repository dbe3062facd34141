package tagbump

import "strings"

// Trigger names that carry labels.
const (
	EventPullRequest        = "pull_request"
	EventPullRequestTarget  = "pull_request_target"
	EventRepositoryDispatch = "repository_dispatch"
)

// Event is the triggering CI event passed explicitly to the resolver.
type Event struct {
	// Name is the trigger type, e.g. "pull_request".
	Name string

	// Extra labels supplied by the caller, always considered.
	Extra []string

	// Payload is the decoded webhook payload.
	Payload EventPayload
}

// EventPayload holds the parts of a webhook payload that carry labels.
type EventPayload struct {
	PullRequest   *PullRequest   `json:"pull_request,omitempty"`
	ClientPayload map[string]any `json:"client_payload,omitempty"`
}

// PullRequest is the pull request section of a payload.
type PullRequest struct {
	Labels []Label `json:"labels"`
	Number int     `json:"number"`
}

// Label is a pull request label.
type Label struct {
	Name string `json:"name"`
}

// Labels returns the labels of the event:
//
//	pull_request(_target):  the pull request label names
//	repository_dispatch:    client_payload.fragment and client_payload.type
//	anything else:          none
//
// Extra labels are appended in every case; empty values are dropped.
func (e Event) Labels() []string {
	var out []string

	switch e.Name {
	case EventPullRequest, EventPullRequestTarget:
		if pr := e.Payload.PullRequest; pr != nil {
			for _, l := range pr.Labels {
				out = append(out, l.Name)
			}
		}

	case EventRepositoryDispatch:
		for _, key := range []string{"fragment", "type"} {
			if s, ok := e.Payload.ClientPayload[key].(string); ok {
				out = append(out, s)
			}
		}
	}

	out = append(out, e.Extra...)

	keep := out[:0]
	for _, l := range out {
		if strings.TrimSpace(l) != "" {
			keep = append(keep, l)
		}
	}

	return keep
}
