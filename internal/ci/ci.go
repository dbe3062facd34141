// Package ci talks to the CI host: it reads the triggering event and writes
// step outputs and workflow annotations.
package ci

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/woozymasta/tagbump"
)

// LoadEvent reads the webhook payload at path for the trigger name.
// An empty path yields an event without payload.
func LoadEvent(name, path string) (tagbump.Event, error) {
	ev := tagbump.Event{Name: name}
	if path == "" {
		return ev, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ev, fmt.Errorf("read event: %w", err)
	}

	if err := json.Unmarshal(data, &ev.Payload); err != nil {
		return ev, fmt.Errorf("decode event %s: %w", path, err)
	}

	return ev, nil
}

// Outputs renders the step outputs as key=value lines.
func Outputs(res tagbump.Result) string {
	return "latest=" + res.Latest + "\nnext=" + res.Next + "\n"
}

// WriteOutputs prints the outputs to w and appends them to the file at path
// (GITHUB_OUTPUT) when path is set.
func WriteOutputs(w io.Writer, path string, res tagbump.Result) error {
	out := Outputs(res)

	if _, err := io.WriteString(w, out); err != nil {
		return err
	}

	if path == "" {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open outputs: %w", err)
	}

	if _, err := f.WriteString(out); err != nil {
		_ = f.Close()
		return fmt.Errorf("write outputs: %w", err)
	}

	return f.Close()
}

// Annotate writes a workflow error annotation for err.
func Annotate(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "::error::%s\n", escape(err.Error()))
}

// escape encodes the characters the workflow command parser treats specially.
func escape(s string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A").Replace(s)
}

// Active reports whether the process runs under a workflow runner.
func Active() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true" || os.Getenv("GITEA_ACTIONS") == "true"
}
