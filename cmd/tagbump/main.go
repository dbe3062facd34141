/*
Package main is the tagbump cli tool: it finds the latest release tag of a
repository, bumps it according to the labels of the triggering CI event and
creates the new tag.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/datawire/dlib/dlog"
	"github.com/google/go-containerregistry/pkg/logs"
	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"github.com/woozymasta/tagbump"
	"github.com/woozymasta/tagbump/internal/ci"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func userAgent() string {
	return "tagbump/" + version
}

func main() {
	opt, _, err := parseOptions(os.Args[1:])
	if err != nil {
		var flagErr *flags.Error
		if errors.As(err, &flagErr) {
			if flagErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
			os.Exit(1)
		}

		fail(err)
	}

	ctx, err := newContext(context.Background(), opt.OptionsOutput.LogLevel, os.Stderr)
	if err != nil {
		fail(&usageError{err})
	}

	if err := run(ctx, opt, os.Stdout); err != nil {
		fail(err)
	}
}

// fail reports err and exits: 2 for invalid input, 1 otherwise.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "tagbump: error: %v\n", err)
	if ci.Active() {
		ci.Annotate(os.Stdout, err)
	}

	if isUsage(err) {
		os.Exit(2)
	}
	os.Exit(1)
}

// newContext installs a logrus backed dlog logger at level and routes the
// registry client logs through it.
func newContext(ctx context.Context, level string, w io.Writer) (context.Context, error) {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if level = strings.TrimSpace(level); level != "" {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			return ctx, fmt.Errorf("log level: %w", err)
		}
		logger.SetLevel(lvl)
	}

	ctx = dlog.WithLogger(ctx, dlog.WrapLogrus(logger))

	logs.Warn = dlog.StdLogger(ctx, dlog.LogLevelWarn)
	logs.Progress = dlog.StdLogger(ctx, dlog.LogLevelInfo)
	logs.Debug = dlog.StdLogger(ctx, dlog.LogLevelDebug)

	return ctx, nil
}

// run resolves and publishes one tag, or lists releases with --list.
func run(ctx context.Context, opt Options, stdout io.Writer) error {
	lib, err := opt.library()
	if err != nil {
		return err
	}

	store, err := openBackend(ctx, opt.OptionsSource, lib.Prefix)
	if err != nil {
		return err
	}

	if opt.OptionsOutput.List {
		tags, err := tagbump.Releases(ctx, store, lib, opt.OptionsOutput.Limit)
		if err != nil {
			return err
		}

		for _, t := range tags {
			fmt.Fprintln(stdout, t)
		}
		return nil
	}

	ev, err := ci.LoadEvent(opt.OptionsLabels.EventName, opt.OptionsLabels.EventPath)
	if err != nil {
		return err
	}
	ev.Extra = append(ev.Extra, opt.OptionsLabels.Labels...)

	res, err := tagbump.Runner{Source: store, Publisher: store, Options: lib}.Run(ctx, ev)
	if err != nil {
		return err
	}

	return ci.WriteOutputs(stdout, opt.OptionsOutput.OutputPath, res)
}
