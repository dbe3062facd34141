package main

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/jessevdk/go-flags"
	"sigs.k8s.io/yaml"

	"github.com/woozymasta/tagbump"
)

// Options are read from the config file, then the environment, then flags.
// No option carries a `default:` tag: defaults belong to tagbump.Options and
// a flag default would hide the config file value.
type Options struct {
	Config string `long:"config" env:"INPUT_CONFIG" description:"YAML file with option values" json:"-"`

	// Version discovery
	OptionsVersion OptionsVersion `group:"Version discovery" json:"version"`
	// Label mapping and event
	OptionsLabels OptionsLabels `group:"Labels" json:"labels"`
	// Candidate filters
	OptionsFilter OptionsFilter `group:"Tag filters" json:"filter"`
	// Tag backend
	OptionsSource OptionsSource `group:"Tag source" json:"source"`
	// Publication
	OptionsPublish OptionsPublish `group:"Publish" json:"publish"`
	// Output and logging
	OptionsOutput OptionsOutput `group:"Output" json:"output"`
}

type OptionsVersion struct {
	Prefix      string `short:"p" long:"prefix"       env:"INPUT_PREFIX"       description:"Release tag prefix (default: v)" json:"prefix"`
	Fallback    string `short:"f" long:"fallback"     env:"INPUT_FALLBACK"     description:"Version used when no tag matches (default: 0.0.0)" json:"fallback"`
	LastVersion string `short:"l" long:"last-version" env:"INPUT_LAST-VERSION" description:"Use this version instead of scanning tags" json:"lastVersion"`
	Discovery   string `short:"d" long:"discovery"    env:"INPUT_DISCOVERY"    description:"Latest tag lookup (default: first for forges, max for git and registry)" choice:"first" choice:"max" json:"discovery"`
	PageSize    int    `long:"page-size"              env:"INPUT_PAGE-SIZE"    description:"Tags per listing page (default: 50)" json:"pageSize"`
	Strict      bool   `short:"s" long:"strict"       env:"INPUT_STRICT"       description:"Only accept <prefix>X.Y.Z tags" json:"strict"`
}

type OptionsLabels struct {
	Major     string   `long:"major-label"  env:"INPUT_MAJOR-LABEL"  description:"Label bumping the major version (default: major)" json:"major"`
	Minor     string   `long:"minor-label"  env:"INPUT_MINOR-LABEL"  description:"Label bumping the minor version (default: minor)" json:"minor"`
	Patch     string   `long:"patch-label"  env:"INPUT_PATCH-LABEL"  description:"Label bumping the patch version (default: patch)" json:"patch"`
	Ignore    string   `long:"ignore-labels" env:"INPUT_IGNORE-LABELS" description:"Comma separated labels that skip the bump (default: no-version)" json:"ignore"`
	Labels    []string `short:"L" long:"label"                        description:"Extra label, repeatable" json:"labels"`
	EventName string   `long:"event-name"   env:"GITHUB_EVENT_NAME"  description:"Trigger type" json:"-"`
	EventPath string   `long:"event-path"   env:"GITHUB_EVENT_PATH"  description:"Trigger payload file" json:"-"`
}

type OptionsFilter struct {
	Include      string `short:"i" long:"include"       env:"INPUT_INCLUDE" description:"Regexp to keep tags (applied before parsing)" json:"include"`
	Exclude      string `short:"e" long:"exclude"       env:"INPUT_EXCLUDE" description:"Regexp to drop tags (applied before parsing)" json:"exclude"`
	ExcludeSigs  bool   `short:"E" long:"exclude-sigs"                      description:"Drop sha256-<64>.sig tags" json:"excludeSigs"`
	Min          string `short:"m" long:"min"                               description:"Lower bound (X / X.Y / X.Y.Z)" json:"min"`
	Max          string `short:"x" long:"max"                               description:"Upper bound (X / X.Y / X.Y.Z)" json:"max"`
	MinExclusive bool   `short:"M" long:"min-exclusive"                     description:"Exclude lower bound itself" json:"minExclusive"`
	MaxExclusive bool   `short:"X" long:"max-exclusive"                     description:"Exclude upper bound itself" json:"maxExclusive"`
}

type OptionsSource struct {
	Backend    string `short:"b" long:"source"     env:"INPUT_SOURCE"      description:"Tag backend (default: gitea)" choice:"gitea" choice:"github" choice:"git" choice:"registry" json:"backend"`
	Server     string `long:"server"               env:"GITHUB_SERVER_URL" description:"Gitea server URL" json:"server"`
	APIURL     string `long:"api-url"              env:"GITHUB_API_URL"    description:"GitHub API URL" json:"apiURL"`
	Repository string `short:"r" long:"repository" env:"GITHUB_REPOSITORY" description:"owner/name on the forge" json:"repository"`
	Token      string `short:"t" long:"token"      env:"INPUT_TOKEN"       description:"API token (also INPUT_GITEA-TOKEN, GITHUB_TOKEN)" json:"-"`
	Path       string `long:"path"                                          description:"Local repository path for the git source (default: .)" json:"path"`
	Remote     string `long:"remote"                                        description:"Remote to push created tags to (default: origin)" json:"remote"`
	Push       bool   `long:"push"                                          description:"Push the created tag (git source)" json:"push"`
	Image      string `long:"image"                env:"INPUT_IMAGE"       description:"Image repository for the registry source" json:"image"`
	Insecure   bool   `long:"insecure"                                      description:"Use plain HTTP for the registry" json:"insecure"`
}

type OptionsPublish struct {
	Target  string `short:"T" long:"target"  env:"GITHUB_SHA"    description:"Commit (or digest) to tag" json:"target"`
	Message string `long:"message"           env:"INPUT_MESSAGE" description:"Tag message" json:"message"`
	DryRun  bool   `short:"n" long:"dry-run" env:"INPUT_DRY-RUN" description:"Compute the next tag without creating it" json:"dryRun"`
}

type OptionsOutput struct {
	List       bool   `long:"list"                               description:"Print release tags, highest first, and exit" json:"-"`
	Limit      int    `long:"limit"                              description:"Max tags printed by --list (<=0 = unlimited)" json:"limit"`
	OutputPath string `long:"output"    env:"GITHUB_OUTPUT"      description:"File the step outputs are appended to" json:"-"`
	LogLevel   string `long:"log-level" env:"INPUT_LOG-LEVEL"    description:"Log level (default: info, debug when RUNNER_DEBUG=1)" json:"logLevel"`
}

// configPath finds --config (or INPUT_CONFIG) without failing on the other flags.
func configPath(args []string) (string, error) {
	var pre struct {
		Config string `long:"config" env:"INPUT_CONFIG"`
	}

	if _, err := flags.NewParser(&pre, flags.IgnoreUnknown).ParseArgs(args); err != nil {
		return "", err
	}

	return pre.Config, nil
}

// loadConfig decodes the YAML file at path into opt.
func loadConfig(path string, opt *Options) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	if err := yaml.UnmarshalStrict(data, opt); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	return nil
}

// parseOptions layers the config file, environment and flags.
func parseOptions(args []string) (Options, []string, error) {
	var opt Options

	path, err := configPath(args)
	if err != nil {
		return opt, nil, fmt.Errorf("config flag: %s", err)
	}

	if err := loadConfig(path, &opt); err != nil {
		return opt, nil, &usageError{err}
	}
	labels := opt.OptionsLabels.Labels

	parser := flags.NewParser(&opt, flags.Default|flags.AllowBoolValues)
	parser.LongDescription = `tagbump computes the next semantic version tag of a repository.
The latest release tag is found among the existing tags (or given explicitly),
the labels of the triggering event select the version part to increment,
and the new tag is created on the configured backend.`

	rest, err := parser.ParseArgs(args)
	if err != nil {
		return opt, nil, err
	}

	// unset slices are reset by the parser
	if len(opt.OptionsLabels.Labels) == 0 {
		opt.OptionsLabels.Labels = labels
	}

	if opt.OptionsSource.Token == "" {
		opt.OptionsSource.Token = firstEnv("INPUT_GITEA-TOKEN", "GITHUB_TOKEN")
	}

	if opt.OptionsOutput.LogLevel == "" && os.Getenv("RUNNER_DEBUG") == "1" {
		opt.OptionsOutput.LogLevel = "debug"
	}

	return opt, rest, nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}

	return ""
}

// usageError marks invalid input that is reported with exit code 2.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func isUsage(err error) bool {
	var u *usageError
	return errors.As(err, &u)
}

// library maps the CLI options onto tagbump.Options.
func (o Options) library() (tagbump.Options, error) {
	out := tagbump.DefaultOptions()

	compile := func(what, s string) (*regexp.Regexp, error) {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, nil
		}

		re, err := regexp.Compile(s)
		if err != nil {
			return nil, &usageError{fmt.Errorf("%s regexp: %w", what, err)}
		}

		return re, nil
	}

	var err error
	if out.Include, err = compile("include", o.OptionsFilter.Include); err != nil {
		return out, err
	}
	if out.Exclude, err = compile("exclude", o.OptionsFilter.Exclude); err != nil {
		return out, err
	}

	v := o.OptionsVersion
	if s := strings.TrimSpace(v.Prefix); s != "" {
		out.Prefix = s
	}
	if s := strings.TrimSpace(v.Fallback); s != "" {
		out.Fallback = s
	}
	if v.PageSize > 0 {
		out.PageSize = v.PageSize
	}
	out.LastVersion = strings.TrimSpace(v.LastVersion)
	out.Strict = v.Strict
	out.Discovery = o.discovery()

	l := o.OptionsLabels
	if s := strings.TrimSpace(l.Major); s != "" {
		out.MajorLabel = s
	}
	if s := strings.TrimSpace(l.Minor); s != "" {
		out.MinorLabel = s
	}
	if s := strings.TrimSpace(l.Patch); s != "" {
		out.PatchLabel = s
	}
	if ignore := tagbump.SplitList(l.Ignore); len(ignore) > 0 {
		out.IgnoreLabels = ignore
	}

	f := o.OptionsFilter
	out.ExcludeSignatures = f.ExcludeSigs
	out.Range = tagbump.Range{
		Min:          strings.TrimSpace(f.Min),
		Max:          strings.TrimSpace(f.Max),
		MinExclusive: f.MinExclusive,
		MaxExclusive: f.MaxExclusive,
	}

	p := o.OptionsPublish
	out.Target = strings.TrimSpace(p.Target)
	out.Message = p.Message
	out.DryRun = p.DryRun

	return out, nil
}

// discovery returns the configured strategy or the backend default.
func (o Options) discovery() tagbump.Discovery {
	if s := o.OptionsVersion.Discovery; s != "" {
		return tagbump.ParseDiscovery(s)
	}

	switch o.OptionsSource.Backend {
	case backendGit, backendRegistry:
		return tagbump.DiscoveryMax
	default:
		return tagbump.DiscoveryFirst
	}
}
