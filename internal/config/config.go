package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/google/shlex"
	"gopkg.in/yaml.v3"

	"github.com/bjulian5/flattengit/internal/flatten"
	"github.com/bjulian5/flattengit/internal/git"
	"github.com/bjulian5/flattengit/internal/workspace"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "FLATTENGIT_"

var (
	ErrNoCurrentCommit    = flatten.ErrNoCurrentCommit
	ErrInvalidMaxCommits  = errors.New("max commits must be positive")
	ErrNoWorkingRepo      = errors.New("working repo is required")
	ErrInvalidRetryPolicy = errors.New("retry tries must be positive")
)

// Config holds the run parameters. Values are layered: defaults, then the
// YAML file, then FLATTENGIT_* environment variables, then command-line flags.
type Config struct {
	CurrentCommit  string        `yaml:"current-commit" env:"CURRENT_COMMIT"`
	Branch         string        `yaml:"branch" env:"BRANCH"`
	WorkingRepo    string        `yaml:"working-repo" env:"WORKING_REPO"`
	MaxCommits     int           `yaml:"max-commits" env:"MAX_COMMITS"`
	SourceRemote   string        `yaml:"source-remote" env:"SOURCE_REMOTE"`
	SourceURL      string        `yaml:"source-url" env:"SOURCE_URL"`
	MirrorRemote   string        `yaml:"mirror-remote" env:"MIRROR_REMOTE"`
	MirrorURL      string        `yaml:"mirror-url" env:"MIRROR_URL"`
	MirrorPrefix   string        `yaml:"mirror-prefix" env:"MIRROR_PREFIX"`
	CherryPickArgs string        `yaml:"cherry-pick-args" env:"CHERRY_PICK_ARGS"`
	DefaultName    string        `yaml:"default-name" env:"DEFAULT_NAME"`
	DefaultEmail   string        `yaml:"default-email" env:"DEFAULT_EMAIL"`
	RetryTries     uint          `yaml:"retry-tries" env:"RETRY_TRIES"`
	RetryInterval  time.Duration `yaml:"retry-interval" env:"RETRY_INTERVAL"`
	LogLevel       string        `yaml:"log-level" env:"LOG_LEVEL"`
	SkipFetch      bool          `yaml:"skip-fetch" env:"SKIP_FETCH"`
	FullCopy       bool          `yaml:"full-copy" env:"FULL_COPY"`
	DryRun         bool          `yaml:"dry-run" env:"DRY_RUN"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Branch:         "develop",
		WorkingRepo:    ".",
		MaxCommits:     flatten.DefaultMaxCommits,
		SourceRemote:   "origin",
		MirrorRemote:   "origin",
		MirrorPrefix:   "flat/",
		CherryPickArgs: "--strategy=recursive --strategy-option=theirs",
		DefaultName:    "flattengit",
		DefaultEmail:   "noreply@flattengit.invalid",
		RetryTries:     git.DefaultRetryPolicy().MaxTries,
		RetryInterval:  git.DefaultRetryPolicy().InitialInterval,
		LogLevel:       "info",
	}
}

// Load builds a configuration from the defaults, an optional YAML file and
// the environment. Flags are applied afterwards by the caller.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks the parameters needed to start a run
func (c Config) Validate() error {
	if c.CurrentCommit == "" {
		return ErrNoCurrentCommit
	}
	if c.MaxCommits <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxCommits, c.MaxCommits)
	}
	if c.WorkingRepo == "" {
		return ErrNoWorkingRepo
	}
	if c.RetryTries == 0 {
		return ErrInvalidRetryPolicy
	}
	if _, err := c.SplitCherryPickArgs(); err != nil {
		return err
	}
	return nil
}

// SplitCherryPickArgs splits the cherry-pick strategy string into arguments
func (c Config) SplitCherryPickArgs() ([]string, error) {
	args, err := shlex.Split(c.CherryPickArgs)
	if err != nil {
		return nil, fmt.Errorf("invalid cherry-pick args %q: %w", c.CherryPickArgs, err)
	}
	if args == nil {
		args = []string{}
	}
	return args, nil
}

// FlattenOptions converts the configuration for the flatten package
func (c Config) FlattenOptions() (flatten.Options, error) {
	args, err := c.SplitCherryPickArgs()
	if err != nil {
		return flatten.Options{}, err
	}
	return flatten.Options{
		SourceBranch:   c.Branch,
		MirrorRemote:   c.MirrorRemote,
		MirrorPrefix:   c.MirrorPrefix,
		MaxCommits:     c.MaxCommits,
		CherryPickArgs: args,
		ForceFullCopy:  c.FullCopy,
		DryRun:         c.DryRun,
	}, nil
}

// WorkspaceOptions converts the configuration for the workspace package
func (c Config) WorkspaceOptions() workspace.Options {
	return workspace.Options{
		SourceURL:    c.SourceURL,
		SourceRemote: c.SourceRemote,
		SourceBranch: c.Branch,
		MirrorURL:    c.MirrorURL,
		MirrorRemote: c.MirrorRemote,
		DefaultName:  c.DefaultName,
		DefaultEmail: c.DefaultEmail,
		SkipFetch:    c.SkipFetch,
		Retry: git.RetryPolicy{
			MaxTries:        c.RetryTries,
			InitialInterval: c.RetryInterval,
			MaxInterval:     10 * c.RetryInterval,
		},
	}
}
