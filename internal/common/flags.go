package common

import (
	"github.com/spf13/pflag"

	"github.com/bjulian5/flattengit/internal/config"
)

// Flags holds the command-line layer of the configuration
type Flags struct {
	ConfigPath string
	values     config.Config
}

// BindFlags registers the run parameters on fs. Defaults shown in help come
// from config.Default; only flags the user actually sets override the file
// and environment layers.
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{values: config.Default()}
	v := &f.values

	fs.StringVar(&f.ConfigPath, "config", "", "YAML file with run parameters")
	fs.StringVar(&v.CurrentCommit, "current-commit", "", "The current commit that we are flattening up to")
	fs.StringVar(&v.Branch, "branch", v.Branch, "The development branch that we are flattening")
	fs.StringVar(&v.WorkingRepo, "working-repo", v.WorkingRepo, "The disk location of the working repo, separate from any active build folders")
	fs.IntVar(&v.MaxCommits, "max-commits", v.MaxCommits, "Maximum number of commits to cherry pick before falling back to a full copy")
	fs.StringVar(&v.SourceRemote, "source-remote", v.SourceRemote, "Remote holding the source branch")
	fs.StringVar(&v.SourceURL, "source-url", v.SourceURL, "URL to clone when the working repo does not exist")
	fs.StringVar(&v.MirrorRemote, "mirror-remote", v.MirrorRemote, "Remote the flattened branch is pushed to")
	fs.StringVar(&v.MirrorURL, "mirror-url", v.MirrorURL, "URL of the mirror remote, added if missing")
	fs.StringVar(&v.MirrorPrefix, "mirror-prefix", v.MirrorPrefix, "Prefix of the flattened branch name")
	fs.StringVar(&v.CherryPickArgs, "cherry-pick-args", v.CherryPickArgs, "Strategy arguments passed to git cherry-pick")
	fs.UintVar(&v.RetryTries, "retry-tries", v.RetryTries, "Attempts for network git commands")
	fs.DurationVar(&v.RetryInterval, "retry-interval", v.RetryInterval, "Initial delay between network retries")
	fs.StringVar(&v.LogLevel, "log-level", v.LogLevel, "Log level: debug, info, warn, error")
	fs.BoolVar(&v.SkipFetch, "skip-fetch", false, "Do not fetch remotes before planning")
	fs.BoolVar(&v.FullCopy, "full-copy", false, "Replace the flattened branch with the current commit")
	fs.BoolVar(&v.DryRun, "dry-run", false, "Do everything except pushing")
	return f
}

// Resolve layers the flags the user set over the file and environment configuration
func (f *Flags) Resolve(fs *pflag.FlagSet) (config.Config, error) {
	cfg, err := config.Load(f.ConfigPath)
	if err != nil {
		return cfg, err
	}

	v := f.values
	fs.Visit(func(flag *pflag.Flag) {
		switch flag.Name {
		case "current-commit":
			cfg.CurrentCommit = v.CurrentCommit
		case "branch":
			cfg.Branch = v.Branch
		case "working-repo":
			cfg.WorkingRepo = v.WorkingRepo
		case "max-commits":
			cfg.MaxCommits = v.MaxCommits
		case "source-remote":
			cfg.SourceRemote = v.SourceRemote
		case "source-url":
			cfg.SourceURL = v.SourceURL
		case "mirror-remote":
			cfg.MirrorRemote = v.MirrorRemote
		case "mirror-url":
			cfg.MirrorURL = v.MirrorURL
		case "mirror-prefix":
			cfg.MirrorPrefix = v.MirrorPrefix
		case "cherry-pick-args":
			cfg.CherryPickArgs = v.CherryPickArgs
		case "retry-tries":
			cfg.RetryTries = v.RetryTries
		case "retry-interval":
			cfg.RetryInterval = v.RetryInterval
		case "log-level":
			cfg.LogLevel = v.LogLevel
		case "skip-fetch":
			cfg.SkipFetch = v.SkipFetch
		case "full-copy":
			cfg.FullCopy = v.FullCopy
		case "dry-run":
			cfg.DryRun = v.DryRun
		}
	})
	return cfg, nil
}
