// Package workspace prepares the dedicated working copy that a flatten run
// mutates. The working copy is non-authoritative: local changes are discarded.
package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/bjulian5/flattengit/internal/git"
	"github.com/bjulian5/flattengit/internal/logging"
)

// oversizedHookBytes is the size above which a hook is assumed to be a stale binary
const oversizedHookBytes = 1024 * 1024

var checkedHooks = []string{"pre-commit", "post-commit", "pre-push"}

// Options configures Prepare
type Options struct {
	SourceURL    string
	SourceRemote string
	SourceBranch string
	MirrorURL    string
	MirrorRemote string
	DefaultName  string
	DefaultEmail string
	Retry        git.RetryPolicy
	// SkipFetch leaves remote-tracking refs untouched; used when the caller fetched already.
	SkipFetch bool
}

// Prepare creates, repairs and updates the working copy at dir and returns a client for it
func Prepare(ctx context.Context, dir string, opts Options, logger *log.Logger) (*git.Client, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create working directory %s: %w", dir, err)
	}

	client, err := git.NewClientAt(dir)
	if err != nil {
		return nil, err
	}
	client = client.WithRetryPolicy(opts.Retry)

	if _, err := os.Stat(client.GitDir()); os.IsNotExist(err) {
		if opts.SourceURL == "" {
			return nil, fmt.Errorf("%s is not a git repository and no source URL is configured", dir)
		}
		logger.Info("cloning working copy", "url", opts.SourceURL, "dir", client.GitRoot())
		if err := client.Clone(ctx, opts.SourceURL, opts.SourceBranch); err != nil {
			return nil, err
		}
	}

	if err := ClearStaleLock(client.GitDir(), logger); err != nil {
		return nil, err
	}
	removeOversizedHooks(client.GitDir(), logger)

	// Leftovers from a run that was killed mid cherry-pick.
	if client.IsCherryPickInProgress() {
		logger.Warn("aborting cherry-pick left by a previous run")
		if err := client.CherryPickAbort(ctx); err != nil {
			return nil, err
		}
	}

	if err := client.SetConfig(ctx, "gc.auto", "0"); err != nil {
		return nil, err
	}
	if err := ensureIdentity(ctx, client, opts); err != nil {
		return nil, err
	}
	if err := ensureRemote(ctx, client, opts.MirrorRemote, opts.MirrorURL, logger); err != nil {
		return nil, err
	}

	if client.RefExists(ctx, "HEAD") {
		if err := client.ResetHard(ctx, ""); err != nil {
			return nil, err
		}
	}

	if opts.SkipFetch {
		return client, nil
	}
	if err := client.Fetch(ctx, opts.SourceRemote); err != nil {
		return nil, err
	}
	if opts.MirrorRemote != "" && opts.MirrorRemote != opts.SourceRemote {
		if err := client.Fetch(ctx, opts.MirrorRemote); err != nil {
			return nil, err
		}
	}
	return client, nil
}

// ClearStaleLock removes an index.lock left behind by a crashed git process.
// Only one run may use a working copy at a time, so any lock found here is stale.
func ClearStaleLock(gitDir string, logger *log.Logger) error {
	lockFile := filepath.Join(gitDir, "index.lock")
	if _, err := os.Stat(lockFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to inspect %s: %w", lockFile, err)
	}
	logger.Warn("removing stale index.lock", "path", lockFile)
	if err := os.Remove(lockFile); err != nil {
		return fmt.Errorf("failed to remove stale %s: %w", lockFile, err)
	}
	return nil
}

func removeOversizedHooks(gitDir string, logger *log.Logger) {
	for _, hook := range checkedHooks {
		hookPath := filepath.Join(gitDir, "hooks", hook)
		info, err := os.Stat(hookPath)
		if err != nil || info.Size() <= oversizedHookBytes {
			continue
		}
		logger.Warn("removing oversized hook", "path", hookPath, "bytes", info.Size())
		if err := os.Remove(hookPath); err != nil {
			logger.Warn("failed to remove hook", "path", hookPath, "err", err)
		}
	}
}

func ensureIdentity(ctx context.Context, client *git.Client, opts Options) error {
	if _, ok := client.GetConfig(ctx, "user.email"); !ok && opts.DefaultEmail != "" {
		if err := client.SetConfig(ctx, "user.email", opts.DefaultEmail); err != nil {
			return err
		}
	}
	if _, ok := client.GetConfig(ctx, "user.name"); !ok && opts.DefaultName != "" {
		if err := client.SetConfig(ctx, "user.name", opts.DefaultName); err != nil {
			return err
		}
	}
	return nil
}

func ensureRemote(ctx context.Context, client *git.Client, name, url string, logger *log.Logger) error {
	if name == "" || url == "" {
		return nil
	}
	remotes, err := client.ListRemotes(ctx)
	if err != nil {
		return err
	}
	for _, r := range remotes {
		if r == name {
			return nil
		}
	}
	logger.Info("adding mirror remote", "remote", name, "url", url)
	return client.AddRemote(ctx, name, url)
}
