package git

import (
	"bufio"
	"context"
	"fmt"
	"regexp"
	"strings"
)

var lsRemoteHeadRegex = regexp.MustCompile(`^([0-9a-f]+)\s+refs/heads/(.+)$`)

// Clone clones url into the client's root without checking out files
func (c *Client) Clone(ctx context.Context, url, branch string) error {
	args := []string{"clone", "--no-checkout"}
	if branch != "" {
		args = append(args, "--branch="+branch)
	}
	args = append(args, url, c.gitRoot)
	if _, err := c.runWithRetry(ctx, args...); err != nil {
		return fmt.Errorf("unable to clone %s into %s: %w", url, c.gitRoot, err)
	}
	return nil
}

// ListRemoteHeads returns branch name → hash for every head on remote
func (c *Client) ListRemoteHeads(ctx context.Context, remote string) (map[string]string, error) {
	rr, err := c.runWithRetry(ctx, "ls-remote", "--heads", remote)
	if err != nil {
		return nil, fmt.Errorf("unable to list remote heads of %s: %w", remote, err)
	}

	heads := make(map[string]string)
	scanner := bufio.NewScanner(strings.NewReader(rr.Stdout))
	for scanner.Scan() {
		res := lsRemoteHeadRegex.FindStringSubmatch(scanner.Text())
		if len(res) == 0 {
			continue
		}
		heads[res[2]] = res[1]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse remote heads: %w", err)
	}
	return heads, nil
}

// Fetch fetches from remote, optionally limited to refspecs
func (c *Client) Fetch(ctx context.Context, remote string, refspecs ...string) error {
	args := append([]string{"fetch", "--prune", remote}, refspecs...)
	if _, err := c.runWithRetry(ctx, args...); err != nil {
		return fmt.Errorf("could not fetch changes from %s: %w", remote, err)
	}
	return nil
}

// PushOptions controls Push
type PushOptions struct {
	Force       bool
	SetUpstream bool
}

// Push pushes a branch to the remote repository
func (c *Client) Push(ctx context.Context, remote, branch string, opts PushOptions) error {
	args := []string{"push"}
	if opts.Force {
		args = append(args, "--force")
	}
	if opts.SetUpstream {
		args = append(args, "--set-upstream")
	}
	args = append(args, remote, branch)

	if _, err := c.runWithRetry(ctx, args...); err != nil {
		return fmt.Errorf("failed to push branch %s to %s: %w", branch, remote, err)
	}
	return nil
}

// ListRemotes returns the configured remote names
func (c *Client) ListRemotes(ctx context.Context) ([]string, error) {
	out, err := c.output(ctx, "remote")
	if err != nil {
		return nil, fmt.Errorf("can't get list of remotes: %w", err)
	}
	if out == "" {
		return []string{}, nil
	}
	return strings.Split(out, "\n"), nil
}

// AddRemote adds a named remote
func (c *Client) AddRemote(ctx context.Context, name, url string) error {
	if _, err := c.Run(ctx, "remote", "add", name, url); err != nil {
		return fmt.Errorf("can't add '%s' remote: %w", name, err)
	}
	return nil
}
