package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Client provides git operations for a repository
type Client struct {
	gitPath string
	gitRoot string
	retry   RetryPolicy
}

// NewClientAt creates a new git client rooted at dir. The directory does not
// need to be a repository yet; Clone can populate it.
func NewClientAt(dir string) (*Client, error) {
	p, err := exec.LookPath("git")
	if err != nil {
		return nil, fmt.Errorf("no 'git' program on path: %w", err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	return &Client{
		gitPath: p,
		gitRoot: abs,
		retry:   DefaultRetryPolicy(),
	}, nil
}

// WithRetryPolicy returns a copy of the client using policy for network operations
func (c *Client) WithRetryPolicy(policy RetryPolicy) *Client {
	cp := *c
	cp.retry = policy
	return &cp
}

// GitRoot returns the root directory of the git repository
func (c *Client) GitRoot() string {
	return c.gitRoot
}

// GitDir returns the path of the .git directory
func (c *Client) GitDir() string {
	return filepath.Join(c.gitRoot, ".git")
}

// RunResult holds the captured output of a git invocation
type RunResult struct {
	Stdout string
	Stderr string
}

// Output returns stdout followed by stderr, for surfacing to an operator
func (r RunResult) Output() string {
	return strings.TrimSpace(r.Stdout + r.Stderr)
}

// Run runs a git command in the repository root.
// Omit the 'git' part of the command.
func (c *Client) Run(ctx context.Context, args ...string) (RunResult, error) {
	return c.runEnv(ctx, nil, args...)
}

func (c *Client) runEnv(ctx context.Context, env []string, args ...string) (RunResult, error) {
	cmd := exec.CommandContext(ctx, c.gitPath, args...)
	cmd.Dir = c.gitRoot
	cmd.Env = append(os.Environ(), env...)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	result := RunResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return result, &GitExecError{
			Type:     determineErrorType(result.Stderr),
			Args:     args,
			ExitCode: exitCode,
			Err:      err,
			StdOut:   result.Stdout,
			StdErr:   result.Stderr,
		}
	}
	return result, nil
}

// output runs a git command and returns its trimmed stdout
func (c *Client) output(ctx context.Context, args ...string) (string, error) {
	rr, err := c.Run(ctx, args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(rr.Stdout), nil
}

// GetCurrentBranch returns the name of the current git branch
func (c *Client) GetCurrentBranch(ctx context.Context) (string, error) {
	branch, err := c.output(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	return branch, nil
}

// GetCommitHash returns the commit hash for a given ref
func (c *Client) GetCommitHash(ctx context.Context, ref string) (string, error) {
	hash, err := c.output(ctx, "rev-parse", "--verify", ref+"^{commit}")
	if err != nil {
		return "", fmt.Errorf("failed to get commit hash for %s: %w", ref, err)
	}
	return hash, nil
}

// GetCommitTree returns the tree hash for a commit
func (c *Client) GetCommitTree(ctx context.Context, ref string) (string, error) {
	tree, err := c.output(ctx, "rev-parse", ref+"^{tree}")
	if err != nil {
		return "", fmt.Errorf("failed to get tree for %s: %w", ref, err)
	}
	return tree, nil
}

// RefExists checks if a ref resolves to a commit
func (c *Client) RefExists(ctx context.Context, ref string) bool {
	_, err := c.Run(ctx, "rev-parse", "--verify", "--quiet", ref+"^{commit}")
	return err == nil
}

// IsAncestor reports whether ancestor is reachable from descendant.
// Exit status 1 means "not an ancestor". An ancestor that no longer exists in
// the repository (pruned after a force-push) is not an ancestor either.
// Any other failure is returned as an error.
func (c *Client) IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error) {
	_, err := c.Run(ctx, "merge-base", "--is-ancestor", ancestor, descendant)
	if err == nil {
		return true, nil
	}
	var gitErr *GitExecError
	if errors.As(err, &gitErr) {
		if gitErr.ExitCode == 1 {
			return false, nil
		}
		if gitErr.Type == UnknownReference && !c.RefExists(ctx, ancestor) && c.RefExists(ctx, descendant) {
			return false, nil
		}
	}
	return false, fmt.Errorf("failed to check whether %s is an ancestor of %s: %w", ancestor, descendant, err)
}

// CheckoutBranchAt creates or resets branch to ref and checks it out.
// This is equivalent to: git checkout -B <name> <ref> [--no-track]
func (c *Client) CheckoutBranchAt(ctx context.Context, name, ref string, noTrack bool) error {
	args := []string{"checkout", "--force"}
	if noTrack {
		args = append(args, "--no-track")
	}
	args = append(args, "-B", name, ref)
	if _, err := c.Run(ctx, args...); err != nil {
		return fmt.Errorf("failed to checkout branch %s at %s: %w", name, ref, err)
	}
	return nil
}

// ResetHard resets the current branch, index and working tree to ref
func (c *Client) ResetHard(ctx context.Context, ref string) error {
	args := []string{"reset", "--hard"}
	if ref != "" {
		args = append(args, ref)
	}
	if _, err := c.Run(ctx, args...); err != nil {
		return fmt.Errorf("failed to reset to %s: %w", ref, err)
	}
	return nil
}

// ResetSoft moves the current branch to ref, keeping the index and working tree
func (c *Client) ResetSoft(ctx context.Context, ref string) error {
	if _, err := c.Run(ctx, "reset", "--soft", ref); err != nil {
		return fmt.Errorf("failed to soft reset to %s: %w", ref, err)
	}
	return nil
}

// Remove removes a path from the index and working tree
func (c *Client) Remove(ctx context.Context, path string) error {
	if _, err := c.Run(ctx, "rm", "--quiet", "--", path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}

// GetConfig returns a local config value and whether it is set
func (c *Client) GetConfig(ctx context.Context, key string) (string, bool) {
	value, err := c.output(ctx, "config", "--get", key)
	if err != nil {
		return "", false
	}
	return value, true
}

// SetConfig sets a local config value
func (c *Client) SetConfig(ctx context.Context, key, value string) error {
	if _, err := c.Run(ctx, "config", key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}
