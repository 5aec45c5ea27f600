package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultCherryPickArgs replays a commit preferring the incoming side of any conflicting hunk
var DefaultCherryPickArgs = []string{"--strategy=recursive", "--strategy-option=theirs"}

// CherryPick applies commitHash onto HEAD with the given strategy arguments.
// --allow-empty is always passed so originally-empty commits replay cleanly.
// The returned RunResult carries git's output even on failure.
func (c *Client) CherryPick(ctx context.Context, commitHash string, strategyArgs []string) (RunResult, error) {
	args := []string{"cherry-pick", "--allow-empty"}
	args = append(args, strategyArgs...)
	args = append(args, commitHash)
	rr, err := c.Run(ctx, args...)
	if err != nil {
		return rr, fmt.Errorf("failed to cherry-pick %s: %w", commitHash, err)
	}
	return rr, nil
}

// CherryPickAbort rolls back an in-progress cherry-pick
func (c *Client) CherryPickAbort(ctx context.Context) error {
	if _, err := c.Run(ctx, "cherry-pick", "--abort"); err != nil {
		return fmt.Errorf("failed to abort cherry-pick: %w", err)
	}
	return nil
}

// IsCherryPickInProgress checks if a cherry-pick is waiting to be continued or aborted
func (c *Client) IsCherryPickInProgress() bool {
	_, err := os.Stat(filepath.Join(c.GitDir(), "CHERRY_PICK_HEAD"))
	return err == nil
}

// Commit commits the index under author with the message written to a
// temporary file, so quotes and newlines survive intact.
func (c *Client) Commit(ctx context.Context, author Author, message string) error {
	msgFile, cleanup, err := writeMessageFile(message)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := c.Run(ctx, "commit", "--no-verify", "--author="+author.String(), "--file="+msgFile); err != nil {
		return fmt.Errorf("failed to commit as %s: %w", author, err)
	}
	return nil
}

// AmendMessage replaces the HEAD commit's message. Authorship is untouched by
// amend and the committer date is pinned to its previous value.
func (c *Client) AmendMessage(ctx context.Context, message string) error {
	head, err := c.GetCommit(ctx, "HEAD")
	if err != nil {
		return err
	}

	msgFile, cleanup, err := writeMessageFile(message)
	if err != nil {
		return err
	}
	defer cleanup()

	var env []string
	if !head.CommitterDate.IsZero() {
		env = append(env, "GIT_COMMITTER_DATE="+head.CommitterDate.Format(time.RFC3339))
	}
	if _, err := c.runEnv(ctx, env, "commit", "--amend", "--allow-empty", "--no-verify", "--file="+msgFile); err != nil {
		return fmt.Errorf("failed to amend commit message: %w", err)
	}
	return nil
}

func writeMessageFile(message string) (string, func(), error) {
	f, err := os.CreateTemp("", "flattengit-msg-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create message file: %w", err)
	}
	name := f.Name()
	cleanup := func() { _ = os.Remove(name) }

	if _, err := f.WriteString(message); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("failed to write message file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to write message file: %w", err)
	}
	return name, cleanup, nil
}
