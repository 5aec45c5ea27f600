package git

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Author identifies who wrote a commit
type Author struct {
	Name  string
	Email string
}

// String formats the author the way `git commit --author` expects
func (a Author) String() string {
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// Commit represents a git commit
type Commit struct {
	Hash    string
	Parents []string
	Subject string
	Author  Author
	// Message is the full raw message; only populated by GetCommit.
	Message string
	// CommitterDate is only populated by GetCommit.
	CommitterDate time.Time
}

// IsMerge reports whether the commit has more than one parent
func (c Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

// ShortHash returns the abbreviated hash used in log output
func (c Commit) ShortHash() string {
	if len(c.Hash) > 10 {
		return c.Hash[:10]
	}
	return c.Hash
}

const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"
)

// logFormat emits: hash, parents, author name, author email, subject
var logFormat = strings.Join([]string{"%H", "%P", "%an", "%ae", "%s"}, fieldSep) + recordSep

// Log returns commits reachable from include but not from exclude, newest
// first. Topological order guarantees that reversing the list yields every
// parent before its children.
func (c *Client) Log(ctx context.Context, exclude, include string) ([]Commit, error) {
	rangeSpec := include
	if exclude != "" {
		rangeSpec = fmt.Sprintf("%s..%s", exclude, include)
	}
	rr, err := c.Run(ctx, "log", "--topo-order", "--format="+logFormat, rangeSpec, "--")
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve log of changes between %s and %s: %w", exclude, include, err)
	}
	return parseLog(rr.Stdout)
}

// GetCommit returns a commit by ref, including its full message
func (c *Client) GetCommit(ctx context.Context, ref string) (Commit, error) {
	format := strings.Join([]string{"%H", "%P", "%an", "%ae", "%s", "%cI", "%B"}, fieldSep)
	rr, err := c.Run(ctx, "log", "-n", "1", "--format="+format, ref, "--")
	if err != nil {
		return Commit{}, fmt.Errorf("failed to get commit %s: %w", ref, err)
	}

	fields := strings.SplitN(strings.TrimLeft(rr.Stdout, "\n"), fieldSep, 7)
	if len(fields) != 7 {
		return Commit{}, fmt.Errorf("unexpected log output for %s: %q", ref, rr.Stdout)
	}
	commit := newCommit(fields[:5])
	if date, err := time.Parse(time.RFC3339, strings.TrimSpace(fields[5])); err == nil {
		commit.CommitterDate = date
	}
	commit.Message = strings.TrimRight(fields[6], "\n") + "\n"
	return commit, nil
}

// GetCommitMessage returns the full message of ref
func (c *Client) GetCommitMessage(ctx context.Context, ref string) (string, error) {
	rr, err := c.Run(ctx, "log", "-1", "--format=%B", ref, "--")
	if err != nil {
		return "", fmt.Errorf("failed to get commit message for %s: %w", ref, err)
	}
	return rr.Stdout, nil
}

func parseLog(out string) ([]Commit, error) {
	var commits []Commit
	for _, record := range strings.Split(out, recordSep) {
		record = strings.TrimLeft(record, "\n")
		if record == "" {
			continue
		}
		fields := strings.Split(record, fieldSep)
		if len(fields) != 5 {
			return nil, fmt.Errorf("unexpected log record %q", record)
		}
		commits = append(commits, newCommit(fields))
	}
	return commits, nil
}

func newCommit(fields []string) Commit {
	return Commit{
		Hash:    strings.TrimSpace(fields[0]),
		Parents: strings.Fields(fields[1]),
		Author: Author{
			Name:  fields[2],
			Email: fields[3],
		},
		Subject: fields[4],
	}
}
