package git

import (
	"context"
	"fmt"
	"strings"
)

// StatusEntry is one path from `git status --porcelain`.
// Index and WorkTree hold the X and Y status codes.
type StatusEntry struct {
	Index    byte
	WorkTree byte
	Path     string
	// OrigPath is set for renames and copies.
	OrigPath string
}

// Code returns the two-letter porcelain code, e.g. "DU"
func (e StatusEntry) Code() string {
	return string([]byte{e.Index, e.WorkTree})
}

// IsStaged reports whether the entry has a change recorded in the index
func (e StatusEntry) IsStaged() bool {
	return e.Index != ' ' && e.Index != '?' && e.Index != '!'
}

// IsUntracked reports whether the path is unknown to git
func (e StatusEntry) IsUntracked() bool {
	return e.Index == '?'
}

// IsUnmerged reports whether the path is in a conflicted state
func (e StatusEntry) IsUnmerged() bool {
	switch e.Code() {
	case "DD", "AU", "UD", "UA", "DU", "AA", "UU":
		return true
	}
	return false
}

// IsDeletedByUs reports a conflict where HEAD deleted the path and the
// incoming commit modified it
func (e StatusEntry) IsDeletedByUs() bool {
	return e.Code() == "DU"
}

// Status returns the porcelain status of the working copy
func (c *Client) Status(ctx context.Context) ([]StatusEntry, error) {
	rr, err := c.Run(ctx, "status", "--porcelain", "-z")
	if err != nil {
		return nil, fmt.Errorf("failed to check git status: %w", err)
	}
	return ParseStatus(rr.Stdout)
}

// HasStagedChanges reports whether the index differs from HEAD
func (c *Client) HasStagedChanges(ctx context.Context) (bool, error) {
	entries, err := c.Status(ctx)
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if e.IsStaged() {
			return true, nil
		}
	}
	return false, nil
}

// ParseStatus parses NUL-separated `git status --porcelain -z` output
func ParseStatus(out string) ([]StatusEntry, error) {
	var entries []StatusEntry
	tokens := strings.Split(out, "\x00")
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok == "" {
			continue
		}
		if len(tok) < 4 || tok[2] != ' ' {
			return nil, fmt.Errorf("unexpected status entry %q", tok)
		}
		entry := StatusEntry{
			Index:    tok[0],
			WorkTree: tok[1],
			Path:     tok[3:],
		}
		// Renames and copies are followed by the source path.
		if entry.Index == 'R' || entry.Index == 'C' {
			if i+1 < len(tokens) {
				entry.OrigPath = tokens[i+1]
				i++
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
