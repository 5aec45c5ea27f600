package flatten

import (
	"context"

	"github.com/bjulian5/flattengit/internal/git"
)

// GitClient defines the git operations needed to flatten a branch
type GitClient interface {
	Log(ctx context.Context, exclude, include string) ([]git.Commit, error)
	IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error)
	GetCommitHash(ctx context.Context, ref string) (string, error)
	GetCommitMessage(ctx context.Context, ref string) (string, error)
	CheckoutBranchAt(ctx context.Context, name, ref string, noTrack bool) error
	ResetHard(ctx context.Context, ref string) error
	ResetSoft(ctx context.Context, ref string) error
	Status(ctx context.Context) ([]git.StatusEntry, error)
	HasStagedChanges(ctx context.Context) (bool, error)
	Commit(ctx context.Context, author git.Author, message string) error
	AmendMessage(ctx context.Context, message string) error
	CherryPick(ctx context.Context, commitHash string, strategyArgs []string) (git.RunResult, error)
	CherryPickAbort(ctx context.Context) error
	Remove(ctx context.Context, path string) error
	ListRemoteHeads(ctx context.Context, remote string) (map[string]string, error)
	Push(ctx context.Context, remote, branch string, opts git.PushOptions) error
}

var _ GitClient = (*git.Client)(nil)
