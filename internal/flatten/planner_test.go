package flatten

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjulian5/flattengit/internal/git"
)

// linearLog returns n single-parent commits, newest first
func linearLog(n int) []git.Commit {
	commits := make([]git.Commit, 0, n)
	for i := n; i >= 1; i-- {
		commits = append(commits, commit(fmt.Sprintf("c%d", i), fmt.Sprintf("c%d", i-1)))
	}
	return commits
}

func TestPlanner(t *testing.T) {
	ctx := context.Background()

	t.Run("no previous revision means full copy", func(t *testing.T) {
		gitClient := &MockGitClient{}
		plan, err := NewPlanner(gitClient, 10, nil).Plan(ctx, "", "cur")
		require.NoError(t, err)
		assert.Equal(t, PlanFullCopy, plan.Kind)
		assert.Equal(t, ReasonNoPrevious, plan.Reason)
		assert.Equal(t, "cur", plan.Current)
		gitClient.AssertNotCalled(t, "IsAncestor", "", "cur")
	})

	t.Run("rewritten history means full copy", func(t *testing.T) {
		gitClient := &MockGitClient{}
		gitClient.On("IsAncestor", "prev", "cur").Return(false, nil)

		plan, err := NewPlanner(gitClient, 10, nil).Plan(ctx, "prev", "cur")
		require.NoError(t, err)
		assert.Equal(t, PlanFullCopy, plan.Kind)
		assert.Equal(t, ReasonNotAncestor, plan.Reason)
		gitClient.AssertExpectations(t)
	})

	t.Run("ancestry plumbing failure is fatal", func(t *testing.T) {
		gitClient := &MockGitClient{}
		broken := &git.GitExecError{Args: []string{"merge-base"}, ExitCode: 128, Err: errors.New("exit status 128"), StdErr: "fatal: not a git repository"}
		gitClient.On("IsAncestor", "prev", "cur").Return(false, broken)

		_, err := NewPlanner(gitClient, 10, nil).Plan(ctx, "prev", "cur")
		assert.Error(t, err)
	})

	t.Run("exactly max commits is replayed", func(t *testing.T) {
		gitClient := &MockGitClient{}
		gitClient.On("IsAncestor", "c0", "c5").Return(true, nil)
		gitClient.On("Log", "c0", "c5").Return(linearLog(5), nil)

		plan, err := NewPlanner(gitClient, 5, nil).Plan(ctx, "c0", "c5")
		require.NoError(t, err)
		assert.Equal(t, PlanReplay, plan.Kind)
		assert.Equal(t, []string{"c1", "c2", "c3", "c4", "c5"}, hashes(plan.Commits))
		assert.Equal(t, "c5", plan.Final)
		assert.Empty(t, plan.LastMerge)
	})

	t.Run("max commits plus one falls back to full copy", func(t *testing.T) {
		gitClient := &MockGitClient{}
		gitClient.On("IsAncestor", "c0", "c6").Return(true, nil)
		gitClient.On("Log", "c0", "c6").Return(linearLog(6), nil)

		plan, err := NewPlanner(gitClient, 5, nil).Plan(ctx, "c0", "c6")
		require.NoError(t, err)
		assert.Equal(t, PlanFullCopy, plan.Kind)
		assert.Equal(t, ReasonTooManyCommits, plan.Reason)
		assert.Empty(t, plan.Commits)
	})

	t.Run("current equal to previous is a no-op", func(t *testing.T) {
		gitClient := &MockGitClient{}
		gitClient.On("IsAncestor", "same", "same").Return(true, nil)
		gitClient.On("Log", "same", "same").Return([]git.Commit{}, nil)

		plan, err := NewPlanner(gitClient, 5, nil).Plan(ctx, "same", "same")
		require.NoError(t, err)
		assert.Equal(t, PlanNoOp, plan.Kind)
	})

	t.Run("non-positive max selects the default", func(t *testing.T) {
		p := NewPlanner(&MockGitClient{}, 0, nil)
		assert.Equal(t, DefaultMaxCommits, p.maxCommits)
	})
}

func TestPublisher(t *testing.T) {
	ctx := context.Background()
	newPublisher := func(gitClient *MockGitClient, dryRun bool) *Publisher {
		return New(gitClient, Options{SourceBranch: "develop", MirrorRemote: "origin", MirrorPrefix: "flat/", DryRun: dryRun}, nil).publisher
	}

	t.Run("full copy force pushes with upstream", func(t *testing.T) {
		gitClient := &MockGitClient{}
		gitClient.On("Push", "origin", "flat/develop", git.PushOptions{Force: true, SetUpstream: true}).Return(nil)

		pushed, err := newPublisher(gitClient, false).Publish(ctx, &Plan{Kind: PlanFullCopy}, false)
		require.NoError(t, err)
		assert.True(t, pushed)
		gitClient.AssertExpectations(t)
	})

	t.Run("dry run never pushes", func(t *testing.T) {
		gitClient := &MockGitClient{}
		pushed, err := newPublisher(gitClient, true).Publish(ctx, &Plan{Kind: PlanReplay}, true)
		require.NoError(t, err)
		assert.False(t, pushed)
		gitClient.AssertNotCalled(t, "Push", "origin", "flat/develop", git.PushOptions{})
	})

	t.Run("rejected push explains the race", func(t *testing.T) {
		gitClient := &MockGitClient{}
		rejected := &git.GitExecError{Type: git.PushRejected, Args: []string{"push"}, Err: errors.New("exit status 1")}
		gitClient.On("Push", "origin", "flat/develop", git.PushOptions{}).Return(rejected)

		pushed, err := newPublisher(gitClient, false).Publish(ctx, &Plan{Kind: PlanReplay}, true)
		assert.False(t, pushed)
		assert.ErrorContains(t, err, "moved on origin")
		assert.True(t, git.IsErrorType(err, git.PushRejected))
	})
}
