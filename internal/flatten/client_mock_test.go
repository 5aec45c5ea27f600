package flatten

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bjulian5/flattengit/internal/git"
)

// MockGitClient implements GitClient for unit tests
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = (*MockGitClient)(nil)

func (m *MockGitClient) Log(ctx context.Context, exclude, include string) ([]git.Commit, error) {
	args := m.Called(exclude, include)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]git.Commit), args.Error(1)
}

func (m *MockGitClient) IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error) {
	args := m.Called(ancestor, descendant)
	return args.Bool(0), args.Error(1)
}

func (m *MockGitClient) GetCommitHash(ctx context.Context, ref string) (string, error) {
	args := m.Called(ref)
	return args.String(0), args.Error(1)
}

func (m *MockGitClient) GetCommitMessage(ctx context.Context, ref string) (string, error) {
	args := m.Called(ref)
	return args.String(0), args.Error(1)
}

func (m *MockGitClient) CheckoutBranchAt(ctx context.Context, name, ref string, noTrack bool) error {
	return m.Called(name, ref, noTrack).Error(0)
}

func (m *MockGitClient) ResetHard(ctx context.Context, ref string) error {
	return m.Called(ref).Error(0)
}

func (m *MockGitClient) ResetSoft(ctx context.Context, ref string) error {
	return m.Called(ref).Error(0)
}

func (m *MockGitClient) Status(ctx context.Context) ([]git.StatusEntry, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]git.StatusEntry), args.Error(1)
}

func (m *MockGitClient) HasStagedChanges(ctx context.Context) (bool, error) {
	args := m.Called()
	return args.Bool(0), args.Error(1)
}

func (m *MockGitClient) Commit(ctx context.Context, author git.Author, message string) error {
	return m.Called(author, message).Error(0)
}

func (m *MockGitClient) AmendMessage(ctx context.Context, message string) error {
	return m.Called(message).Error(0)
}

func (m *MockGitClient) CherryPick(ctx context.Context, commitHash string, strategyArgs []string) (git.RunResult, error) {
	args := m.Called(commitHash, strategyArgs)
	return args.Get(0).(git.RunResult), args.Error(1)
}

func (m *MockGitClient) CherryPickAbort(ctx context.Context) error {
	return m.Called().Error(0)
}

func (m *MockGitClient) Remove(ctx context.Context, path string) error {
	return m.Called(path).Error(0)
}

func (m *MockGitClient) ListRemoteHeads(ctx context.Context, remote string) (map[string]string, error) {
	args := m.Called(remote)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockGitClient) Push(ctx context.Context, remote, branch string, opts git.PushOptions) error {
	return m.Called(remote, branch, opts).Error(0)
}
