package testutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// SourceBranch is the branch every test repository develops on
const SourceBranch = "develop"

var baseDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// IsolateGitConfig stops the user's global and system git configuration from
// leaking into a test (signing, hooks paths, default branch names).
func IsolateGitConfig(t *testing.T) {
	t.Setenv("GIT_CONFIG_GLOBAL", os.DevNull)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_TERMINAL_PROMPT", "0")
}

// Git runs a git command in dir and returns its trimmed stdout
func Git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	return GitEnv(t, dir, nil, args...)
}

// GitEnv runs a git command in dir with extra environment variables
func GitEnv(t *testing.T, dir string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %s failed: %s", strings.Join(args, " "), string(output))
	return strings.TrimSpace(string(output))
}

// Repo is a developer clone used to build source history
type Repo struct {
	t   *testing.T
	Dir string
	// Origin is the path of the bare repository the clone pushes to.
	Origin string
	seq    int
}

// NewOrigin creates a bare origin repository and a developer clone of it with
// an initial commit on SourceBranch, already pushed.
func NewOrigin(t *testing.T) *Repo {
	t.Helper()
	IsolateGitConfig(t)

	origin := t.TempDir()
	Git(t, origin, "init", "--bare", "--initial-branch="+SourceBranch)

	dir := t.TempDir()
	Git(t, dir, "init", "--initial-branch="+SourceBranch)
	Git(t, dir, "config", "user.name", "Test Developer")
	Git(t, dir, "config", "user.email", "dev@example.com")
	Git(t, dir, "remote", "add", "origin", origin)

	r := &Repo{t: t, Dir: dir, Origin: origin}
	r.Commit("Initial commit", map[string]string{"README.md": "readme\n"})
	r.Push()
	return r
}

// dateEnv returns a strictly increasing author/committer date for each commit
func (r *Repo) dateEnv() []string {
	r.seq++
	date := baseDate.Add(time.Duration(r.seq) * time.Minute).Format(time.RFC3339)
	return []string{"GIT_AUTHOR_DATE=" + date, "GIT_COMMITTER_DATE=" + date}
}

// WriteFiles writes files relative to the repository root. An empty content
// deletes the file.
func (r *Repo) WriteFiles(files map[string]string) {
	r.t.Helper()
	for name, content := range files {
		path := filepath.Join(r.Dir, name)
		if content == "" {
			require.NoError(r.t, os.Remove(path))
			continue
		}
		require.NoError(r.t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(r.t, os.WriteFile(path, []byte(content), 0644))
	}
}

// Commit writes files and commits every change with msg, returning the new hash
func (r *Repo) Commit(msg string, files map[string]string) string {
	r.t.Helper()
	r.WriteFiles(files)
	Git(r.t, r.Dir, "add", "--all")
	GitEnv(r.t, r.Dir, r.dateEnv(), "commit", "--allow-empty", "-m", msg)
	return r.Head()
}

// CommitAs is Commit with an explicit author
func (r *Repo) CommitAs(name, email, msg string, files map[string]string) string {
	r.t.Helper()
	r.WriteFiles(files)
	Git(r.t, r.Dir, "add", "--all")
	GitEnv(r.t, r.Dir, r.dateEnv(), "commit", "--allow-empty", fmt.Sprintf("--author=%s <%s>", name, email), "-m", msg)
	return r.Head()
}

// Checkout switches branches, creating the branch at start when given
func (r *Repo) Checkout(branch string, start ...string) {
	r.t.Helper()
	if len(start) > 0 {
		Git(r.t, r.Dir, "checkout", "-b", branch, start[0])
		return
	}
	Git(r.t, r.Dir, "checkout", branch)
}

// Merge merges branch into the current branch with a merge commit. Extra
// files are added to the merge itself, like a hand-resolved conflict.
func (r *Repo) Merge(branch, msg string, files map[string]string) string {
	r.t.Helper()
	GitEnv(r.t, r.Dir, r.dateEnv(), "merge", "--no-ff", "--no-commit", branch)
	r.WriteFiles(files)
	Git(r.t, r.Dir, "add", "--all")
	GitEnv(r.t, r.Dir, r.dateEnv(), "commit", "-m", msg)
	return r.Head()
}

// Push pushes every branch to origin
func (r *Repo) Push() {
	r.t.Helper()
	Git(r.t, r.Dir, "push", "--force", "origin", "--all")
}

// Head returns the hash of HEAD
func (r *Repo) Head() string {
	r.t.Helper()
	return Git(r.t, r.Dir, "rev-parse", "HEAD")
}

// Tree returns the tree hash of ref in the developer clone
func (r *Repo) Tree(ref string) string {
	r.t.Helper()
	return Git(r.t, r.Dir, "rev-parse", ref+"^{tree}")
}

// OriginRef returns the hash of ref in origin, or "" if it does not exist
func (r *Repo) OriginRef(ref string) string {
	r.t.Helper()
	cmd := exec.Command("git", "rev-parse", "--verify", "--quiet", ref)
	cmd.Dir = r.Origin
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// OriginTree returns the tree hash of ref in origin
func (r *Repo) OriginTree(ref string) string {
	r.t.Helper()
	return Git(r.t, r.Origin, "rev-parse", ref+"^{tree}")
}

// OriginLog returns "<parent count> <subject>" for each commit of ref in
// origin, newest first, stopping at stop (exclusive) when given
func (r *Repo) OriginLog(ref string, stop string) []string {
	r.t.Helper()
	rangeSpec := ref
	if stop != "" {
		rangeSpec = stop + ".." + ref
	}
	out := Git(r.t, r.Origin, "log", "--format=%P%x1f%s", rangeSpec)
	if out == "" {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		parts := strings.SplitN(line, "\x1f", 2)
		lines = append(lines, fmt.Sprintf("%d %s", len(strings.Fields(parts[0])), parts[1]))
	}
	return lines
}

// OriginMessage returns the full message of ref in origin
func (r *Repo) OriginMessage(ref string) string {
	r.t.Helper()
	return Git(r.t, r.Origin, "log", "-1", "--format=%B", ref)
}
