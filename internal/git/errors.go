package git

import (
	"errors"
	"regexp"
	"strings"
)

// GitExecErrorType classifies a failed git invocation from its stderr
type GitExecErrorType int

const (
	Unknown GitExecErrorType = iota
	UnknownReference
	AuthRequired
	RepositoryNotFound
	RepositoryUnavailable
	IndexLocked
	PushRejected
)

// GitExecError is returned when a git command exits unsuccessfully. It keeps
// the raw tool output so callers can surface it to the operator.
type GitExecError struct {
	Type     GitExecErrorType
	Args     []string
	ExitCode int
	Err      error
	StdErr   string
	StdOut   string
}

func (e *GitExecError) Error() string {
	b := new(strings.Builder)
	b.WriteString("git ")
	b.WriteString(strings.Join(e.Args, " "))
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	if stderr := strings.TrimSpace(e.StdErr); stderr != "" {
		b.WriteString(": ")
		b.WriteString(stderr)
	}
	return b.String()
}

func (e *GitExecError) Unwrap() error {
	return e.Err
}

// Output returns the combined stdout and stderr of the failed command
func (e *GitExecError) Output() string {
	return strings.TrimSpace(e.StdOut + e.StdErr)
}

// Transient reports whether retrying the command could succeed
func (e *GitExecError) Transient() bool {
	switch e.Type {
	case RepositoryUnavailable, IndexLocked:
		return true
	}
	return false
}

// IsErrorType reports whether err wraps a *GitExecError of type t
func IsErrorType(err error, t GitExecErrorType) bool {
	var gitErr *GitExecError
	return errors.As(err, &gitErr) && gitErr.Type == t
}

// ErrorOutput returns the raw git output carried by err, if any
func ErrorOutput(err error) string {
	var gitErr *GitExecError
	if errors.As(err, &gitErr) {
		return gitErr.Output()
	}
	return ""
}

func determineErrorType(stdErr string) GitExecErrorType {
	switch {
	case strings.Contains(stdErr, "unknown revision or path not in the working tree"),
		strings.Contains(stdErr, "Not a valid commit name"),
		strings.Contains(stdErr, "Needed a single revision"):
		return UnknownReference
	case strings.Contains(stdErr, "could not read Username"),
		strings.Contains(stdErr, "Permission denied (publickey"):
		return AuthRequired
	case strings.Contains(stdErr, "Could not resolve host"),
		strings.Contains(stdErr, "Connection timed out"),
		strings.Contains(stdErr, "Connection reset"),
		strings.Contains(stdErr, "the remote end hung up unexpectedly"):
		return RepositoryUnavailable
	case strings.Contains(stdErr, "index.lock"):
		return IndexLocked
	case strings.Contains(stdErr, "[rejected]"),
		strings.Contains(stdErr, "failed to push some refs"):
		return PushRejected
	case matches(`fatal: repository '.*' not found`, stdErr):
		return RepositoryNotFound
	}
	return Unknown
}

func matches(pattern, s string) bool {
	return regexp.MustCompile(pattern).MatchString(s)
}
