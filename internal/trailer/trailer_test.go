package trailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	testCases := []struct {
		desc    string
		message string
		want    Record
		found   bool
	}{
		{
			desc:    "no trailer",
			message: "Fix the build\n\nSome body text\n",
			found:   false,
		},
		{
			desc:    "empty message",
			message: "",
			found:   false,
		},
		{
			desc:    "branch and revision",
			message: "Fix the build\n\nbranch: develop, revision: 0123abcd\n",
			want:    Record{SourceBranch: "develop", SourceRevision: "0123abcd"},
			found:   true,
		},
		{
			desc:    "revision only",
			message: "Fix the build\nrevision: 89ef\n",
			want:    Record{SourceRevision: "89ef"},
			found:   true,
		},
		{
			desc:    "last trailer wins",
			message: "Merge feature\n\nbranch: develop, revision: aaaa\n\nbranch: develop, revision: bbbb\n\nbranch: release/1.2, revision: cccc\n",
			want:    Record{SourceBranch: "release/1.2", SourceRevision: "cccc"},
			found:   true,
		},
		{
			desc:    "branch name containing a comma",
			message: "x\n\nbranch: odd,name, revision: 1234\n",
			want:    Record{SourceBranch: "odd,name", SourceRevision: "1234"},
			found:   true,
		},
		{
			desc:    "uppercase hex is not a trailer",
			message: "x\n\nrevision: ABCDEF\n",
			found:   false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			got, found := Extract(tc.message)
			assert.Equal(t, tc.found, found)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAppend(t *testing.T) {
	rec := Record{SourceBranch: "develop", SourceRevision: "cafe01"}

	t.Run("subject only", func(t *testing.T) {
		assert.Equal(t, "Fix it\n\nbranch: develop, revision: cafe01\n", Append("Fix it\n", rec))
	})

	t.Run("preserves body, quotes and newlines", func(t *testing.T) {
		msg := "Say \"hello\" to 'everyone'\n\nFirst line\n  indented $(not a shell)\n\n"
		got := Append(msg, rec)
		assert.Equal(t, "Say \"hello\" to 'everyone'\n\nFirst line\n  indented $(not a shell)\n\nbranch: develop, revision: cafe01\n", got)
	})

	t.Run("empty message", func(t *testing.T) {
		assert.Equal(t, "branch: develop, revision: cafe01\n", Append("", rec))
	})
}

func TestRoundTrip(t *testing.T) {
	message := "Merge branch 'feature'\n\nbranch: develop, revision: 1111\n"
	rec := Record{SourceBranch: "develop", SourceRevision: "2222"}

	got, found := Extract(Append(message, rec))
	assert.True(t, found)
	assert.Equal(t, rec, got)

	all := ExtractAll(Append(message, rec))
	assert.Equal(t, []Record{
		{SourceBranch: "develop", SourceRevision: "1111"},
		{SourceBranch: "develop", SourceRevision: "2222"},
	}, all)
}
