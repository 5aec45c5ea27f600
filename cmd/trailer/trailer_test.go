package trailer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	message := `Merge pull request #12

branch: develop, revision: 1111111

Reverted

branch: develop, revision: 2222222
`
	testCases := []struct {
		desc    string
		all     bool
		message string
		want    string
		warning string
	}{
		{desc: "last trailer wins", message: message, want: "2222222\n"},
		{desc: "all trailers oldest first", all: true, message: message, want: "branch: develop, revision: 1111111\nbranch: develop, revision: 2222222\n"},
		{desc: "no trailer warns on stderr only", message: "Plain commit\n", want: "", warning: "No revision trailer found"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
			cmd := &Command{All: tc.all}
			require.NoError(t, cmd.Run(strings.NewReader(tc.message), out, errOut))
			assert.Equal(t, tc.want, out.String())
			if tc.warning == "" {
				assert.Empty(t, errOut.String())
			} else {
				assert.Contains(t, errOut.String(), tc.warning)
			}
		})
	}
}
