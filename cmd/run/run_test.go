package run

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjulian5/flattengit/internal/git"
	"github.com/bjulian5/flattengit/internal/logging"
	"github.com/bjulian5/flattengit/internal/testutil"
)

func TestVerifyTree(t *testing.T) {
	repo := testutil.NewOrigin(t)
	base := repo.Head()
	next := repo.Commit("Next", map[string]string{"a.txt": "a\n"})

	gitClient, err := git.NewClientAt(repo.Dir)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("matching tree logs nothing at warn level", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := logging.New(logging.Options{Level: "warn", Output: buf})

		require.NoError(t, verifyTree(ctx, gitClient, next, logger))
		assert.Empty(t, buf.String())
	})

	t.Run("diverged tree is reported", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := logging.New(logging.Options{Level: "warn", Output: buf})

		require.NoError(t, verifyTree(ctx, gitClient, base, logger))
		assert.Contains(t, buf.String(), "mirror tree differs from source tree")
		assert.Contains(t, buf.String(), testutil.SourceBranch)
	})

	t.Run("unknown source is an error", func(t *testing.T) {
		err := verifyTree(ctx, gitClient, "0123456789012345678901234567890123456789", logging.Discard())
		assert.Error(t, err)
	})
}
