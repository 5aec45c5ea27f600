package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjulian5/flattengit/internal/config"
)

func TestFlagsResolve_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flattengit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("branch: main\nmax-commits: 20\nmirror-prefix: linear/\n"), 0644))
	t.Setenv(config.EnvPrefix+"MAX_COMMITS", "30")
	t.Setenv(config.EnvPrefix+"MIRROR_PREFIX", "env/")

	fs := pflag.NewFlagSet("run", pflag.ContinueOnError)
	flags := BindFlags(fs)
	require.NoError(t, fs.Parse([]string{"--config", path, "--max-commits", "40", "--current-commit", "abc123"}))

	cfg, err := flags.Resolve(fs)
	require.NoError(t, err)

	assert.Equal(t, "main", cfg.Branch, "file overrides default")
	assert.Equal(t, "env/", cfg.MirrorPrefix, "environment overrides file")
	assert.Equal(t, 40, cfg.MaxCommits, "flag overrides environment")
	assert.Equal(t, "abc123", cfg.CurrentCommit)
	assert.Equal(t, "origin", cfg.MirrorRemote)
}

func TestFlagsResolve_UnsetFlagsDoNotOverride(t *testing.T) {
	t.Setenv(config.EnvPrefix+"BRANCH", "release")

	fs := pflag.NewFlagSet("run", pflag.ContinueOnError)
	flags := BindFlags(fs)
	require.NoError(t, fs.Parse([]string{"--dry-run"}))

	cfg, err := flags.Resolve(fs)
	require.NoError(t, err)
	assert.Equal(t, "release", cfg.Branch)
	assert.True(t, cfg.DryRun)
	assert.False(t, cfg.FullCopy)
}
