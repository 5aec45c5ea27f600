package common

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/bjulian5/flattengit/internal/config"
	"github.com/bjulian5/flattengit/internal/flatten"
	"github.com/bjulian5/flattengit/internal/git"
	"github.com/bjulian5/flattengit/internal/logging"
	"github.com/bjulian5/flattengit/internal/ui"
	"github.com/bjulian5/flattengit/internal/workspace"
)

// InitClients prepares the working copy and builds the flattener for cfg.
// Returns an error that is suitable for use in RunE.
func InitClients(ctx context.Context, cfg config.Config) (*git.Client, *flatten.Flattener, *log.Logger, error) {
	logger := logging.New(logging.Options{Level: cfg.LogLevel})

	opts, err := cfg.FlattenOptions()
	if err != nil {
		return nil, nil, nil, err
	}

	gitClient, err := workspace.Prepare(ctx, cfg.WorkingRepo, cfg.WorkspaceOptions(), logger)
	if err != nil {
		ui.Errorf("Unable to prepare working repo %s", cfg.WorkingRepo)
		if out := git.ErrorOutput(err); out != "" {
			ui.Print(out)
		}
		return nil, nil, nil, fmt.Errorf("working copy initialization failed: %w", err)
	}
	return gitClient, flatten.New(gitClient, opts, logger), logger, nil
}
