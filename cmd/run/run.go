package run

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bjulian5/flattengit/internal/common"
	"github.com/bjulian5/flattengit/internal/config"
	"github.com/bjulian5/flattengit/internal/flatten"
	"github.com/bjulian5/flattengit/internal/git"
	"github.com/bjulian5/flattengit/internal/ui"
)

// Command flattens the source branch up to a commit and publishes the mirror
type Command struct {
	flags *common.Flags
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Flatten new source commits onto the mirror branch",
		Long: `Flatten the commits added to the source branch since the previous run onto
the mirror branch (<mirror-prefix><branch>) and push it.

The previous run's position is read from the "revision:" trailer of the
mirror branch's latest commit. When there is no trailer, the source history
was rewritten, or the range is larger than --max-commits, the mirror branch is
replaced by the current commit and force-pushed instead.

Example:
  flattengit run --current-commit $SHA --branch develop --working-repo /srv/flatten
  flattengit run --current-commit $SHA --dry-run
  flattengit run --current-commit $SHA --full-copy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.flags.Resolve(cmd.Flags())
			if err != nil {
				return err
			}
			return c.Run(cmd.Context(), cfg)
		},
	}

	c.flags = common.BindFlags(cmd.Flags())
	parent.AddCommand(cmd)
}

// Run executes the command
func (c *Command) Run(ctx context.Context, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	gitClient, flattener, logger, err := common.InitClients(ctx, cfg)
	if err != nil {
		return err
	}
	logger.Info("flattening", "branch", cfg.Branch, "current", cfg.CurrentCommit, "mirror", cfg.MirrorPrefix+cfg.Branch)

	result, err := flattener.Run(ctx, cfg.CurrentCommit)
	if result != nil && result.Report != nil {
		ui.Printf("%s", ui.RenderReport(result.Report))
	}
	if err != nil {
		return fmt.Errorf("flatten failed: %w", err)
	}

	if result.Plan.Kind != flatten.PlanNoOp {
		if err := verifyTree(ctx, gitClient, result.Plan.Current, logger); err != nil {
			return err
		}
	}
	summarize(result, cfg)
	return nil
}

// verifyTree checks that the checked out mirror commit has the source tree of current
func verifyTree(ctx context.Context, gitClient *git.Client, current string, logger *log.Logger) error {
	branch, err := gitClient.GetCurrentBranch(ctx)
	if err != nil {
		return err
	}
	mirrorTree, err := gitClient.GetCommitTree(ctx, "HEAD")
	if err != nil {
		return err
	}
	sourceTree, err := gitClient.GetCommitTree(ctx, current)
	if err != nil {
		return err
	}
	if mirrorTree != sourceTree {
		logger.Warn("mirror tree differs from source tree", "branch", branch, "mirror", mirrorTree, "source", sourceTree)
		return nil
	}
	logger.Debug("mirror tree matches source", "branch", branch, "tree", mirrorTree)
	return nil
}

func summarize(result *flatten.Result, cfg config.Config) {
	mirror := cfg.MirrorPrefix + cfg.Branch
	switch result.Plan.Kind {
	case flatten.PlanNoOp:
		ui.Infof("%s is already up to date with %s", mirror, result.Plan.Current)
		return
	case flatten.PlanFullCopy:
		ui.Infof("Copied %s to %s (%s)", result.Plan.Current, mirror, result.Plan.Reason)
	case flatten.PlanReplay:
		report := result.Report
		ui.Infof("Replayed %d commits: %d cherry-picked, %d recovered, %d squashed, %d skipped, %d abandoned",
			len(report.Steps),
			report.Count(flatten.OutcomeCherryPicked),
			report.Count(flatten.OutcomeRecovered),
			report.Count(flatten.OutcomeSquashed),
			report.Count(flatten.OutcomeSkipped),
			report.Count(flatten.OutcomeAbandoned))
		if n := report.Count(flatten.OutcomeAbandoned); n > 0 {
			ui.Warningf("%d cherry-picks were abandoned; the final commit restores the source tree", n)
		}
	}

	switch {
	case result.Pushed:
		ui.Successf("Pushed %s to %s", mirror, cfg.MirrorRemote)
	case cfg.DryRun:
		ui.Warning("Dry run: nothing was pushed")
	default:
		ui.Info("No new commits; nothing was pushed")
	}
}
