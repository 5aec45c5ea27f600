package plan

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bjulian5/flattengit/internal/common"
	"github.com/bjulian5/flattengit/internal/config"
	"github.com/bjulian5/flattengit/internal/ui"
)

// Command shows what a run would do without touching the mirror branch
type Command struct {
	flags *common.Flags
	Tree  bool
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the resume point and how each commit would be replayed",
		Long: `Show the resume point recovered from the mirror branch, the plan kind
(no-op, full-copy or replay) and, for a replay, how every commit in the range
would be handled.

The working repo is fetched but the mirror branch is neither checked out nor
pushed.

Example:
  flattengit plan --current-commit $SHA --branch develop
  flattengit plan --current-commit $SHA --tree`,
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
	cmd.Flags().BoolVar(&c.Tree, "tree", false, "Show the commits the mirror branch will gain as a tree")
	parent.AddCommand(cmd)
}

// Run executes the command
func (c *Command) Run(ctx context.Context, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	_, flattener, _, err := common.InitClients(ctx, cfg)
	if err != nil {
		return err
	}

	resume, p, err := flattener.Plan(ctx, cfg.CurrentCommit)
	if err != nil {
		return err
	}

	branch := cfg.MirrorPrefix + cfg.Branch
	if c.Tree {
		ui.Print(ui.RenderPlanTree(branch, p))
		return nil
	}
	ui.Header(branch)
	ui.Printf("%s", ui.RenderPlan(resume, p))
	return nil
}
