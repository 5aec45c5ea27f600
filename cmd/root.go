package cmd

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bjulian5/flattengit/cmd/plan"
	"github.com/bjulian5/flattengit/cmd/run"
	"github.com/bjulian5/flattengit/cmd/trailer"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "flattengit",
	Short: "Maintain a flattened mirror of a development branch",
	Long: `flattengit keeps a linear copy of a development branch for CI systems that
rebuild on every merge.

Each run replays the commits added to the source branch since the previous
run onto the flattened branch: ordinary commits are cherry-picked, merges are
collapsed into a single commit, and the last commit of the range is forced to
match the source tree exactly. The source revision is recorded in the
flattened branch's commit message so the next run knows where to resume.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		log.Fatal(err)
	}
}

func init() {
	commands := []Command{
		&run.Command{},
		&plan.Command{},
		&trailer.Command{},
	}

	for _, cmd := range commands {
		cmd.Register(rootCmd)
	}
}
