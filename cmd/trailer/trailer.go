package trailer

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bjulian5/flattengit/internal/trailer"
	"github.com/bjulian5/flattengit/internal/ui"
)

// Command prints the revision trailers found in a commit message
type Command struct {
	All bool
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "trailer [message-file]",
		Short: "Extract the source revision from a commit message",
		Long: `Read a commit message from a file (or stdin) and print the source revision
recorded in it. The last trailer wins, which is what run uses to resume.

Example:
  git log -1 --format=%B flat/develop | flattengit trailer
  flattengit trailer --all message.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", args[0], err)
				}
				defer f.Close()
				in = f
			}
			return c.Run(in, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().BoolVar(&c.All, "all", false, "Print every trailer, oldest first")
	parent.AddCommand(cmd)
}

// Run executes the command. Warnings go to errOut so out stays parseable.
func (c *Command) Run(in io.Reader, out, errOut io.Writer) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read message: %w", err)
	}

	if c.All {
		for _, rec := range trailer.ExtractAll(string(data)) {
			fmt.Fprintln(out, rec.String())
		}
		return nil
	}

	rec, found := trailer.Extract(string(data))
	if !found {
		fmt.Fprintln(errOut, ui.WarningStyle.Render("⚠ No revision trailer found"))
		return nil
	}
	fmt.Fprintln(out, rec.SourceRevision)
	return nil
}
