package cli

import (
	"context"

	"github.com/spf13/cobra"

	"devpr.dev/devpr/internal/config"
	"devpr.dev/devpr/internal/output"
	"devpr.dev/devpr/internal/runtime"
)

// newParentCmd creates the parent command
func newParentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parent [<branch>]",
		Short: "Show or set the default parent branch",
		Long: `Show or set the default parent branch, stored in the repository's git
directory. Commands fall back to it whenever --on is omitted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithContext(cmd, func(_ context.Context, rt *runtime.Context) error {
				if len(args) == 0 {
					parent, err := config.GetParent(rt.RepoRoot)
					if err != nil {
						return err
					}
					rt.Splog.Info("Default parent branch: %s", output.ColorBranchName(parent))
					return nil
				}

				branch := args[0]
				exists, err := rt.Service.BranchExists(branch)
				if err != nil {
					return err
				}
				if !exists {
					rt.Splog.Warn("Branch %s does not exist yet.", output.ColorBranchName(branch))
				}

				if err := config.SetParent(rt.RepoRoot, branch); err != nil {
					return err
				}
				rt.Splog.Info("Default parent branch set to %s.", output.ColorBranchName(branch))
				return nil
			})
		},
	}

	return cmd
}
