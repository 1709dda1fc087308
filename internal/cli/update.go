package cli

import (
	"context"

	"github.com/spf13/cobra"

	"devpr.dev/devpr/internal/actions"
	"devpr.dev/devpr/internal/runtime"
)

// newUpdateCmd creates the update command
func newUpdateCmd() *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Pull parent branch changes into the current development branch",
		Long: `Pull the parent branch's changes into the current development branch as a
single marker commit. Marker commits are ignored when a commit message is
inferred for the pull-request branch.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithContext(cmd, func(ctx context.Context, rt *runtime.Context) error {
				parentBranch, err := resolveParent(parent, rt.RepoRoot)
				if err != nil {
					return err
				}

				return actions.UpdateAction(ctx, rt, actions.UpdateOptions{
					Parent: parentBranch,
				})
			})
		},
	}

	cmd.Flags().StringVar(&parent, "on", "", "Parent branch to pull updates from")

	return cmd
}
