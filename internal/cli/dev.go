package cli

import (
	"context"

	"github.com/spf13/cobra"

	"devpr.dev/devpr/internal/actions"
	"devpr.dev/devpr/internal/runtime"
)

// newDevCmd creates the dev command
func newDevCmd() *cobra.Command {
	var (
		parent    string
		noUpdates bool
	)

	cmd := &cobra.Command{
		Use:   "dev <branch>",
		Short: "Create a development branch from the parent branch",
		Long: `Create a development branch dev/<branch> from the parent branch.

Unless --no-updates is given, an empty marker commit is recorded so that
updates pulled from the parent can later be told apart from real work.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithContext(cmd, func(ctx context.Context, rt *runtime.Context) error {
				parentBranch, err := resolveParent(parent, rt.RepoRoot)
				if err != nil {
					return err
				}

				return actions.DevAction(ctx, rt, actions.DevOptions{
					BaseName:      args[0],
					Parent:        parentBranch,
					EnableUpdates: !noUpdates,
				})
			})
		},
	}

	cmd.Flags().StringVar(&parent, "on", "", "Parent branch to create the development branch from")
	cmd.Flags().BoolVar(&noUpdates, "no-updates", false, "Skip the update marker commit")

	return cmd
}
