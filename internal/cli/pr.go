package cli

import (
	"context"

	"github.com/spf13/cobra"

	"devpr.dev/devpr/internal/actions"
	"devpr.dev/devpr/internal/runtime"
)

// newPrCmd creates the pr command
func newPrCmd() *cobra.Command {
	var (
		parent  string
		devName string
	)

	cmd := &cobra.Command{
		Use:   "pr [<branch>]",
		Short: "Rebuild the pull-request branch from a development branch",
		Long: `Rebuild pr/<branch> as a single squashed commit holding the entire diff of
dev/<branch> against the parent branch.

With no argument the branch is derived from the current development branch.
A previous sync's commit message is reused when the pull-request branch still
holds exactly that one commit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithContext(cmd, func(ctx context.Context, rt *runtime.Context) error {
				parentBranch, err := resolveParent(parent, rt.RepoRoot)
				if err != nil {
					return err
				}

				branchName := ""
				if len(args) > 0 {
					branchName = args[0]
				}

				return actions.PrAction(ctx, rt, actions.PrOptions{
					BranchName: branchName,
					Parent:     parentBranch,
					DevName:    devName,
				})
			})
		},
	}

	cmd.Flags().StringVar(&parent, "on", "", "Parent branch to rebuild the pull-request branch from")
	cmd.Flags().StringVarP(&devName, "dev", "D", "", "Development branch name to squash, when it differs from the target")

	return cmd
}
