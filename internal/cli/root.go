// Package cli wires the devpr commands to cobra.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"devpr.dev/devpr/internal/config"
	"devpr.dev/devpr/internal/git"
	"devpr.dev/devpr/internal/runtime"
)

var verbosity int

// NewRootCmd creates the root cobra command
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "devpr",
		Short: "devpr keeps squashed pull-request branches in sync with development branches",
		Long: `devpr keeps squashed pull-request branches in sync with development branches.

Work happens on long-lived dev/<name> branches; devpr pr rebuilds the matching
pr/<name> branch as a single squashed commit on top of the parent branch,
reusing the previous commit message when there is one.

Only one devpr instance must run against a repository at a time: every step
mutates the shared checkout and index.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if verbosity > 0 {
				git.Trace = func(args []string) {
					fmt.Fprintln(os.Stderr, "+ git "+strings.Join(args, " "))
				}
			}
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Print executed git commands; repeat for debug output")

	rootCmd.AddCommand(newDevCmd())
	rootCmd.AddCommand(newPrCmd())
	rootCmd.AddCommand(newUpdateCmd())
	rootCmd.AddCommand(newParentCmd())

	return rootCmd
}

// resolveParent returns the --on flag value, falling back to the repository's
// configured default when the flag was not given
func resolveParent(flagValue, repoRoot string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	return config.GetParent(repoRoot)
}

// runWithContext opens the repository context, applies the verbosity level and
// tears the logger down when the command is done
func runWithContext(cmd *cobra.Command, run func(ctx context.Context, rt *runtime.Context) error) error {
	rt, err := runtime.GetContext()
	if err != nil {
		return err
	}
	defer func() { _ = rt.Splog.Close() }()

	rt.Splog.SetDebug(verbosity > 1)

	return run(cmd.Context(), rt)
}
