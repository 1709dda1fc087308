package actions

import (
	"context"

	"devpr.dev/devpr/internal/branchname"
	"devpr.dev/devpr/internal/git"
	"devpr.dev/devpr/internal/output"
	"devpr.dev/devpr/internal/runtime"
)

// DevOptions are options for the dev command
type DevOptions struct {
	// BaseName is the base name of the branch; the branch is created as
	// dev/<BaseName>
	BaseName string

	// Parent is the branch the development branch is created from
	Parent string

	// EnableUpdates records an empty marker commit so later update pulls can
	// be found and excluded from message inference
	EnableUpdates bool
}

// DevAction creates a development branch from the parent branch
func DevAction(ctx context.Context, rt *runtime.Context, opts DevOptions) error {
	devBranch := branchname.Development(opts.BaseName)

	if err := rt.Service.Checkout(ctx, opts.Parent); err != nil {
		return err
	}

	if err := rt.Service.CreateBranch(ctx, devBranch); err != nil {
		return err
	}

	if opts.EnableUpdates {
		err := rt.Service.Commit(ctx, git.CommitOptions{
			Message:    branchname.UpdateFromMessage(opts.Parent),
			AllowEmpty: true,
		})
		if err != nil {
			return err
		}
	}

	rt.Splog.Info("Created %s from %s.",
		output.ColorBranchName(devBranch), output.ColorBranchName(opts.Parent))
	return nil
}
