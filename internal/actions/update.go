package actions

import (
	"context"

	"devpr.dev/devpr/internal/branchname"
	devprerrors "devpr.dev/devpr/internal/errors"
	"devpr.dev/devpr/internal/output"
	"devpr.dev/devpr/internal/reconcile"
	"devpr.dev/devpr/internal/runtime"
)

// UpdateOptions are options for the update command
type UpdateOptions struct {
	// Parent is the branch updates are pulled from
	Parent string
}

// UpdateAction pulls the parent branch's changes into the current development
// branch and records them as a marker commit
func UpdateAction(ctx context.Context, rt *runtime.Context, opts UpdateOptions) error {
	current, err := rt.Service.CurrentBranch()
	if err != nil {
		return err
	}

	if _, ok := branchname.DevelopmentBase(current); !ok {
		return devprerrors.NewNamingMismatchError(current, branchname.DevelopmentPrefix)
	}

	if err := reconcile.New(rt.Service).PullParentUpdates(ctx, opts.Parent, current); err != nil {
		return err
	}

	rt.Splog.Info("Pulled updates from %s into %s.",
		output.ColorBranchName(opts.Parent), output.ColorBranchName(current))
	return nil
}
