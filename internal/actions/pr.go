package actions

import (
	"context"
	"errors"
	"strings"

	"devpr.dev/devpr/internal/branchname"
	devprerrors "devpr.dev/devpr/internal/errors"
	"devpr.dev/devpr/internal/output"
	"devpr.dev/devpr/internal/reconcile"
	"devpr.dev/devpr/internal/runtime"
)

// PrOptions are options for the pr command
type PrOptions struct {
	// BranchName is the target branch base name. When empty it is derived
	// from the current branch, which must be a development branch.
	BranchName string

	// Parent is the branch the pull-request branch is rebuilt from
	Parent string

	// DevName overrides the development branch base name. Defaults to the
	// target branch name.
	DevName string
}

// PrAction rebuilds the pull-request branch for a development branch: the
// branch is reset to the parent tip and the development branch's entire diff
// is committed onto it as a single squashed commit.
func PrAction(ctx context.Context, rt *runtime.Context, opts PrOptions) error {
	base, err := resolveTargetBase(rt, opts.BranchName)
	if err != nil {
		return err
	}

	devName := opts.DevName
	if devName == "" {
		devName = base
	}
	devBranch := branchname.Development(devName)
	prBranch := branchname.PullRequest(base)

	exists, err := rt.Service.BranchExists(devBranch)
	if err != nil {
		return err
	}
	if !exists {
		return devprerrors.NewBranchNotFoundError(devBranch)
	}

	r := reconcile.New(rt.Service)

	carried, err := r.PreparePrBranch(ctx, prBranch, opts.Parent)
	if err != nil {
		return err
	}
	if carried != "" {
		rt.Splog.Debug("Reusing commit message from previous %s tip.", prBranch)
	} else {
		carried, err = r.InferMessage(ctx, devBranch, opts.Parent)
		if err != nil {
			return err
		}
	}

	err = r.SquashAndCommit(ctx, devBranch, opts.Parent, carried, reconcile.LeaveConflicts)
	if errors.Is(err, devprerrors.ErrNoChanges) {
		rt.Splog.Info("No changes to sync from %s.", output.ColorBranchName(devBranch))
		return nil
	}
	if err != nil {
		return err
	}

	rt.Splog.Info("Synced %s onto %s as a single commit.",
		output.ColorBranchName(devBranch), output.ColorBranchName(prBranch))
	return nil
}

// resolveTargetBase resolves the target base name once, before anything is
// mutated: an explicit name (with or without the dev/ prefix), or the current
// branch, which must carry the dev/ prefix
func resolveTargetBase(rt *runtime.Context, explicit string) (string, error) {
	if explicit != "" {
		if base, ok := branchname.DevelopmentBase(explicit); ok {
			return base, nil
		}
		return strings.TrimPrefix(explicit, branchname.PullRequestPrefix), nil
	}

	current, err := rt.Service.CurrentBranch()
	if err != nil {
		return "", err
	}

	base, ok := branchname.DevelopmentBase(current)
	if !ok {
		return "", devprerrors.NewNamingMismatchError(current, branchname.DevelopmentPrefix)
	}
	return base, nil
}
