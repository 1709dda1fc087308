package actions_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"devpr.dev/devpr/internal/actions"
	devprerrors "devpr.dev/devpr/internal/errors"
	"devpr.dev/devpr/internal/git"
)

func TestPrAction(t *testing.T) {
	ctx := context.Background()

	t.Run("derives target from current development branch", func(t *testing.T) {
		rt, svc := newContext(t)
		svc.SeedBranch("master", "", "initial")
		svc.SeedBranch("dev/feature", "master", "fix bug")
		require.NoError(t, svc.Checkout(ctx, "dev/feature"))

		err := actions.PrAction(ctx, rt, actions.PrOptions{Parent: "master"})
		require.NoError(t, err)

		ahead, _, err := svc.AheadCounts(ctx, "pr/feature", "master")
		require.NoError(t, err)
		require.Equal(t, 1, ahead)
		require.Contains(t, svc.TipMessage("pr/feature"), "fix bug")
	})

	t.Run("explicit branch name may carry the dev prefix", func(t *testing.T) {
		rt, svc := newContext(t)
		svc.SeedBranch("master", "", "initial")
		svc.SeedBranch("dev/feature", "master", "fix bug")
		require.NoError(t, svc.Checkout(ctx, "master"))

		err := actions.PrAction(ctx, rt, actions.PrOptions{
			BranchName: "dev/feature",
			Parent:     "master",
		})
		require.NoError(t, err)

		_, ok := svc.Branches["pr/feature"]
		require.True(t, ok)
	})

	t.Run("development branch override", func(t *testing.T) {
		rt, svc := newContext(t)
		svc.SeedBranch("master", "", "initial")
		svc.SeedBranch("dev/other", "master", "fix bug")

		err := actions.PrAction(ctx, rt, actions.PrOptions{
			BranchName: "feature",
			DevName:    "other",
			Parent:     "master",
		})
		require.NoError(t, err)

		_, ok := svc.Branches["pr/feature"]
		require.True(t, ok)
		require.Contains(t, svc.TipMessage("pr/feature"), "fix bug")
	})

	t.Run("fails on non-development branch without mutating", func(t *testing.T) {
		rt, svc := newContext(t)
		svc.SeedBranch("master", "", "initial")

		err := actions.PrAction(ctx, rt, actions.PrOptions{Parent: "master"})
		require.ErrorIs(t, err, devprerrors.ErrNamingMismatch)
		require.Empty(t, svc.Mutations)
	})

	t.Run("fails on detached HEAD", func(t *testing.T) {
		rt, svc := newContext(t)
		svc.SeedBranch("master", "", "initial")
		svc.Detached = true

		err := actions.PrAction(ctx, rt, actions.PrOptions{Parent: "master"})
		require.ErrorIs(t, err, devprerrors.ErrNotOnBranch)
		require.Empty(t, svc.Mutations)
	})

	t.Run("fails fast when development branch is missing", func(t *testing.T) {
		rt, svc := newContext(t)
		svc.SeedBranch("master", "", "initial")

		err := actions.PrAction(ctx, rt, actions.PrOptions{
			BranchName: "feature",
			Parent:     "master",
		})
		require.ErrorIs(t, err, devprerrors.ErrBranchNotFound)
		require.Empty(t, svc.Mutations)
	})

	t.Run("no changes is reported as success", func(t *testing.T) {
		rt, svc := newContext(t)
		svc.SeedBranch("master", "", "initial")
		svc.SeedBranch("dev/feature", "master")
		require.NoError(t, svc.Checkout(ctx, "dev/feature"))

		err := actions.PrAction(ctx, rt, actions.PrOptions{Parent: "master"})
		require.NoError(t, err)
	})

	t.Run("drifted pull-request branch fails", func(t *testing.T) {
		rt, svc := newContext(t)
		svc.SeedBranch("master", "", "initial")
		svc.SeedBranch("dev/feature", "master", "fix bug")
		svc.SeedBranch("pr/feature", "master", "one", "two")
		require.NoError(t, svc.Checkout(ctx, "dev/feature"))
		before := append([]git.MockCommit(nil), svc.Branches["pr/feature"]...)
		svc.Mutations = nil

		err := actions.PrAction(ctx, rt, actions.PrOptions{Parent: "master"})
		require.ErrorIs(t, err, devprerrors.ErrTooManyForeignCommits)
		require.Empty(t, svc.Mutations)
		require.Equal(t, before, svc.Branches["pr/feature"])
	})
}
