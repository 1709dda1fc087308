package reconcile_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	devprerrors "devpr.dev/devpr/internal/errors"
	"devpr.dev/devpr/internal/git"
	"devpr.dev/devpr/internal/reconcile"
)

func newMock(t *testing.T) *git.MockService {
	t.Helper()
	return git.NewMockService(t.TempDir())
}

func TestPreparePrBranch(t *testing.T) {
	ctx := context.Background()

	t.Run("creates missing branch from parent", func(t *testing.T) {
		svc := newMock(t)
		svc.SeedBranch("master", "", "initial", "second")
		svc.SeedBranch("dev/feature", "master", "fix bug")
		require.NoError(t, svc.Checkout(ctx, "dev/feature"))

		carried, err := reconcile.New(svc).PreparePrBranch(ctx, "pr/feature", "master")
		require.NoError(t, err)
		require.Empty(t, carried)

		require.Equal(t, "pr/feature", svc.Current)
		require.Equal(t, svc.Branches["master"], svc.Branches["pr/feature"])
	})

	t.Run("carries tip message when one commit ahead", func(t *testing.T) {
		svc := newMock(t)
		svc.SeedBranch("master", "", "initial")
		svc.SeedBranch("pr/feature", "master", "previous sync message")

		carried, err := reconcile.New(svc).PreparePrBranch(ctx, "pr/feature", "master")
		require.NoError(t, err)
		require.Equal(t, "previous sync message", carried)

		// The branch was reset to the parent tip regardless
		require.Equal(t, "pr/feature", svc.Current)
		require.Equal(t, svc.Branches["master"], svc.Branches["pr/feature"])
	})

	t.Run("no message when branch matches parent", func(t *testing.T) {
		svc := newMock(t)
		svc.SeedBranch("master", "", "initial")
		svc.SeedBranch("pr/feature", "master")

		carried, err := reconcile.New(svc).PreparePrBranch(ctx, "pr/feature", "master")
		require.NoError(t, err)
		require.Empty(t, carried)
		require.Equal(t, "pr/feature", svc.Current)
	})

	t.Run("refuses drifted branch without mutating", func(t *testing.T) {
		svc := newMock(t)
		svc.SeedBranch("master", "", "initial")
		svc.SeedBranch("pr/feature", "master", "one", "two")
		before := append([]git.MockCommit(nil), svc.Branches["pr/feature"]...)

		_, err := reconcile.New(svc).PreparePrBranch(ctx, "pr/feature", "master")
		require.ErrorIs(t, err, devprerrors.ErrTooManyForeignCommits)

		var drift *devprerrors.TooManyForeignCommitsError
		require.ErrorAs(t, err, &drift)
		require.Equal(t, "pr/feature", drift.BranchName)
		require.Equal(t, "master", drift.ParentBranch)
		require.Equal(t, 2, drift.AheadCount)

		require.Empty(t, svc.Mutations, "drifted branch must not be touched")
		require.Equal(t, before, svc.Branches["pr/feature"])
	})
}

func TestInferMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("single non-trivial commit wins", func(t *testing.T) {
		svc := newMock(t)
		svc.SeedBranch("master", "", "initial")
		svc.SeedBranch("dev/feature", "master", "!update-from: master", "fix bug")

		message, err := reconcile.New(svc).InferMessage(ctx, "dev/feature", "master")
		require.NoError(t, err)
		require.Equal(t, "fix bug", message)
	})

	t.Run("two non-trivial commits are ambiguous", func(t *testing.T) {
		svc := newMock(t)
		svc.SeedBranch("master", "", "initial")
		svc.SeedBranch("dev/feature", "master", "fix bug", "fix another bug")

		message, err := reconcile.New(svc).InferMessage(ctx, "dev/feature", "master")
		require.NoError(t, err)
		require.Empty(t, message)
	})

	t.Run("only marker commits yield nothing", func(t *testing.T) {
		svc := newMock(t)
		svc.SeedBranch("master", "", "initial")
		svc.SeedBranch("dev/feature", "master", "!update-from: master")

		message, err := reconcile.New(svc).InferMessage(ctx, "dev/feature", "master")
		require.NoError(t, err)
		require.Empty(t, message)
	})
}

func TestSquashAndCommit(t *testing.T) {
	ctx := context.Background()

	// prepared returns a service with dev/feature carrying work and
	// pr/feature checked out at the master tip
	prepared := func(t *testing.T, devMessages ...string) *git.MockService {
		t.Helper()
		svc := newMock(t)
		svc.SeedBranch("master", "", "initial")
		svc.SeedBranch("dev/feature", "master", devMessages...)
		_, err := reconcile.New(svc).PreparePrBranch(ctx, "pr/feature", "master")
		require.NoError(t, err)
		return svc
	}

	t.Run("squashes and commits", func(t *testing.T) {
		svc := prepared(t, "fix bug")

		err := reconcile.New(svc).SquashAndCommit(ctx, "dev/feature", "master", "", reconcile.LeaveConflicts)
		require.NoError(t, err)

		ahead, _, err := svc.AheadCounts(ctx, "pr/feature", "master")
		require.NoError(t, err)
		require.Equal(t, 1, ahead, "pull-request branch ends exactly one commit ahead")
		require.Contains(t, svc.TipMessage("pr/feature"), "fix bug")
	})

	t.Run("carried message leads the commit", func(t *testing.T) {
		svc := prepared(t, "fix bug", "address review")

		err := reconcile.New(svc).SquashAndCommit(ctx, "dev/feature", "master", "previous sync message", reconcile.LeaveConflicts)
		require.NoError(t, err)

		tip := svc.TipMessage("pr/feature")
		require.Equal(t, "previous sync message", tip,
			"default message lines are commented out and stripped on commit")
	})

	t.Run("no changes is a quiet no-op", func(t *testing.T) {
		svc := prepared(t)

		err := reconcile.New(svc).SquashAndCommit(ctx, "dev/feature", "master", "", reconcile.LeaveConflicts)
		require.ErrorIs(t, err, devprerrors.ErrNoChanges)
		require.NotContains(t, svc.Mutations, "Commit")
	})

	t.Run("no changes wins over carried message", func(t *testing.T) {
		svc := prepared(t)

		err := reconcile.New(svc).SquashAndCommit(ctx, "dev/feature", "master", "previous sync message", reconcile.LeaveConflicts)
		require.ErrorIs(t, err, devprerrors.ErrNoChanges)
		require.NotContains(t, svc.Mutations, "Commit")
	})

	t.Run("conflict left in tree on sync path", func(t *testing.T) {
		svc := prepared(t, "fix bug")
		svc.ConflictOnSquash = true

		err := reconcile.New(svc).SquashAndCommit(ctx, "dev/feature", "master", "", reconcile.LeaveConflicts)
		require.ErrorIs(t, err, devprerrors.ErrMergeConflict)

		var conflict *devprerrors.MergeConflictError
		require.ErrorAs(t, err, &conflict)
		require.Equal(t, "dev/feature", conflict.SourceBranch)
		require.Equal(t, "master", conflict.TargetBranch)

		require.NotContains(t, svc.Mutations, "DiscardAllChanges")
	})

	t.Run("conflict cleaned up when policy says so", func(t *testing.T) {
		svc := prepared(t, "fix bug")
		svc.ConflictOnSquash = true

		err := reconcile.New(svc).SquashAndCommit(ctx, "dev/feature", "master", "", reconcile.DiscardOnConflict)
		require.ErrorIs(t, err, devprerrors.ErrMergeConflict)
		require.Contains(t, svc.Mutations, "DiscardAllChanges")
	})

	t.Run("pull-request branch ends one commit ahead end to end", func(t *testing.T) {
		svc := newMock(t)
		svc.SeedBranch("master", "", "initial")
		svc.SeedBranch("dev/feature", "master", "fix bug", "cleanup")

		r := reconcile.New(svc)
		carried, err := r.PreparePrBranch(ctx, "pr/feature", "master")
		require.NoError(t, err)
		if carried == "" {
			carried, err = r.InferMessage(ctx, "dev/feature", "master")
			require.NoError(t, err)
		}
		require.NoError(t, r.SquashAndCommit(ctx, "dev/feature", "master", carried, reconcile.LeaveConflicts))

		ahead, _, err := svc.AheadCounts(ctx, "pr/feature", "master")
		require.NoError(t, err)
		require.Equal(t, 1, ahead)
	})

	t.Run("second sync reproduces the same commit", func(t *testing.T) {
		svc := newMock(t)
		svc.SeedBranch("master", "", "initial")
		svc.SeedBranch("dev/feature", "master", "fix bug")

		r := reconcile.New(svc)

		carried, err := r.PreparePrBranch(ctx, "pr/feature", "master")
		require.NoError(t, err)
		require.Empty(t, carried)
		require.NoError(t, r.SquashAndCommit(ctx, "dev/feature", "master", carried, reconcile.LeaveConflicts))
		firstTip := svc.TipMessage("pr/feature")

		// Second run: the previous squash commit's message is recovered,
		// then the branch is rebuilt from the unchanged dev branch
		carried, err = r.PreparePrBranch(ctx, "pr/feature", "master")
		require.NoError(t, err)
		require.Equal(t, firstTip, carried)

		err = r.SquashAndCommit(ctx, "dev/feature", "master", carried, reconcile.LeaveConflicts)
		require.NoError(t, err)
		require.Equal(t, firstTip, svc.TipMessage("pr/feature"))
	})
}

func TestPullParentUpdates(t *testing.T) {
	ctx := context.Background()

	t.Run("records marker commit after pulling parent", func(t *testing.T) {
		svc := newMock(t)
		svc.SeedBranch("master", "", "initial")
		svc.SeedBranch("dev/feature", "master", "fix bug")
		svc.CommitOn("master", "hotfix on master")
		require.NoError(t, svc.Checkout(ctx, "dev/feature"))

		err := reconcile.New(svc).PullParentUpdates(ctx, "master", "dev/feature")
		require.NoError(t, err)
		require.Equal(t, "!update-from: master", svc.TipMessage("dev/feature"))
	})

	t.Run("marker commit recorded even with nothing to pull", func(t *testing.T) {
		svc := newMock(t)
		svc.SeedBranch("master", "", "initial")
		svc.SeedBranch("dev/feature", "master")
		require.NoError(t, svc.Checkout(ctx, "dev/feature"))

		err := reconcile.New(svc).PullParentUpdates(ctx, "master", "dev/feature")
		require.NoError(t, err)
		require.Equal(t, "!update-from: master", svc.TipMessage("dev/feature"))
	})

	t.Run("conflict is cleaned up and surfaced", func(t *testing.T) {
		svc := newMock(t)
		svc.SeedBranch("master", "", "initial")
		svc.SeedBranch("dev/feature", "master", "fix bug")
		svc.CommitOn("master", "conflicting change")
		require.NoError(t, svc.Checkout(ctx, "dev/feature"))
		svc.ConflictOnSquash = true

		err := reconcile.New(svc).PullParentUpdates(ctx, "master", "dev/feature")
		require.ErrorIs(t, err, devprerrors.ErrMergeConflict)
		require.Contains(t, svc.Mutations, "DiscardAllChanges")
		require.NotContains(t, svc.Mutations, "Commit")
	})
}
