package reconcile

import (
	"context"
	"errors"

	"devpr.dev/devpr/internal/branchname"
	devprerrors "devpr.dev/devpr/internal/errors"
	"devpr.dev/devpr/internal/git"
)

// ConflictPolicy controls what happens to the working tree when a squash
// merge conflicts
type ConflictPolicy int

const (
	// LeaveConflicts keeps the conflicted working tree for the operator to
	// resolve. Used on the sync path, where conflicts carry real content.
	LeaveConflicts ConflictPolicy = iota

	// DiscardOnConflict throws away all changes best-effort. Used on paths
	// that are not expected to hit real conflicts and should not leave a
	// dirty tree behind.
	DiscardOnConflict
)

// Reconciler prepares pull-request branches from development branches
type Reconciler struct {
	svc git.Service
}

// New creates a Reconciler on top of a version-control service
func New(svc git.Service) *Reconciler {
	return &Reconciler{svc: svc}
}

// PreparePrBranch leaves prBranch checked out at the tip of parentBranch and
// returns the commit message carried over from the branch's previous tip, if
// there was exactly one commit to carry it from.
//
// A pull-request branch managed by this tool is never more than one commit
// ahead of its parent. Anything beyond that was not made by us, so the
// preparation refuses to touch the branch at all.
func (r *Reconciler) PreparePrBranch(ctx context.Context, prBranch, parentBranch string) (string, error) {
	exists, err := r.svc.BranchExists(prBranch)
	if err != nil {
		return "", err
	}

	if !exists {
		if err := r.svc.Checkout(ctx, parentBranch); err != nil {
			return "", err
		}
		if err := r.svc.CreateBranch(ctx, prBranch); err != nil {
			return "", err
		}
		return "", nil
	}

	ahead, _, err := r.svc.AheadCounts(ctx, prBranch, parentBranch)
	if err != nil {
		return "", err
	}
	if ahead > 1 {
		return "", devprerrors.NewTooManyForeignCommitsError(prBranch, parentBranch, ahead)
	}

	carried := ""
	if ahead == 1 {
		// Capture the message before the reset discards the commit
		carried, err = r.svc.CommitMessage(prBranch)
		if err != nil {
			return "", err
		}
	}

	if err := r.svc.Checkout(ctx, prBranch); err != nil {
		return "", err
	}
	if err := r.svc.ResetHard(ctx, parentBranch); err != nil {
		return "", err
	}

	return carried, nil
}

// InferMessage derives a commit message from the development branch: when
// exactly one non-trivial commit exists since the branch diverged from its
// parent, that commit's message is the obvious candidate. Marker commits
// recording updates pulled from the parent are not counted. Zero or several
// candidates means the answer is ambiguous and the empty string is returned.
func (r *Reconciler) InferMessage(ctx context.Context, devBranch, parentBranch string) (string, error) {
	base, err := r.svc.MergeBase(devBranch, parentBranch)
	if err != nil {
		return "", err
	}

	shas, err := r.svc.CommitsBetween(ctx, base, devBranch, branchname.UpdateFromPattern)
	if err != nil {
		return "", err
	}
	if len(shas) != 1 {
		return "", nil
	}

	return r.svc.CommitMessage(shas[0])
}

// SquashAndCommit squash-merges devBranch onto the currently checked-out
// branch and commits the result.
//
// Returns ErrNoChanges when the squash was a no-op; this is checked before
// any carried message is applied, so message reuse is deliberately skipped on
// no-op syncs. When carried is non-empty, the squash-message buffer is
// rewritten to lead with it, the generated default message kept below as
// comments. The commit allows an empty diff: a squash can produce
// message-worthy content with no file changes, which must not be dropped
// silently.
func (r *Reconciler) SquashAndCommit(ctx context.Context, devBranch, parentBranch, carried string, policy ConflictPolicy) error {
	defaultMessage, err := r.squash(ctx, devBranch, parentBranch, policy)
	if err != nil {
		return err
	}

	if countLines(defaultMessage) <= trivialMessageLines {
		return devprerrors.ErrNoChanges
	}

	if carried != "" {
		if err := rewriteMessageBuffer(r.svc.MessageBufferPath(), carried); err != nil {
			return err
		}
	}

	return r.svc.Commit(ctx, git.CommitOptions{FromBuffer: true, AllowEmpty: true})
}

// PullParentUpdates squash-merges parentBranch into the currently checked-out
// development branch and records the result as a marker commit, which both
// excludes it from message inference and lets tooling find the most recent
// update point. Conflicts are not expected on this path, so the tree is
// cleaned up rather than left dirty.
func (r *Reconciler) PullParentUpdates(ctx context.Context, parentBranch, devBranch string) error {
	if _, err := r.squash(ctx, parentBranch, devBranch, DiscardOnConflict); err != nil {
		return err
	}

	return r.svc.Commit(ctx, git.CommitOptions{
		Message:    branchname.UpdateFromMessage(parentBranch),
		AllowEmpty: true,
	})
}

// squash runs the squash merge of source onto the current branch, mapping a
// conflict to a MergeConflictError against conflictTarget per policy
func (r *Reconciler) squash(ctx context.Context, source, conflictTarget string, policy ConflictPolicy) (string, error) {
	defaultMessage, err := r.svc.SquashMerge(ctx, source)
	if err != nil {
		if errors.Is(err, devprerrors.ErrMergeConflict) {
			if policy == DiscardOnConflict {
				// Best effort: the conflict is surfaced either way
				_ = r.svc.DiscardAllChanges(ctx)
			}
			return "", devprerrors.NewMergeConflictError(source, conflictTarget, "")
		}
		return "", err
	}
	return defaultMessage, nil
}
