package git

import (
	"context"
	"fmt"
	"path/filepath"
)

// Service defines the version-control operations the workflow depends on.
// This is the only boundary the reconciliation core sees, which allows it to
// be exercised against both real git and mock implementations.
type Service interface {
	// RepoRoot returns the root directory of the working tree
	RepoRoot() string

	// MessageBufferPath returns the path of the squash-message buffer file
	// under the repository metadata directory
	MessageBufferPath() string

	// CurrentBranch returns the checked-out branch, or ErrNotOnBranch when
	// HEAD is detached
	CurrentBranch() (string, error)

	// BranchExists reports whether a local branch exists (non-destructive)
	BranchExists(name string) (bool, error)

	// Checkout checks out an existing branch
	Checkout(ctx context.Context, branch string) error

	// CreateBranch creates and checks out a new branch from the current HEAD
	CreateBranch(ctx context.Context, name string) error

	// ResetHard hard-resets the current branch to target
	ResetHard(ctx context.Context, target string) error

	// SquashMerge merges source into the current branch as staged, uncommitted
	// changes and returns the default squash message git generated. The error
	// matches ErrMergeConflict when the merge produced conflicts; the working
	// tree is left conflicted for the caller to deal with.
	SquashMerge(ctx context.Context, source string) (string, error)

	// DiscardAllChanges throws away all staged and working-tree changes.
	// Used only for best-effort conflict cleanup.
	DiscardAllChanges(ctx context.Context) error

	// Commit creates a commit per opts
	Commit(ctx context.Context, opts CommitOptions) error

	// CommitMessage returns the full commit message of a ref
	CommitMessage(ref string) (string, error)

	// MergeBase returns the common ancestor of two refs
	MergeBase(a, b string) (string, error)

	// AheadCounts returns how many commits a and b each are ahead of their
	// common ancestor
	AheadCounts(ctx context.Context, a, b string) (aAhead, bAhead int, err error)

	// CommitsBetween returns the SHAs reachable from tip but not base, newest
	// first, excluding commits whose message matches excludePattern (a git
	// line-anchored grep pattern; empty means no exclusion)
	CommitsBetween(ctx context.Context, base, tip, excludePattern string) ([]string, error)
}

// realService implements Service against an on-disk repository
type realService struct {
	repo   *Repository
	runner *CommandRunner
	gitDir string
}

// NewService opens the repository containing dir and returns a Service for it
func NewService(dir string) (Service, error) {
	repo, err := OpenRepository(dir)
	if err != nil {
		return nil, err
	}

	runner := NewCommandRunner(repo.Root())

	gitDir, err := runner.Run(context.Background(), "rev-parse", "--absolute-git-dir")
	if err != nil {
		return nil, fmt.Errorf("failed to locate git dir: %w", err)
	}

	return &realService{
		repo:   repo,
		runner: runner,
		gitDir: gitDir,
	}, nil
}

func (s *realService) RepoRoot() string {
	return s.repo.Root()
}

func (s *realService) MessageBufferPath() string {
	return filepath.Join(s.gitDir, squashMessageFile)
}

func (s *realService) CurrentBranch() (string, error) {
	return s.repo.CurrentBranch()
}

func (s *realService) BranchExists(name string) (bool, error) {
	return s.repo.BranchExists(name)
}

func (s *realService) CommitMessage(ref string) (string, error) {
	return s.repo.CommitMessage(ref)
}

func (s *realService) MergeBase(a, b string) (string, error) {
	return s.repo.MergeBase(a, b)
}
