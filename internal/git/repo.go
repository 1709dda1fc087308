package git

import (
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	devprerrors "devpr.dev/devpr/internal/errors"
)

// Repository wraps a go-git repository for read-only queries
type Repository struct {
	*gogit.Repository
	path string
}

// OpenRepository opens the git repository containing dir
func OpenRepository(dir string) (*Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	return &Repository{
		Repository: repo,
		path:       worktree.Filesystem.Root(),
	}, nil
}

// Root returns the root directory of the repository's working tree
func (r *Repository) Root() string {
	return r.path
}

// CurrentBranch returns the current branch name.
// Returns ErrNotOnBranch when HEAD is detached.
func (r *Repository) CurrentBranch() (string, error) {
	head, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}

	if !head.Name().IsBranch() {
		return "", devprerrors.ErrNotOnBranch
	}

	return head.Name().Short(), nil
}

// BranchExists reports whether a local branch with the given name exists
func (r *Repository) BranchExists(name string) (bool, error) {
	_, err := r.Reference(plumbing.NewBranchReferenceName(name), true)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up branch %s: %w", name, err)
	}
	return true, nil
}

// MergeBase returns the common ancestor of two refs as a commit SHA
func (r *Repository) MergeBase(ref1, ref2 string) (string, error) {
	commit1, err := r.commitForRef(ref1)
	if err != nil {
		return "", err
	}
	commit2, err := r.commitForRef(ref2)
	if err != nil {
		return "", err
	}

	mergeBases, err := commit1.MergeBase(commit2)
	if err != nil {
		return "", fmt.Errorf("failed to find merge base of %s and %s: %w", ref1, ref2, err)
	}
	if len(mergeBases) == 0 {
		return "", fmt.Errorf("no merge base between %s and %s", ref1, ref2)
	}

	return mergeBases[0].Hash.String(), nil
}

// CommitMessage returns the full commit message of a ref
func (r *Repository) CommitMessage(ref string) (string, error) {
	commit, err := r.commitForRef(ref)
	if err != nil {
		return "", err
	}
	return commit.Message, nil
}

func (r *Repository) commitForRef(ref string) (*object.Commit, error) {
	hash, err := r.resolveRefHash(ref)
	if err != nil {
		return nil, err
	}

	commit, err := r.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("failed to get commit %s: %w", hash, err)
	}
	return commit, nil
}

// resolveRefHash resolves a ref (branch name, full ref, SHA or revision
// expression) to a commit hash
func (r *Repository) resolveRefHash(ref string) (plumbing.Hash, error) {
	// Try as a full reference name
	if resolved, err := r.Reference(plumbing.ReferenceName(ref), true); err == nil {
		return resolved.Hash(), nil
	}

	// Try as a local branch
	if resolved, err := r.Reference(plumbing.NewBranchReferenceName(ref), true); err == nil {
		return resolved.Hash(), nil
	}

	// Fall back to ResolveRevision (handles SHAs and expressions like HEAD~1)
	hash, err := r.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to resolve ref %s: %w", ref, err)
	}
	return *hash, nil
}
