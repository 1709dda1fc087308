package git

import (
	"context"
	"fmt"
)

// Checkout checks out an existing branch
func (s *realService) Checkout(ctx context.Context, branch string) error {
	_, err := s.runner.Run(ctx, "checkout", branch)
	if err != nil {
		return fmt.Errorf("failed to checkout branch %s: %w", branch, err)
	}
	return nil
}

// CreateBranch creates and checks out a new branch from the current HEAD
func (s *realService) CreateBranch(ctx context.Context, name string) error {
	_, err := s.runner.Run(ctx, "checkout", "-b", name)
	if err != nil {
		return fmt.Errorf("failed to create branch %s: %w", name, err)
	}
	return nil
}

// ResetHard hard-resets the current branch to target
func (s *realService) ResetHard(ctx context.Context, target string) error {
	_, err := s.runner.Run(ctx, "reset", "--hard", target)
	if err != nil {
		return fmt.Errorf("failed to hard reset to %s: %w", target, err)
	}
	return nil
}

// DiscardAllChanges throws away all staged and working-tree changes
func (s *realService) DiscardAllChanges(ctx context.Context) error {
	_, err := s.runner.Run(ctx, "reset", "--hard", "HEAD")
	if err != nil {
		return fmt.Errorf("failed to discard changes: %w", err)
	}
	return nil
}
