package git

import (
	"context"
	"fmt"
)

// CommitOptions contains options for creating a commit
type CommitOptions struct {
	// Message is the commit message. Ignored when FromBuffer is set.
	Message string

	// FromBuffer commits with the squash-message buffer as the message,
	// stripping #-commented lines the way an editor-based commit would
	FromBuffer bool

	// AllowEmpty permits a commit with no staged changes
	AllowEmpty bool
}

// Commit creates a commit per opts
func (s *realService) Commit(ctx context.Context, opts CommitOptions) error {
	args := []string{"commit"}

	if opts.AllowEmpty {
		args = append(args, "--allow-empty")
	}

	if opts.FromBuffer {
		args = append(args, "--file", s.MessageBufferPath(), "--cleanup=strip")
	} else {
		args = append(args, "-m", opts.Message)
	}

	if _, err := s.runner.Run(ctx, args...); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
