package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	devprerrors "devpr.dev/devpr/internal/errors"
)

// squashMessageFile is the buffer git writes the default squash message to,
// relative to the git dir
const squashMessageFile = "SQUASH_MSG"

// SquashMerge merges source into the current branch as staged changes and
// returns the default squash message. The previous buffer is removed first so
// a no-op merge is observed as an empty message rather than a stale one.
func (s *realService) SquashMerge(ctx context.Context, source string) (string, error) {
	if err := os.Remove(s.MessageBufferPath()); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to clear squash message buffer: %w", err)
	}

	_, err := s.runner.Run(ctx, "merge", "--squash", source)
	if err != nil {
		if isMergeConflict(err) {
			return "", fmt.Errorf("squash merge of %s: %w", source, devprerrors.ErrMergeConflict)
		}
		return "", fmt.Errorf("failed to squash merge %s: %w", source, err)
	}

	message, err := os.ReadFile(s.MessageBufferPath())
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read squash message buffer: %w", err)
	}
	return string(message), nil
}

// isMergeConflict inspects a failed merge command for conflict markers in its
// output, as opposed to plain command failure
func isMergeConflict(err error) bool {
	var cmdErr *devprerrors.GitCommandError
	if !errors.As(err, &cmdErr) {
		return false
	}
	output := cmdErr.Stdout + cmdErr.Stderr
	return strings.Contains(output, "CONFLICT") ||
		strings.Contains(output, "Automatic merge failed")
}
