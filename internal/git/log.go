package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// AheadCounts returns how many commits a and b each are ahead of their common
// ancestor, computed from the symmetric difference a...b
func (s *realService) AheadCounts(ctx context.Context, a, b string) (int, int, error) {
	output, err := s.runner.Run(ctx, "rev-list", "--left-right", "--count", a+"..."+b)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count commits between %s and %s: %w", a, b, err)
	}

	fields := strings.Fields(output)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("unexpected rev-list output %q", output)
	}

	aAhead, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("unexpected rev-list output %q", output)
	}
	bAhead, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("unexpected rev-list output %q", output)
	}

	return aAhead, bAhead, nil
}

// CommitsBetween returns the SHAs reachable from tip but not base, newest
// first. Commits with a message line matching excludePattern are filtered out.
func (s *realService) CommitsBetween(ctx context.Context, base, tip, excludePattern string) ([]string, error) {
	args := []string{"log", "--format=%H"}
	if excludePattern != "" {
		args = append(args, "--invert-grep", "--grep="+excludePattern)
	}
	args = append(args, base+".."+tip)

	shas, err := s.runner.RunLines(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list commits %s..%s: %w", base, tip, err)
	}
	return shas, nil
}
