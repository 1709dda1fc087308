package reconcile

import (
	"fmt"
	"os"
	"strings"
)

// trivialMessageLines is the line count at or below which a default squash
// message carries no per-commit content. An empty squash produces at most a
// header and surrounding blank lines.
const trivialMessageLines = 3

// countLines counts the lines of text; a trailing newline does not start a
// new line
func countLines(text string) int {
	if text == "" {
		return 0
	}
	return len(strings.Split(strings.TrimSuffix(text, "\n"), "\n"))
}

// rewriteMessageBuffer rewrites the squash-message buffer to lead with the
// carried message, a blank line, then every line of the previous content
// commented out (lines already commented pass through unchanged). The old
// content is read fully before the file is rewritten.
func rewriteMessageBuffer(path, carried string) error {
	previous, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read squash message buffer: %w", err)
	}

	var b strings.Builder
	b.WriteString(strings.TrimRight(carried, "\n"))
	b.WriteString("\n\n")
	for _, line := range strings.Split(strings.TrimSuffix(string(previous), "\n"), "\n") {
		if !strings.HasPrefix(line, "#") {
			b.WriteString("# ")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to rewrite squash message buffer: %w", err)
	}
	return nil
}
