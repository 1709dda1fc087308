// Package branchname derives and parses the branch naming conventions used by
// the devpr workflow.
package branchname

import "strings"

const (
	// DevelopmentPrefix is the namespace for long-lived development branches
	DevelopmentPrefix = "dev/"

	// PullRequestPrefix is the namespace for squashed pull-request branches
	PullRequestPrefix = "pr/"

	// UpdateFromMarker tags synthetic "pull updates from parent" commits.
	// Commits whose message starts with this marker on any line are excluded
	// from commit-message inference.
	UpdateFromMarker = "!update-from:"
)

// Development returns the development branch name for a base name
func Development(base string) string {
	return DevelopmentPrefix + base
}

// PullRequest returns the pull-request branch name for a base name
func PullRequest(base string) string {
	return PullRequestPrefix + base
}

// DevelopmentBase returns the base name of a development branch.
// The second return value is false when the branch does not carry the
// development prefix.
func DevelopmentBase(branch string) (string, bool) {
	base, ok := strings.CutPrefix(branch, DevelopmentPrefix)
	if !ok || base == "" {
		return "", false
	}
	return base, true
}

// UpdateFromMessage returns the marker commit message recorded when a
// development branch pulls updates from its parent
func UpdateFromMessage(parentBranch string) string {
	return UpdateFromMarker + " " + parentBranch
}

// UpdateFromPattern is the line-anchored regex used to exclude marker commits
// from log queries
const UpdateFromPattern = `^!update-from:`
