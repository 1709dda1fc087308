// Package testhelpers provides temporary git repository fixtures for
// integration tests.
package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// GitRepo represents a git repository created for a test
type GitRepo struct {
	Dir string
}

// NewGitRepo initializes a new git repository in dir with an isolated config
func NewGitRepo(dir string) (*GitRepo, error) {
	repo := &GitRepo{Dir: dir}

	// Use -c flags and an empty global config so host configuration cannot
	// leak into tests
	cmd := exec.Command("git",
		"-c", "init.defaultBranch=master",
		"-c", "core.autocrlf=false",
		"init", dir, "-b", "master")
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to init repo: %w", err)
	}

	if err := repo.RunGitCommand("config", "user.name", "Test User"); err != nil {
		return nil, err
	}
	if err := repo.RunGitCommand("config", "user.email", "test@example.com"); err != nil {
		return nil, err
	}
	if err := repo.RunGitCommand("config", "commit.gpgsign", "false"); err != nil {
		return nil, err
	}

	return repo, nil
}

// RunGitCommand executes a git command in the repository directory
func (r *GitRepo) RunGitCommand(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git %s failed: %w\n%s", strings.Join(args, " "), err, output)
	}
	return nil
}

// RunGitCommandAndGetOutput executes a git command and returns its trimmed output
func (r *GitRepo) RunGitCommandAndGetOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s failed: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(output)), nil
}

// WriteFile writes a file relative to the repository root
func (r *GitRepo) WriteFile(name, content string) error {
	path := filepath.Join(r.Dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

// CommitChange writes a file, stages it and commits it
func (r *GitRepo) CommitChange(name, content, message string) error {
	if err := r.WriteFile(name, content); err != nil {
		return err
	}
	if err := r.RunGitCommand("add", name); err != nil {
		return err
	}
	return r.RunGitCommand("commit", "-m", message)
}

// Checkout checks out a branch
func (r *GitRepo) Checkout(branch string) error {
	return r.RunGitCommand("checkout", branch)
}

// CreateBranch creates and checks out a branch from the current HEAD
func (r *GitRepo) CreateBranch(branch string) error {
	return r.RunGitCommand("checkout", "-b", branch)
}

// TipMessage returns the full message of a branch's tip commit
func (r *GitRepo) TipMessage(branch string) (string, error) {
	return r.RunGitCommandAndGetOutput("log", "-1", "--format=%B", branch)
}

// AheadCount returns how many commits branch is ahead of base
func (r *GitRepo) AheadCount(branch, base string) (int, error) {
	output, err := r.RunGitCommandAndGetOutput("rev-list", "--count", base+".."+branch)
	if err != nil {
		return 0, err
	}
	var count int
	if _, err := fmt.Sscanf(output, "%d", &count); err != nil {
		return 0, fmt.Errorf("unexpected rev-list output %q", output)
	}
	return count, nil
}
