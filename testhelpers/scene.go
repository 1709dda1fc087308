package testhelpers

import (
	"os/exec"
	"testing"
)

// Scene is a test scene with a temporary git repository holding one initial
// commit on master
type Scene struct {
	Dir  string
	Repo *GitRepo
}

// RequireGit skips the test when no git binary is available
func RequireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

// NewScene creates a scene in a temp directory cleaned up with the test
func NewScene(t *testing.T) *Scene {
	t.Helper()
	RequireGit(t)

	dir := t.TempDir()
	repo, err := NewGitRepo(dir)
	if err != nil {
		t.Fatalf("failed to create git repo: %v", err)
	}

	if err := repo.CommitChange("README.md", "initial\n", "initial commit"); err != nil {
		t.Fatalf("failed to create initial commit: %v", err)
	}

	return &Scene{Dir: dir, Repo: repo}
}
