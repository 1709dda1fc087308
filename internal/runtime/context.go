// Package runtime provides a context type that holds the version-control
// service and logger for use throughout the application. This avoids passing
// multiple parameters through every command.
package runtime

import (
	"fmt"
	"os"

	"devpr.dev/devpr/internal/git"
	"devpr.dev/devpr/internal/output"
)

// Context provides access to the version-control service and output for commands
type Context struct {
	Service  git.Service
	Splog    *output.Splog
	RepoRoot string
}

// NewContext creates a context around an existing service
func NewContext(svc git.Service) *Context {
	return &Context{
		Service:  svc,
		Splog:    output.NewSplog(),
		RepoRoot: svc.RepoRoot(),
	}
}

// GetContext opens the repository containing the working directory and wires
// up the real service
func GetContext() (*Context, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	svc, err := git.NewService(wd)
	if err != nil {
		return nil, err
	}

	return NewContext(svc), nil
}
