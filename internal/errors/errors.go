// Package errors provides sentinel errors and custom error types for the devpr application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrNotOnBranch indicates that HEAD is not on a branch
	ErrNotOnBranch = errors.New("not on a branch")

	// ErrBranchNotFound indicates that a branch does not exist
	ErrBranchNotFound = errors.New("branch not found")

	// ErrNamingMismatch indicates that a branch name lacks the required prefix
	ErrNamingMismatch = errors.New("branch naming mismatch")

	// ErrTooManyForeignCommits indicates that a pull-request branch has drifted
	// beyond the single squashed commit this tool maintains
	ErrTooManyForeignCommits = errors.New("too many foreign commits")

	// ErrMergeConflict indicates that a squash merge produced conflicting content
	ErrMergeConflict = errors.New("merge conflict")

	// ErrNoChanges is the recognized no-op outcome: the squash produced nothing
	// worth committing. It is a short-circuit, not a failure.
	ErrNoChanges = errors.New("no changes")
)

// BranchNotFoundError represents an error when a branch is not found
type BranchNotFoundError struct {
	BranchName string
}

func (e *BranchNotFoundError) Error() string {
	return fmt.Sprintf("branch %s does not exist", e.BranchName)
}

// Is returns true if the target error is ErrBranchNotFound
func (e *BranchNotFoundError) Is(target error) bool {
	return target == ErrBranchNotFound
}

// NewBranchNotFoundError creates a new BranchNotFoundError
func NewBranchNotFoundError(branchName string) *BranchNotFoundError {
	return &BranchNotFoundError{BranchName: branchName}
}

// NamingMismatchError represents an error when a branch name does not carry
// the prefix a command requires to infer its target
type NamingMismatchError struct {
	BranchName string
	Prefix     string
}

func (e *NamingMismatchError) Error() string {
	return fmt.Sprintf("branch %s does not have the %s prefix", e.BranchName, e.Prefix)
}

// Is returns true if the target error is ErrNamingMismatch
func (e *NamingMismatchError) Is(target error) bool {
	return target == ErrNamingMismatch
}

// NewNamingMismatchError creates a new NamingMismatchError
func NewNamingMismatchError(branchName, prefix string) *NamingMismatchError {
	return &NamingMismatchError{BranchName: branchName, Prefix: prefix}
}

// TooManyForeignCommitsError represents an error when a pull-request branch is
// more than one commit ahead of its parent. The extra commits were not made by
// this tool and must not be destroyed by a hard reset.
type TooManyForeignCommitsError struct {
	BranchName   string
	ParentBranch string
	AheadCount   int
}

func (e *TooManyForeignCommitsError) Error() string {
	return fmt.Sprintf("branch %s is %d commits ahead of %s, expected at most 1; inspect or delete it manually",
		e.BranchName, e.AheadCount, e.ParentBranch)
}

// Is returns true if the target error is ErrTooManyForeignCommits
func (e *TooManyForeignCommitsError) Is(target error) bool {
	return target == ErrTooManyForeignCommits
}

// NewTooManyForeignCommitsError creates a new TooManyForeignCommitsError
func NewTooManyForeignCommitsError(branchName, parentBranch string, aheadCount int) *TooManyForeignCommitsError {
	return &TooManyForeignCommitsError{
		BranchName:   branchName,
		ParentBranch: parentBranch,
		AheadCount:   aheadCount,
	}
}

// MergeConflictError represents an error when a squash merge encounters a conflict
type MergeConflictError struct {
	SourceBranch string
	TargetBranch string
	Message      string
}

func (e *MergeConflictError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("conflict while merging %s into %s: %s", e.SourceBranch, e.TargetBranch, e.Message)
	}
	return fmt.Sprintf("conflict while merging %s into %s", e.SourceBranch, e.TargetBranch)
}

// Is returns true if the target error is ErrMergeConflict
func (e *MergeConflictError) Is(target error) bool {
	return target == ErrMergeConflict
}

// NewMergeConflictError creates a new MergeConflictError
func NewMergeConflictError(sourceBranch, targetBranch, message string) *MergeConflictError {
	return &MergeConflictError{
		SourceBranch: sourceBranch,
		TargetBranch: targetBranch,
		Message:      message,
	}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
