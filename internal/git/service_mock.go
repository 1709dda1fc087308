package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	devprerrors "devpr.dev/devpr/internal/errors"
)

// MockCommit is a commit in a MockService branch history
type MockCommit struct {
	SHA     string
	Message string
}

// MockService is an in-memory implementation of Service for testing. Branch
// histories are linear commit lists sharing prefixes; merge bases and ahead
// counts fall out of the shared prefix. Squash merges are simulated: the
// default squash message is generated from the source commits the target does
// not have, matching the shape git writes to its squash buffer.
type MockService struct {
	// Branches maps branch name to its history, oldest first
	Branches map[string][]MockCommit

	// Current is the checked-out branch
	Current string

	// Detached makes CurrentBranch fail with ErrNotOnBranch
	Detached bool

	// ConflictOnSquash makes SquashMerge fail as a conflict
	ConflictOnSquash bool

	// Calls records every operation invoked, in order
	Calls []string

	// Mutations records only the operations that change repository state
	Mutations []string

	dir     string
	nextSHA int
	staged  bool
}

var _ Service = (*MockService)(nil)

// NewMockService creates a MockService whose message buffer lives under dir
func NewMockService(dir string) *MockService {
	return &MockService{
		Branches: make(map[string][]MockCommit),
		dir:      dir,
	}
}

// SeedBranch creates a branch whose history is base's history plus one commit
// per message. With an empty base the history starts from scratch.
func (m *MockService) SeedBranch(name, base string, messages ...string) *MockService {
	var history []MockCommit
	if base != "" {
		history = append(history, m.Branches[base]...)
	}
	for _, msg := range messages {
		history = append(history, MockCommit{SHA: m.newSHA(), Message: msg})
	}
	m.Branches[name] = history
	if m.Current == "" {
		m.Current = name
	}
	return m
}

// CommitOn appends a commit to a branch without going through Commit
func (m *MockService) CommitOn(name, message string) *MockService {
	m.Branches[name] = append(m.Branches[name], MockCommit{SHA: m.newSHA(), Message: message})
	return m
}

func (m *MockService) newSHA() string {
	m.nextSHA++
	return fmt.Sprintf("sha%04d", m.nextSHA)
}

func (m *MockService) record(call string) {
	m.Calls = append(m.Calls, call)
}

func (m *MockService) mutate(call string) {
	m.record(call)
	m.Mutations = append(m.Mutations, call)
}

func (m *MockService) RepoRoot() string {
	return m.dir
}

func (m *MockService) MessageBufferPath() string {
	return filepath.Join(m.dir, "SQUASH_MSG")
}

func (m *MockService) CurrentBranch() (string, error) {
	m.record("CurrentBranch")
	if m.Detached {
		return "", devprerrors.ErrNotOnBranch
	}
	return m.Current, nil
}

func (m *MockService) BranchExists(name string) (bool, error) {
	m.record("BranchExists " + name)
	_, ok := m.Branches[name]
	return ok, nil
}

func (m *MockService) Checkout(_ context.Context, branch string) error {
	m.mutate("Checkout " + branch)
	if _, ok := m.Branches[branch]; !ok {
		return devprerrors.NewBranchNotFoundError(branch)
	}
	m.Current = branch
	return nil
}

func (m *MockService) CreateBranch(_ context.Context, name string) error {
	m.mutate("CreateBranch " + name)
	if _, ok := m.Branches[name]; ok {
		return fmt.Errorf("branch %s already exists", name)
	}
	m.Branches[name] = append([]MockCommit(nil), m.Branches[m.Current]...)
	m.Current = name
	return nil
}

func (m *MockService) ResetHard(_ context.Context, target string) error {
	m.mutate("ResetHard " + target)
	history, ok := m.Branches[target]
	if !ok {
		return devprerrors.NewBranchNotFoundError(target)
	}
	m.Branches[m.Current] = append([]MockCommit(nil), history...)
	m.staged = false
	return nil
}

func (m *MockService) SquashMerge(_ context.Context, source string) (string, error) {
	m.mutate("SquashMerge " + source)

	if err := os.Remove(m.MessageBufferPath()); err != nil && !os.IsNotExist(err) {
		return "", err
	}

	if m.ConflictOnSquash {
		return "", fmt.Errorf("squash merge of %s: %w", source, devprerrors.ErrMergeConflict)
	}

	sourceHistory, ok := m.Branches[source]
	if !ok {
		return "", devprerrors.NewBranchNotFoundError(source)
	}

	common := commonPrefixLen(m.Branches[m.Current], sourceHistory)
	incoming := sourceHistory[common:]
	if len(incoming) == 0 {
		return "", nil
	}

	var b strings.Builder
	b.WriteString("Squashed commit of the following:\n")
	for i := len(incoming) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "\ncommit %s\n\n    %s\n", incoming[i].SHA, incoming[i].Message)
	}
	message := b.String()

	if err := os.WriteFile(m.MessageBufferPath(), []byte(message), 0o644); err != nil {
		return "", err
	}

	m.staged = true
	return message, nil
}

func (m *MockService) DiscardAllChanges(_ context.Context) error {
	m.mutate("DiscardAllChanges")
	m.staged = false
	return nil
}

func (m *MockService) Commit(_ context.Context, opts CommitOptions) error {
	m.mutate("Commit")

	if !m.staged && !opts.AllowEmpty {
		return fmt.Errorf("nothing to commit")
	}

	message := opts.Message
	if opts.FromBuffer {
		data, err := os.ReadFile(m.MessageBufferPath())
		if err != nil {
			return err
		}
		message = stripComments(string(data))
	}

	m.Branches[m.Current] = append(m.Branches[m.Current], MockCommit{
		SHA:     m.newSHA(),
		Message: message,
	})
	m.staged = false
	return nil
}

func (m *MockService) CommitMessage(ref string) (string, error) {
	m.record("CommitMessage " + ref)

	if history, ok := m.Branches[ref]; ok {
		if len(history) == 0 {
			return "", fmt.Errorf("branch %s has no commits", ref)
		}
		return history[len(history)-1].Message, nil
	}

	for _, history := range m.Branches {
		for _, c := range history {
			if c.SHA == ref {
				return c.Message, nil
			}
		}
	}
	return "", fmt.Errorf("unknown ref %s", ref)
}

func (m *MockService) MergeBase(a, b string) (string, error) {
	m.record(fmt.Sprintf("MergeBase %s %s", a, b))

	historyA, ok := m.Branches[a]
	if !ok {
		return "", devprerrors.NewBranchNotFoundError(a)
	}
	historyB, ok := m.Branches[b]
	if !ok {
		return "", devprerrors.NewBranchNotFoundError(b)
	}

	common := commonPrefixLen(historyA, historyB)
	if common == 0 {
		return "", fmt.Errorf("no merge base between %s and %s", a, b)
	}
	return historyA[common-1].SHA, nil
}

func (m *MockService) AheadCounts(_ context.Context, a, b string) (int, int, error) {
	m.record(fmt.Sprintf("AheadCounts %s %s", a, b))

	historyA, ok := m.Branches[a]
	if !ok {
		return 0, 0, devprerrors.NewBranchNotFoundError(a)
	}
	historyB, ok := m.Branches[b]
	if !ok {
		return 0, 0, devprerrors.NewBranchNotFoundError(b)
	}

	common := commonPrefixLen(historyA, historyB)
	return len(historyA) - common, len(historyB) - common, nil
}

func (m *MockService) CommitsBetween(_ context.Context, base, tip, excludePattern string) ([]string, error) {
	m.record(fmt.Sprintf("CommitsBetween %s %s", base, tip))

	history, ok := m.Branches[tip]
	if !ok {
		return nil, devprerrors.NewBranchNotFoundError(tip)
	}

	start := 0
	for i, c := range history {
		if c.SHA == base {
			start = i + 1
			break
		}
	}

	var shas []string
	for i := len(history) - 1; i >= start; i-- {
		if excludePattern != "" && messageMatchesPattern(history[i].Message, excludePattern) {
			continue
		}
		shas = append(shas, history[i].SHA)
	}
	return shas, nil
}

// TipMessage returns the message of a branch's tip commit, for assertions
func (m *MockService) TipMessage(name string) string {
	history := m.Branches[name]
	if len(history) == 0 {
		return ""
	}
	return history[len(history)-1].Message
}

func commonPrefixLen(a, b []MockCommit) int {
	n := 0
	for n < len(a) && n < len(b) && a[n].SHA == b[n].SHA {
		n++
	}
	return n
}

// messageMatchesPattern mimics git log --grep line matching for the
// line-anchored patterns this tool uses
func messageMatchesPattern(message, pattern string) bool {
	prefix := strings.TrimPrefix(pattern, "^")
	for _, line := range strings.Split(message, "\n") {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func stripComments(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
