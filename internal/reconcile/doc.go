// Package reconcile implements the branch-state reconciliation at the heart
// of the devpr workflow: preparing a pull-request branch at the tip of its
// parent, recovering or inferring a reusable commit message, and squashing
// the development branch's diff into a single commit.
//
// All decisions are made between calls to the git.Service boundary; the
// package holds no state of its own beyond the service handle.
package reconcile
