// Package actions implements the devpr workflow commands on top of the
// reconciliation core: creating development branches, syncing pull-request
// branches and pulling parent updates.
package actions
