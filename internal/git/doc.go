// Package git provides a wrapper around git commands and go-git for
// repository operations. Mutating operations (checkout, merge, reset, commit)
// shell out to the git binary through CommandRunner; read-only queries go
// through go-git where possible.
//
// The Service interface is the boundary the reconciliation core depends on.
// The repository's checkout, index and working tree are a single exclusive
// resource: nothing here is safe to run concurrently with another instance of
// the workflow against the same repository.
package git
