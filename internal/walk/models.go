package walk

import (
	"github.com/go-git/go-git/v5/plumbing"
)

// EdgeRecord is one entry of the reverse-topological commit stream: a
// commit id followed by the ids of its parents, in parent order.
type EdgeRecord struct {
	ID      plumbing.Hash
	Parents []plumbing.Hash
}

// EdgeSource produces edge records one at a time, in reverse topological
// order: every parent id in a record has either already appeared as the id
// of an earlier record, or belongs to the seeded base set.
type EdgeSource interface {
	// Next returns the next record, or io.EOF once the stream is cleanly
	// exhausted. Any other error is fatal to the whole computation.
	Next() (EdgeRecord, error)

	// Close releases the underlying stream. For process-backed sources it
	// reaps the child process and surfaces an abnormal exit.
	Close() error
}

// Boundary is the minimal include/exclude description of the visible
// window. Includes are the frontier-visible tips to start traversal from;
// Excludes are the invisible boundary commits whose ancestry (inclusive)
// must be cut off. Both slices are sorted by hash for deterministic output.
type Boundary struct {
	Includes []plumbing.Hash
	Excludes []plumbing.Hash
}
