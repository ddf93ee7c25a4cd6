package git

import (
	"context"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/masmgr/gittree-go/internal/walk"
)

// TipSource discovers the interesting commits: the frontier the history
// graph is displayed for.
type TipSource interface {
	Tips() ([]plumbing.Hash, error)
}

// BaseSource resolves the common ancestors that bound the display window
// from below.
type BaseSource interface {
	MergeBases(ctx context.Context, tips []plumbing.Hash) ([]plumbing.Hash, error)
}

// Compile-time interface conformance checks.
var (
	_ TipSource       = (*Discoverer)(nil)
	_ BaseSource      = (*OctopusResolver)(nil)
	_ walk.EdgeSource = (*RevListSource)(nil)
)
