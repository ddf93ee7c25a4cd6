package git

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/masmgr/gittree-go/internal/explore"
)

// Discoverer finds the interesting commits of a repository: HEAD, the
// local branch tips, and optionally the matching remote branch and
// upstream tips.
type Discoverer struct {
	repo *gogit.Repository
	opts DiscoverOptions
}

// NewDiscoverer opens the repository at opts.RepoPath.
func NewDiscoverer(opts DiscoverOptions) (*Discoverer, error) {
	repo, err := gogit.PlainOpen(opts.RepoPath)
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", opts.RepoPath, err)
	}
	return &Discoverer{repo: repo, opts: opts}, nil
}

// Tips returns the interesting commit ids, deduplicated and sorted.
//
// HEAD is always interesting. Local branches pass through the name
// filters. A remote branch is interesting when a local branch of the same
// short name exists (the pair may have diverged and both sides belong in
// the graph). Upstream refs cover the rebase-in-flight case where the
// tracking ref no longer matches any remote branch name.
func (d *Discoverer) Tips() ([]plumbing.Hash, error) {
	tips := make(map[plumbing.Hash]bool)

	head, err := d.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}
	tips[head.Hash()] = true

	localNames := make(map[string]bool)

	branches, err := d.repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	err = branches.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if !d.opts.matchesFilters(name) {
			return nil
		}
		localNames[name] = true
		tips[ref.Hash()] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk branches: %w", err)
	}

	if d.opts.IncludeRemotes {
		refs, err := d.repo.References()
		if err != nil {
			return nil, fmt.Errorf("list references: %w", err)
		}
		err = refs.ForEach(func(ref *plumbing.Reference) error {
			if !ref.Name().IsRemote() || ref.Type() != plumbing.HashReference {
				return nil
			}
			// Short() yields "<remote>/<branch>"; only the branch part is
			// matched against local names.
			_, base, ok := strings.Cut(ref.Name().Short(), "/")
			if !ok || !localNames[base] {
				return nil
			}
			tips[ref.Hash()] = true
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk references: %w", err)
		}
	}

	if d.opts.IncludeUpstreams {
		cfg, err := d.repo.Config()
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		for name, branch := range cfg.Branches {
			if !localNames[name] || branch.Remote == "" || branch.Merge == "" {
				continue
			}
			upstream := plumbing.NewRemoteReferenceName(branch.Remote, branch.Merge.Short())
			ref, err := d.repo.Reference(upstream, true)
			if err != nil {
				// The tracking ref may not have been fetched yet.
				continue
			}
			tips[ref.Hash()] = true
		}
	}

	out := make([]plumbing.Hash, 0, len(tips))
	for id := range tips {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i][:], out[j][:]) < 0
	})
	return out, nil
}

// TipCommits resolves the discovered tips into full commit records for the
// fixpoint exploration strategy.
func (d *Discoverer) TipCommits() ([]explore.Commit, error) {
	tips, err := d.Tips()
	if err != nil {
		return nil, err
	}
	lookup := d.CommitLookup()
	out := make([]explore.Commit, 0, len(tips))
	for _, id := range tips {
		c, err := lookup(id)
		if err != nil {
			return nil, fmt.Errorf("resolve tip %s: %w", id, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// CommitLookup returns a lazy commit resolver backed by the repository's
// object database.
func (d *Discoverer) CommitLookup() explore.Lookup {
	return func(id plumbing.Hash) (explore.Commit, error) {
		c, err := d.repo.CommitObject(id)
		if err != nil {
			return explore.Commit{}, err
		}
		out := explore.Commit{ID: c.Hash, When: c.Committer.When}
		out.Parents = append(out.Parents, c.ParentHashes...)
		return out, nil
	}
}
