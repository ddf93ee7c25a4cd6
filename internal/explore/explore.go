// Package explore computes the same include/exclude boundary as the walk
// engine without requiring an ordered input stream. It lazily expands the
// history DAG newest-first and re-runs a monotone update rule over a
// mutable node graph until it converges.
//
// The streaming engine in internal/walk supersedes this strategy whenever
// reverse-topological ordering is available: the fixpoint recomputation
// here is strictly more expensive. It is kept for speculative or partial
// exploration, where no such ordering can be guaranteed, and it discovers
// the common ancestors of the tips itself instead of taking a base set.
package explore

import (
	"bytes"
	"container/heap"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/masmgr/gittree-go/internal/walk"
)

// Commit is one history node with its parent ids and commit time. The
// commit time orders exploration: newer commits are expanded first, so the
// walk descends toward the common ancestors roughly level by level.
type Commit struct {
	ID      plumbing.Hash
	Parents []plumbing.Hash
	When    time.Time
}

// Lookup resolves a commit id to its full record. It is called lazily, at
// most once per id, as exploration reaches new parents.
type Lookup func(plumbing.Hash) (Commit, error)

// ErrQueueDrained reports that exploration still wanted to expand nodes
// but had nothing left to expand. This indicates a truncated or
// inconsistent history graph.
var ErrQueueDrained = errors.New("exploration queue ran dry")

// node carries the monotone per-commit properties the update rule refines.
type node struct {
	id            plumbing.Hash
	when          time.Time
	interesting   bool
	visible       bool
	exclude       bool
	fullyExplored bool

	// reachableFrom holds the tips that reach this node. A node reached by
	// every tip whose children are each missing at least one tip is the
	// common-ancestor frontier, and seeds visibility.
	reachableFrom map[plumbing.Hash]bool
}

// syncer keeps the explored subgraph and propagates property changes to
// neighbors until a fixpoint.
type syncer struct {
	numTips  int
	children map[plumbing.Hash][]plumbing.Hash
	parents  map[plumbing.Hash][]plumbing.Hash
	nodes    map[plumbing.Hash]*node
}

func newSyncer(numTips int) *syncer {
	return &syncer{
		numTips:  numTips,
		children: make(map[plumbing.Hash][]plumbing.Hash),
		parents:  make(map[plumbing.Hash][]plumbing.Hash),
		nodes:    make(map[plumbing.Hash]*node),
	}
}

// add registers a node and re-runs the update rule over it and its
// neighborhood until nothing changes.
func (s *syncer) add(n *node, parents []plumbing.Hash) {
	for _, p := range parents {
		s.children[p] = append(s.children[p], n.id)
	}
	s.parents[n.id] = parents
	s.nodes[n.id] = n

	work := map[plumbing.Hash]bool{n.id: true}
	for _, c := range s.children[n.id] {
		work[c] = true
	}
	for _, p := range parents {
		if _, ok := s.nodes[p]; ok {
			work[p] = true
		}
	}

	for len(work) > 0 {
		var id plumbing.Hash
		for k := range work {
			id = k
			break
		}
		delete(work, id)
		if !s.update(id) {
			continue
		}
		for _, c := range s.children[id] {
			if _, ok := s.nodes[c]; ok {
				work[c] = true
			}
		}
		for _, p := range s.parents[id] {
			if _, ok := s.nodes[p]; ok {
				work[p] = true
			}
		}
	}
}

// update recomputes one node's properties from its neighbors and reports
// whether anything changed. All properties grow monotonically, so the
// enclosing worklist iteration terminates.
func (s *syncer) update(id plumbing.Hash) bool {
	n, ok := s.nodes[id]
	if !ok {
		return false
	}

	reach := make(map[plumbing.Hash]bool, len(n.reachableFrom))
	for t := range n.reachableFrom {
		reach[t] = true
	}
	childVisible := false
	allChildrenPartial := true
	for _, cid := range s.children[id] {
		c, ok := s.nodes[cid]
		if !ok {
			continue
		}
		for t := range c.reachableFrom {
			reach[t] = true
		}
		if c.visible {
			childVisible = true
		}
		if len(c.reachableFrom) >= s.numTips {
			allChildrenPartial = false
		}
	}

	known := 0
	parentVisible := false
	for _, pid := range s.parents[id] {
		if p, ok := s.nodes[pid]; ok {
			known++
			if p.visible {
				parentVisible = true
			}
		}
	}

	visible := n.interesting || parentVisible ||
		(len(reach) == s.numTips && allChildrenPartial)
	exclude := !visible && childVisible
	fullyExplored := known == len(s.parents[id])

	changed := visible != n.visible ||
		exclude != n.exclude ||
		fullyExplored != n.fullyExplored ||
		len(reach) != len(n.reachableFrom)

	n.reachableFrom = reach
	n.visible = visible
	n.exclude = exclude
	n.fullyExplored = fullyExplored
	return changed
}

// wantExplore reports whether any node still needs its parents expanded: a
// visible node must be fully explored, and a node not yet reached by every
// tip may still turn out to sit above the common-ancestor frontier.
func (s *syncer) wantExplore() bool {
	for _, n := range s.nodes {
		if !n.fullyExplored && (n.visible || len(n.reachableFrom) < s.numTips) {
			return true
		}
	}
	return false
}

// entry orders pending expansions newest-first; ties break on the id so
// exploration order is deterministic.
type entry struct {
	when time.Time
	id   plumbing.Hash
}

type queue []entry

func (q queue) Len() int { return len(q) }

func (q queue) Less(i, j int) bool {
	if !q[i].when.Equal(q[j].when) {
		return q[i].when.After(q[j].when)
	}
	return bytes.Compare(q[i].id[:], q[j].id[:]) > 0
}

func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *queue) Push(x any) { *q = append(*q, x.(entry)) }

func (q *queue) Pop() any {
	old := *q
	e := old[len(old)-1]
	*q = old[:len(old)-1]
	return e
}

// Frontier explores the ancestry of the interesting tips until the
// include/exclude boundary converges. Includes are the tips not reachable
// from any other tip; excludes are the invisible commits bordering the
// visible region between the tips and their common ancestors.
func Frontier(tips []Commit, lookup Lookup) (walk.Boundary, error) {
	seen := make(map[plumbing.Hash]bool, len(tips))
	uniq := make([]Commit, 0, len(tips))
	for _, tip := range tips {
		if !seen[tip.ID] {
			seen[tip.ID] = true
			uniq = append(uniq, tip)
		}
	}
	tips = uniq
	if len(tips) == 0 {
		return walk.Boundary{}, nil
	}

	s := newSyncer(len(tips))
	cache := make(map[plumbing.Hash]Commit)
	var q queue

	addNode := func(c Commit, interesting bool) error {
		for _, pid := range c.Parents {
			if _, ok := s.nodes[pid]; ok {
				continue
			}
			if _, ok := cache[pid]; !ok {
				pc, err := lookup(pid)
				if err != nil {
					return fmt.Errorf("resolve parent %s: %w", pid, err)
				}
				cache[pid] = pc
			}
			heap.Push(&q, entry{when: cache[pid].When, id: pid})
		}
		n := &node{
			id:            c.ID,
			when:          c.When,
			interesting:   interesting,
			visible:       interesting,
			reachableFrom: make(map[plumbing.Hash]bool, 1),
		}
		if interesting {
			n.reachableFrom[c.ID] = true
		}
		s.add(n, c.Parents)
		return nil
	}

	for _, tip := range tips {
		if _, ok := s.nodes[tip.ID]; ok {
			continue
		}
		if err := addNode(tip, true); err != nil {
			return walk.Boundary{}, err
		}
	}

	for s.wantExplore() {
		if q.Len() == 0 {
			return walk.Boundary{}, ErrQueueDrained
		}
		e := heap.Pop(&q).(entry)
		if _, ok := s.nodes[e.id]; ok {
			continue
		}
		c, ok := cache[e.id]
		if !ok {
			return walk.Boundary{}, fmt.Errorf("no cached commit for %s", e.id)
		}
		delete(cache, e.id)
		if err := addNode(c, false); err != nil {
			return walk.Boundary{}, err
		}
	}

	var b walk.Boundary
	for _, n := range s.nodes {
		if n.interesting && len(n.reachableFrom) == 1 {
			b.Includes = append(b.Includes, n.id)
		}
		if n.exclude {
			b.Excludes = append(b.Excludes, n.id)
		}
	}
	sortBoundary(&b)
	return b, nil
}

func sortBoundary(b *walk.Boundary) {
	byHash := func(hs []plumbing.Hash) func(i, j int) bool {
		return func(i, j int) bool {
			return bytes.Compare(hs[i][:], hs[j][:]) < 0
		}
	}
	sort.Slice(b.Includes, byHash(b.Includes))
	sort.Slice(b.Excludes, byHash(b.Excludes))
}
