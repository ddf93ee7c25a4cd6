// Package walk implements the visibility propagation engine: a single
// streaming pass over a reverse-topologically-ordered commit stream that
// classifies every commit reachable from the interesting tips as inside or
// outside the visible window, and emits the minimal include/exclude
// boundary of that window.
//
// git log accepts an include/exclude list of commits and displays all
// commits reachable from the includes that are not reachable from the
// excludes. The engine computes exactly that pair for the window of
// commits reachable from the tips whose own ancestry reaches a merge base.
package walk

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/go-git/go-git/v5/plumbing"
)

// nodeState is the tri-state classification of a tracked commit. A commit
// is classified once, when its own record is processed (all parents are
// already resolved at that point), and the only later mutation is the
// single visibleLeaf -> visibleInterior promotion.
type nodeState uint8

const (
	// pendingInvisible: no parent seen so far reaches a base, and no
	// visible child has been observed.
	pendingInvisible nodeState = iota

	// visibleLeaf: reaches a base (directly seeded, or through a visible
	// parent) with no visible child observed yet. The final leaves form
	// the outer frontier reported as Includes.
	visibleLeaf

	// visibleInterior: reaches a base and has at least one visible child,
	// so it lies strictly inside the visible region.
	visibleInterior
)

// ErrMalformedRecord reports an edge record without a leading commit id.
// This is an input contract violation and aborts the whole computation.
var ErrMalformedRecord = errors.New("edge record missing commit id")

// Engine consumes the edge stream and classifies every commit it names.
// The active table holds exactly the commits whose state could still
// influence a not-yet-processed descendant; entries proven irrelevant are
// removed and their arena slots reused.
//
// The engine is strictly sequential: each record's classification depends
// on all earlier records, so there is nothing to parallelize. A single
// invocation owns its table and arena exclusively.
type Engine struct {
	table map[plumbing.Hash]int
	arena arena
}

// New returns an engine with every base pre-registered as a visible leaf.
// Seeded bases contribute visibility to their descendants but are never
// reported in the resulting boundary: the renderer shows them through
// their visible descendants and cuts their ancestry separately.
func New(bases []plumbing.Hash) *Engine {
	e := &Engine{table: make(map[plumbing.Hash]int, len(bases))}
	for _, id := range bases {
		if _, ok := e.table[id]; ok {
			continue
		}
		e.table[id] = e.arena.alloc(node{state: visibleLeaf, seeded: true})
	}
	return e
}

// Process classifies a single record. Records must arrive in reverse
// topological order: every parent id has either appeared as the id of an
// earlier record or is a seeded base. A parent missing from the active
// table was already proven irrelevant (or lies outside the streamed
// window) and contributes no visibility.
func (e *Engine) Process(rec EdgeRecord) error {
	if rec.ID.IsZero() {
		return ErrMalformedRecord
	}

	visible := false
	for _, p := range rec.Parents {
		slot, ok := e.table[p]
		if !ok {
			continue
		}
		if e.arena.get(slot).state != pendingInvisible {
			visible = true
			break
		}
	}

	if visible {
		// Every visible-leaf parent has gained a visible child and is no
		// longer on the outer frontier.
		for _, p := range rec.Parents {
			slot, ok := e.table[p]
			if !ok {
				continue
			}
			if n := e.arena.get(slot); n.state == visibleLeaf {
				n.state = visibleInterior
				e.arena.set(slot, n)
			}
		}
	} else {
		// Invisibility is permanent, so a pending parent that produced an
		// invisible child can never change a future outcome. Forget it and
		// reuse its slot.
		for _, p := range rec.Parents {
			slot, ok := e.table[p]
			if !ok {
				continue
			}
			if e.arena.get(slot).state == pendingInvisible {
				delete(e.table, p)
				e.arena.release(slot)
			}
		}
	}

	// A record id already present (a base echoed by the stream) keeps its
	// existing entry; states are created exactly once.
	if _, ok := e.table[rec.ID]; !ok {
		st := pendingInvisible
		if visible {
			st = visibleLeaf
		}
		e.table[rec.ID] = e.arena.alloc(node{state: st})
	}

	return nil
}

// Run consumes src to exhaustion. There is no early exit: any remaining
// record could still alter a pending classification. On a source or
// contract error the computation is aborted; the engine's partial state is
// meaningless and must be discarded.
func (e *Engine) Run(src EdgeSource) error {
	for {
		rec, err := src.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("edge stream: %w", err)
		}
		if err := e.Process(rec); err != nil {
			return err
		}
	}
}

// Result scans the final active table. Visible leaves become Includes,
// pending entries become Excludes, interior entries are implied
// transitively by an included descendant and omitted. Seeded bases are
// omitted as well. Both sets are sorted so identical inputs always yield
// identical output, independent of map iteration order.
func (e *Engine) Result() Boundary {
	var b Boundary
	for id, slot := range e.table {
		n := e.arena.get(slot)
		switch {
		case n.seeded:
		case n.state == visibleLeaf:
			b.Includes = append(b.Includes, id)
		case n.state == pendingInvisible:
			b.Excludes = append(b.Excludes, id)
		}
	}
	sortHashes(b.Includes)
	sortHashes(b.Excludes)
	return b
}

func sortHashes(hs []plumbing.Hash) {
	sort.Slice(hs, func(i, j int) bool {
		return bytes.Compare(hs[i][:], hs[j][:]) < 0
	})
}
