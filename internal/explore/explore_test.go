package explore

import (
	"errors"
	"testing"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
)

func h(name string) plumbing.Hash {
	return plumbing.ComputeHash(plumbing.BlobObject, []byte(name))
}

// graph is an in-memory history for tests. Lookups are recorded so tests
// can assert exploration stayed lazy.
type graph struct {
	commits map[plumbing.Hash]Commit
	asked   map[plumbing.Hash]bool
}

func newGraph() *graph {
	return &graph{
		commits: make(map[plumbing.Hash]Commit),
		asked:   make(map[plumbing.Hash]bool),
	}
}

func (g *graph) add(name string, when int64, parents ...string) Commit {
	c := Commit{ID: h(name), When: time.Unix(when, 0)}
	for _, p := range parents {
		c.Parents = append(c.Parents, h(p))
	}
	g.commits[c.ID] = c
	return c
}

func (g *graph) lookup(id plumbing.Hash) (Commit, error) {
	g.asked[id] = true
	c, ok := g.commits[id]
	if !ok {
		return Commit{}, errors.New("unknown commit")
	}
	return c, nil
}

func assertIDs(t *testing.T, label string, got []plumbing.Hash, names ...string) {
	t.Helper()
	if len(got) != len(names) {
		t.Fatalf("%s: got %d ids, want %d (%v)", label, len(got), len(names), names)
	}
	want := make(map[plumbing.Hash]bool, len(names))
	for _, n := range names {
		want[h(n)] = true
	}
	for _, id := range got {
		if !want[id] {
			t.Fatalf("%s: unexpected id %s", label, id)
		}
	}
}

func TestFrontier_NoTips(t *testing.T) {
	b, err := Frontier(nil, func(plumbing.Hash) (Commit, error) {
		t.Fatal("lookup called with no tips")
		return Commit{}, nil
	})
	if err != nil {
		t.Fatalf("Frontier: %v", err)
	}
	if len(b.Includes) != 0 || len(b.Excludes) != 0 {
		t.Fatalf("boundary not empty: %+v", b)
	}
}

func TestFrontier_SingleEdge(t *testing.T) {
	g := newGraph()
	g.add("A", 3)
	tip := g.add("B", 7, "A")

	b, err := Frontier([]Commit{tip}, g.lookup)
	if err != nil {
		t.Fatalf("Frontier: %v", err)
	}
	assertIDs(t, "includes", b.Includes, "B")
	assertIDs(t, "excludes", b.Excludes, "A")
}

func TestFrontier_DiamondTwoTips(t *testing.T) {
	// R <- M <- {P1 <- T1, P2 <- T2}: M is the common ancestor the
	// explorer must discover; R borders the visible region.
	g := newGraph()
	g.add("R", 1)
	g.add("M", 2, "R")
	g.add("P1", 3, "M")
	g.add("P2", 4, "M")
	t1 := g.add("T1", 5, "P1")
	t2 := g.add("T2", 6, "P2")

	b, err := Frontier([]Commit{t1, t2}, g.lookup)
	if err != nil {
		t.Fatalf("Frontier: %v", err)
	}
	assertIDs(t, "includes", b.Includes, "T1", "T2")
	assertIDs(t, "excludes", b.Excludes, "R")
}

func TestFrontier_StopsBelowCommonAncestor(t *testing.T) {
	// History continues below R, but once M is reached by every tip the
	// deeper ancestry must stay unexplored.
	g := newGraph()
	g.add("deep", 0)
	g.add("S", 1, "deep")
	g.add("R", 2, "S")
	g.add("M", 3, "R")
	t1 := g.add("T1", 4, "M")
	t2 := g.add("T2", 5, "M")

	b, err := Frontier([]Commit{t1, t2}, g.lookup)
	if err != nil {
		t.Fatalf("Frontier: %v", err)
	}
	assertIDs(t, "includes", b.Includes, "T1", "T2")
	assertIDs(t, "excludes", b.Excludes, "R")

	// R's parent S is fetched when R is expanded, but never expanded
	// itself, so S's own parent is never requested.
	if g.asked[h("deep")] {
		t.Error("explored past the exclusion boundary")
	}
}

func TestFrontier_TipInsideOtherTipsHistory(t *testing.T) {
	// T2 is an ancestor of T1, so only T1 starts a traversal; T2 is shown
	// through T1's history.
	g := newGraph()
	g.add("A", 1)
	t2 := g.add("T2", 2, "A")
	t1 := g.add("T1", 3, "T2")

	b, err := Frontier([]Commit{t1, t2}, g.lookup)
	if err != nil {
		t.Fatalf("Frontier: %v", err)
	}
	assertIDs(t, "includes", b.Includes, "T1")
	assertIDs(t, "excludes", b.Excludes, "A")
}

func TestFrontier_DuplicateTips(t *testing.T) {
	g := newGraph()
	g.add("A", 1)
	tip := g.add("B", 2, "A")

	b, err := Frontier([]Commit{tip, tip}, g.lookup)
	if err != nil {
		t.Fatalf("Frontier: %v", err)
	}
	assertIDs(t, "includes", b.Includes, "B")
	assertIDs(t, "excludes", b.Excludes, "A")
}

func TestFrontier_LookupFailureSurfaces(t *testing.T) {
	g := newGraph()
	tip := g.add("B", 2, "missing")

	if _, err := Frontier([]Commit{tip}, g.lookup); err == nil {
		t.Fatal("expected lookup failure to surface")
	}
}
