package output

import (
	"reflect"
	"strings"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/masmgr/gittree-go/internal/walk"
)

var (
	idA = plumbing.NewHash("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	idB = plumbing.NewHash("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	idC = plumbing.NewHash("cccccccccccccccccccccccccccccccccccccccc")
	idD = plumbing.NewHash("dddddddddddddddddddddddddddddddddddddddd")
)

func TestGitArgs_FullBoundary(t *testing.T) {
	la := LogArgs{
		Boundary: walk.Boundary{
			Includes: []plumbing.Hash{idA, idB},
			Excludes: []plumbing.Hash{idC},
		},
		Bases: []plumbing.Hash{idD},
	}

	got := la.GitArgs("%h %s", []string{"--color"})
	want := []string{
		"log", "--graph", "--format=%h %s", "--color",
		idA.String(), idB.String(), idD.String(),
		"--not",
		idD.String() + "^@",
		idC.String(),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("GitArgs:\n got %v\nwant %v", got, want)
	}
}

func TestGitArgs_NoNegativeRevs(t *testing.T) {
	la := LogArgs{Boundary: walk.Boundary{Includes: []plumbing.Hash{idA}}}
	got := la.GitArgs("", nil)
	for _, arg := range got {
		if arg == "--not" {
			t.Fatalf("GitArgs emitted --not with nothing to negate: %v", got)
		}
	}
}

func TestGitArgs_BaseOnlyWindow(t *testing.T) {
	// A base that is the whole visible window: it must appear as a
	// positive rev, with its parents cut.
	la := LogArgs{Bases: []plumbing.Hash{idA}}
	got := la.GitArgs("", nil)

	joined := strings.Join(got, " ")
	if !strings.Contains(joined, idA.String()+" --not "+idA.String()+"^@") {
		t.Fatalf("GitArgs = %v", got)
	}
}

func TestGitArgs_EmptyFormatOmitted(t *testing.T) {
	la := LogArgs{Boundary: walk.Boundary{Includes: []plumbing.Hash{idA}}}
	for _, arg := range la.GitArgs("", nil) {
		if strings.HasPrefix(arg, "--format=") {
			t.Fatalf("empty format still emitted: %v", arg)
		}
	}
}
