package output

import (
	"context"
	"os"
	"os/exec"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/masmgr/gittree-go/internal/walk"
)

// LogArgs carries everything the git log renderer needs: the boundary
// computed by the engine plus the bases bounding the window from below.
type LogArgs struct {
	Boundary walk.Boundary
	Bases    []plumbing.Hash
}

// GitArgs builds the argument vector for the final git log invocation.
//
// The bases are passed both as positive revs (so a base that is itself the
// only visible commit still renders) and, suffixed with ^@, as negative
// revs: ^@ names a commit's direct parents, which cuts the display below
// each base while keeping the base itself visible.
func (a LogArgs) GitArgs(format string, extra []string) []string {
	args := []string{"log", "--graph"}
	if format != "" {
		args = append(args, "--format="+format)
	}
	args = append(args, extra...)

	for _, id := range a.Boundary.Includes {
		args = append(args, id.String())
	}
	for _, b := range a.Bases {
		args = append(args, b.String())
	}
	if len(a.Bases)+len(a.Boundary.Excludes) > 0 {
		args = append(args, "--not")
	}
	for _, b := range a.Bases {
		args = append(args, b.String()+"^@")
	}
	for _, x := range a.Boundary.Excludes {
		args = append(args, x.String())
	}
	return args
}

// RunLog executes git log with the given arguments in repoPath, attached
// to this process's stdio so the graph renders straight to the terminal.
func RunLog(ctx context.Context, repoPath string, args []string) error {
	full := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", full...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
