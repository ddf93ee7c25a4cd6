package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
)

// OctopusResolver computes the octopus merge bases of the interesting tips
// with the git CLI. go-git only exposes pairwise merge bases, and the
// boundary computation needs the common ancestors of the whole tip set at
// once (`git merge-base -a --octopus`).
type OctopusResolver struct {
	RepoPath string
}

// MergeBases returns every best common ancestor of the given tips. A
// single tip is its own octopus base, and an empty tip set has none;
// neither spawns a subprocess.
func (r *OctopusResolver) MergeBases(ctx context.Context, tips []plumbing.Hash) ([]plumbing.Hash, error) {
	switch len(tips) {
	case 0:
		return nil, nil
	case 1:
		return []plumbing.Hash{tips[0]}, nil
	}

	args := []string{"-C", r.RepoPath, "merge-base", "-a", "--octopus"}
	for _, t := range tips {
		args = append(args, t.String())
	}

	out, err := exec.CommandContext(ctx, "git", args...).CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("git merge-base failed: %w: %s", err, strings.TrimSpace(string(out)))
	}

	var bases []plumbing.Hash
	for _, field := range strings.Fields(string(out)) {
		if !plumbing.IsHash(field) {
			return nil, fmt.Errorf("unexpected merge-base output: %q", field)
		}
		bases = append(bases, plumbing.NewHash(field))
	}
	return bases, nil
}
