package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	gitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// requireGit skips tests that shell out to the git CLI when it is not
// installed.
func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}
}

// testRepo wraps a throwaway repository with helpers for building small
// histories. Commit timestamps increase monotonically so topological and
// date order agree.
type testRepo struct {
	t    *testing.T
	dir  string
	repo *gogit.Repository
	wt   *gogit.Worktree
	seq  int
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	return &testRepo{t: t, dir: dir, repo: repo, wt: wt}
}

func (r *testRepo) write(rel, content string) {
	r.t.Helper()
	full := filepath.Join(r.dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		r.t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		r.t.Fatalf("WriteFile: %v", err)
	}
	if _, err := r.wt.Add(rel); err != nil {
		r.t.Fatalf("Add: %v", err)
	}
}

func (r *testRepo) commit(msg string) plumbing.Hash {
	r.t.Helper()
	r.seq++
	when := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(r.seq) * time.Minute)
	sig := &object.Signature{Name: "Test", Email: "test@example.com", When: when}
	id, err := r.wt.Commit(msg, &gogit.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		r.t.Fatalf("Commit(%q): %v", msg, err)
	}
	return id
}

func (r *testRepo) checkout(branch string, create bool) {
	r.t.Helper()
	err := r.wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: create,
	})
	if err != nil {
		r.t.Fatalf("Checkout(%s): %v", branch, err)
	}
}

// headBranch returns the short name of the branch PlainInit created.
func (r *testRepo) headBranch() string {
	r.t.Helper()
	head, err := r.repo.Head()
	if err != nil {
		r.t.Fatalf("Head: %v", err)
	}
	return head.Name().Short()
}

// setRemoteRef plants refs/remotes/<remote>/<branch> without a network
// round trip, as a fetch would.
func setRemoteRef(t *testing.T, r *testRepo, remote, branch string, id plumbing.Hash) {
	t.Helper()
	name := plumbing.NewRemoteReferenceName(remote, branch)
	if err := r.repo.Storer.SetReference(plumbing.NewHashReference(name, id)); err != nil {
		t.Fatalf("SetReference(%s): %v", name, err)
	}
}

// setUpstream records branch.<local>.remote / branch.<local>.merge in the
// repository config.
func setUpstream(t *testing.T, r *testRepo, local, remote, upstream string) {
	t.Helper()
	cfg, err := r.repo.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if cfg.Branches == nil {
		cfg.Branches = make(map[string]*gitcfg.Branch)
	}
	cfg.Branches[local] = &gitcfg.Branch{
		Name:   local,
		Remote: remote,
		Merge:  plumbing.NewBranchReferenceName(upstream),
	}
	if err := r.repo.SetConfig(cfg); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}
}

func containsHash(ids []plumbing.Hash, want plumbing.Hash) bool {
	for _, id := range ids {
		if id == want {
			return true
		}
	}
	return false
}
