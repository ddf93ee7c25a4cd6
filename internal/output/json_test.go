package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/masmgr/gittree-go/internal/walk"
)

func TestJSONBoundaryWriter_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boundary.json")

	report := &BoundaryReport{
		RepoPath:    "/repo",
		GeneratedAt: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
		Tips:        []plumbing.Hash{idA},
		Bases:       []plumbing.Hash{idD},
		Boundary: walk.Boundary{
			Includes: []plumbing.Hash{idA},
			Excludes: []plumbing.Hash{idC},
		},
	}

	writer := &JSONBoundaryWriter{}
	err := writer.Write(report, OutputOptions{Format: FormatJSON, OutputPath: path})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var decoded JSONBoundaryReport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if decoded.RepoPath != "/repo" {
		t.Errorf("repo = %q", decoded.RepoPath)
	}
	if len(decoded.Includes) != 1 || decoded.Includes[0] != idA.String() {
		t.Errorf("includes = %v", decoded.Includes)
	}
	if len(decoded.Excludes) != 1 || decoded.Excludes[0] != idC.String() {
		t.Errorf("excludes = %v", decoded.Excludes)
	}
	if len(decoded.Bases) != 1 || decoded.Bases[0] != idD.String() {
		t.Errorf("bases = %v", decoded.Bases)
	}
}
