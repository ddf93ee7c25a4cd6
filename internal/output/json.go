package output

import (
	"encoding/json"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
)

// JSONBoundaryWriter writes boundary reports as JSON, for composing the
// boundary computation with other tooling.
type JSONBoundaryWriter struct{}

// JSONBoundaryReport is the JSON output structure for a boundary report.
type JSONBoundaryReport struct {
	RepoPath    string   `json:"repo"`
	GeneratedAt string   `json:"generatedAt"`
	Tips        []string `json:"tips"`
	Bases       []string `json:"bases"`
	Includes    []string `json:"includes"`
	Excludes    []string `json:"excludes"`
}

// Write outputs the boundary report as JSON.
func (w *JSONBoundaryWriter) Write(report *BoundaryReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	jsonReport := JSONBoundaryReport{
		RepoPath:    report.RepoPath,
		GeneratedAt: report.GeneratedAt.Format("2006-01-02T15:04:05"),
		Tips:        hashStrings(report.Tips),
		Bases:       hashStrings(report.Bases),
		Includes:    hashStrings(report.Boundary.Includes),
		Excludes:    hashStrings(report.Boundary.Excludes),
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jsonReport); err != nil {
		return fmt.Errorf("encode boundary report: %w", err)
	}
	return nil
}

func hashStrings(ids []plumbing.Hash) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
