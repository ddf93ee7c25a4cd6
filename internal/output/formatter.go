package output

import (
	"time"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/masmgr/gittree-go/internal/walk"
)

// Compile-time interface conformance checks.
var (
	_ BoundaryReportWriter = (*ConsoleBoundaryWriter)(nil)
	_ BoundaryReportWriter = (*JSONBoundaryWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole OutputFormat = "console"
	FormatJSON    OutputFormat = "json"
)

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	OutputPath string
}

// BoundaryReport holds a computed include/exclude boundary together with
// the inputs it was derived from.
type BoundaryReport struct {
	RepoPath    string
	GeneratedAt time.Time
	Tips        []plumbing.Hash
	Bases       []plumbing.Hash
	Boundary    walk.Boundary
}

// BoundaryReportWriter writes boundary reports.
type BoundaryReportWriter interface {
	Write(report *BoundaryReport, options OutputOptions) error
}

// NewBoundaryReportWriter creates a report writer for the specified format.
func NewBoundaryReportWriter(format OutputFormat) BoundaryReportWriter {
	switch format {
	case FormatJSON:
		return &JSONBoundaryWriter{}
	default:
		return &ConsoleBoundaryWriter{}
	}
}
