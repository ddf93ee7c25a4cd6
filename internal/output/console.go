package output

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/go-git/go-git/v5/plumbing"
)

// ConsoleBoundaryWriter writes boundary reports to the console.
type ConsoleBoundaryWriter struct{}

// Write outputs the boundary report in a human-readable layout.
func (w *ConsoleBoundaryWriter) Write(report *BoundaryReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	color.Green("History graph boundary")
	fmt.Fprintf(out, "Repository: %s\n", report.RepoPath)
	fmt.Fprintf(out, "Tips: %d  Bases: %d\n\n", len(report.Tips), len(report.Bases))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	writeHashColumn(tw, "include", report.Boundary.Includes)
	writeHashColumn(tw, "exclude", report.Boundary.Excludes)
	writeHashColumn(tw, "base", report.Bases)
	return tw.Flush()
}

func writeHashColumn(w io.Writer, label string, ids []plumbing.Hash) {
	for _, id := range ids {
		fmt.Fprintf(w, "%s\t%s\n", label, id)
	}
}

func openOutputWriter(outputPath string) (io.Writer, *os.File, error) {
	if outputPath == "" {
		return os.Stdout, nil, nil
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}
