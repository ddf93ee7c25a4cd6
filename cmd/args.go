package cmd

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gittree-go/internal/output"
)

// ArgsCmd returns the args command.
func ArgsCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (console, json)",
			Value:   "console",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
	)

	return &cli.Command{
		Name:   "args",
		Usage:  "Print the computed include/exclude boundary without rendering",
		Flags:  flags,
		Action: argsAction,
	}
}

func argsAction(c *cli.Context) error {
	cc, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	boundary, bases, err := cc.ComputeBoundary(c.Context)
	if err != nil {
		return err
	}

	report := &output.BoundaryReport{
		RepoPath:    cc.RepoPath,
		GeneratedAt: time.Now(),
		Tips:        cc.Tips,
		Bases:       bases,
		Boundary:    boundary,
	}

	writer := output.NewBoundaryReportWriter(getOutputFormat(c.String("format")))
	return writer.Write(report, output.OutputOptions{
		Format:     getOutputFormat(c.String("format")),
		OutputPath: c.String("output"),
	})
}
