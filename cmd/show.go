package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gittree-go/internal/output"
)

// ShowCmd returns the show command.
func ShowCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Render the history graph with git log --graph",
		ArgsUsage: "[-- git log options]",
		Flags:     commonFlags(),
		Action:    showAction,
	}
}

func showAction(c *cli.Context) error {
	cc, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	boundary, bases, err := cc.ComputeBoundary(c.Context)
	if err != nil {
		return err
	}
	if len(boundary.Includes)+len(bases) == 0 {
		// Nothing reachable to display; HEAD alone still renders.
		bases = cc.Tips
	}

	logArgs := output.LogArgs{Boundary: boundary, Bases: bases}
	extra := append(append([]string(nil), cc.Config.Log.ExtraArgs...), c.Args().Slice()...)
	return output.RunLog(c.Context, cc.RepoPath, logArgs.GitArgs(cc.Config.Log.Format, extra))
}
