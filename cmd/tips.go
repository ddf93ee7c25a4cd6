package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

// TipsCmd returns the tips command.
func TipsCmd() *cli.Command {
	return &cli.Command{
		Name:   "tips",
		Usage:  "List the discovered interesting tips and their merge bases",
		Flags:  commonFlags(),
		Action: tipsAction,
	}
}

func tipsAction(c *cli.Context) error {
	cc, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	bases, err := cc.Bases(c.Context)
	if err != nil {
		return err
	}

	color.Green("Interesting commits")
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, id := range cc.Tips {
		fmt.Fprintf(tw, "tip\t%s\n", id)
	}
	for _, id := range bases {
		fmt.Fprintf(tw, "base\t%s\n", id)
	}
	return tw.Flush()
}
