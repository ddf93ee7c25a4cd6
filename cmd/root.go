package cmd

import (
	"fmt"
	"os"

	"github.com/masmgr/gittree-go/config"
	"github.com/masmgr/gittree-go/internal/output"
	"github.com/urfave/cli/v2"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "gittree",
		Usage:   "Show the history graph connecting your branches",
		Version: "1.0.0",
		Commands: []*cli.Command{
			ShowCmd(),
			ArgsCmd(),
			TipsCmd(),
		},
		Flags: append(commonFlags(),
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
		),
		Action: defaultAction,
	}
}

// Common flags shared across commands
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Path to Git repository",
			Value:   ".",
		},
		&cli.StringFlag{
			Name:    "strategy",
			Aliases: []string{"s"},
			Usage:   "Boundary strategy (stream, explore)",
		},
		&cli.BoolFlag{
			Name:  "no-remotes",
			Usage: "Do not add matching remote branches to the graph",
		},
		&cli.BoolFlag{
			Name:  "no-upstreams",
			Usage: "Do not add upstream tracking refs to the graph",
		},
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Branch name globs to include (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Branch name globs to exclude (can be specified multiple times)",
		},
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"d"},
			Usage:   "Print discovered tips, bases and the computed boundary to stderr",
		},
	}
}

// getOutputFormat parses the output format flag.
func getOutputFormat(s string) output.OutputFormat {
	switch s {
	case "json":
		return output.FormatJSON
	default:
		return output.FormatConsole
	}
}

// parseStrategyFlag validates a strategy name; the empty string keeps the
// configured default.
func parseStrategyFlag(s string) (string, error) {
	switch s {
	case "":
		return "", nil
	case config.StrategyStream, config.StrategyExplore:
		return s, nil
	default:
		return "", fmt.Errorf("unknown strategy %q (expected stream or explore)", s)
	}
}

// loadConfig loads configuration from file or defaults, applying CLI
// overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if includes := c.StringSlice("include"); len(includes) > 0 {
		cfg.Filters.Include = includes
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Filters.Exclude = excludes
	}
	if c.Bool("no-remotes") {
		cfg.Discovery.IncludeRemotes = false
	}
	if c.Bool("no-upstreams") {
		cfg.Discovery.IncludeUpstreams = false
	}
	strategy, err := parseStrategyFlag(c.String("strategy"))
	if err != nil {
		return nil, err
	}
	if strategy != "" {
		cfg.Discovery.Strategy = strategy
	}

	return cfg, nil
}

// defaultAction renders the graph when no subcommand is given, so plain
// `gittree` behaves like `gittree show`.
func defaultAction(c *cli.Context) error {
	return ShowCmd().Action(c)
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
