package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gittree-go/config"
	"github.com/masmgr/gittree-go/internal/explore"
	"github.com/masmgr/gittree-go/internal/git"
	"github.com/masmgr/gittree-go/internal/walk"
)

// CommandContext holds common state for command execution: the loaded
// configuration, the opened repository and the discovered tips.
type CommandContext struct {
	Config     *config.Config
	RepoPath   string
	Tips       []plumbing.Hash
	Debug      bool
	discoverer *git.Discoverer

	bases         []plumbing.Hash
	basesResolved bool
}

// NewCommandContext creates a context from CLI flags. It loads the
// configuration, opens the repository and discovers the interesting tips.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	repoPath := c.String("repo")
	disc, err := git.NewDiscoverer(git.DiscoverOptions{
		RepoPath:         repoPath,
		IncludeRemotes:   cfg.Discovery.IncludeRemotes,
		IncludeUpstreams: cfg.Discovery.IncludeUpstreams,
		Include:          cfg.Filters.Include,
		Exclude:          cfg.Filters.Exclude,
	})
	if err != nil {
		return nil, err
	}

	tips, err := disc.Tips()
	if err != nil {
		return nil, fmt.Errorf("discover tips: %w", err)
	}

	cc := &CommandContext{
		Config:     cfg,
		RepoPath:   repoPath,
		Tips:       tips,
		Debug:      c.Bool("debug"),
		discoverer: disc,
	}
	cc.debugIDs("tips", tips)
	return cc, nil
}

// Bases resolves the octopus merge bases of the tips, once.
func (cc *CommandContext) Bases(ctx context.Context) ([]plumbing.Hash, error) {
	if cc.basesResolved {
		return cc.bases, nil
	}
	resolver := &git.OctopusResolver{RepoPath: cc.RepoPath}
	bases, err := resolver.MergeBases(ctx, cc.Tips)
	if err != nil {
		return nil, fmt.Errorf("resolve merge bases: %w", err)
	}
	cc.bases = bases
	cc.basesResolved = true
	cc.debugIDs("bases", bases)
	return bases, nil
}

// ComputeBoundary runs the configured strategy and returns the boundary
// together with the bases the renderer must cut below. The explore
// strategy discovers the common ancestors itself, so its excludes already
// cut the display and no bases are reported.
func (cc *CommandContext) ComputeBoundary(ctx context.Context) (walk.Boundary, []plumbing.Hash, error) {
	var (
		boundary walk.Boundary
		bases    []plumbing.Hash
	)

	switch cc.Config.Discovery.Strategy {
	case config.StrategyExplore:
		tips, err := cc.discoverer.TipCommits()
		if err != nil {
			return walk.Boundary{}, nil, err
		}
		boundary, err = explore.Frontier(tips, cc.discoverer.CommitLookup())
		if err != nil {
			return walk.Boundary{}, nil, err
		}

	default:
		var err error
		bases, err = cc.Bases(ctx)
		if err != nil {
			return walk.Boundary{}, nil, err
		}
		src, err := git.OpenRevList(ctx, cc.RepoPath, cc.Tips, bases)
		if err != nil {
			return walk.Boundary{}, nil, err
		}
		defer src.Close()

		engine := walk.New(bases)
		if err := engine.Run(src); err != nil {
			return walk.Boundary{}, nil, err
		}
		boundary = engine.Result()
	}

	cc.debugIDs("includes", boundary.Includes)
	cc.debugIDs("excludes", boundary.Excludes)
	return boundary, bases, nil
}

func (cc *CommandContext) debugIDs(label string, ids []plumbing.Hash) {
	if !cc.Debug {
		return
	}
	for _, id := range ids {
		fmt.Fprintln(os.Stderr, color.YellowString("%s %s", label, id))
	}
}
