package git

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DiscoverOptions configures interesting-commit discovery.
type DiscoverOptions struct {
	RepoPath string

	// IncludeRemotes adds the tip of every remote branch whose short name
	// matches a local branch name, so diverged local/remote pairs both
	// show up in the graph.
	IncludeRemotes bool

	// IncludeUpstreams adds the tip of each local branch's configured
	// upstream (tracking) ref.
	IncludeUpstreams bool

	// Include and Exclude are glob patterns over branch short names.
	// Exclude wins; an empty Include list accepts every branch.
	Include []string
	Exclude []string
}

// matchesFilters checks if a branch short name passes the include/exclude
// globs.
func (o DiscoverOptions) matchesFilters(name string) bool {
	name = strings.ReplaceAll(name, "\\", "/")

	for _, pattern := range o.Exclude {
		matched, _ := doublestar.Match(pattern, name)
		if matched {
			return false
		}
	}

	if len(o.Include) == 0 {
		return true
	}

	for _, pattern := range o.Include {
		matched, _ := doublestar.Match(pattern, name)
		if matched {
			return true
		}
	}

	return false
}
