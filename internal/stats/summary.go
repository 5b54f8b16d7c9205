package stats

import (
	"sort"

	"github.com/samber/lo"
)

// Summary is the reported view of a single repository.
type Summary struct {
	Name    string `json:"name" yaml:"name"`
	Commits int    `json:"commits" yaml:"commits"`
	Branch  string `json:"branch" yaml:"branch"`
}

// Summaries maps repository names to their summaries.
type Summaries map[string]Summary

// Names returns the repository names in ascending order.
func (summaries Summaries) Names() []string {
	names := lo.Keys(summaries)
	sort.Strings(names)
	return names
}

// Ordered returns the summaries sorted by repository name.
func (summaries Summaries) Ordered() []Summary {
	return lo.Map(summaries.Names(), func(name string, _ int) Summary {
		return summaries[name]
	})
}
