package derive

import (
	"github.com/pbaille/catkw/internal/catalog"
	"github.com/pbaille/catkw/internal/domain"
	"github.com/pbaille/catkw/internal/taxonomy"
)

// Result is a derivation together with the inputs it was computed from
type Result struct {
	Tree      *taxonomy.Tree
	Blacklist taxonomy.Blacklist
	Report    *taxonomy.Report
	Source    domain.RunSource
}

// FromLists derives keywords from in-memory path and blacklist lists
func FromLists(paths, blacklist []string) *Result {
	tree := taxonomy.Build(paths)
	bl := taxonomy.NewBlacklist(blacklist)

	return &Result{
		Tree:      tree,
		Blacklist: bl,
		Report:    taxonomy.Analyze(tree, bl),
		Source: domain.RunSource{
			PathCount:      len(paths),
			BlacklistCount: bl.Len(),
		},
	}
}

// FromFiles loads the category JSON and blacklist text file and derives keywords.
// Missing files yield errors wrapping catalog.ErrNotFound.
func FromFiles(categoriesFile, blacklistFile string) (*Result, error) {
	paths, err := catalog.LoadPaths(categoriesFile)
	if err != nil {
		return nil, err
	}
	entries, err := catalog.LoadBlacklist(blacklistFile)
	if err != nil {
		return nil, err
	}

	res := FromLists(paths, entries)
	res.Source.CategoriesFile = categoriesFile
	res.Source.BlacklistFile = blacklistFile
	return res, nil
}
