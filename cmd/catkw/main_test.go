package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pbaille/catkw/internal/catalog"
	"github.com/pbaille/catkw/internal/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDeriveMissingInputsFailsSoft(t *testing.T) {
	cfg = config.Default()
	dir := t.TempDir()

	f := deriveFlags{
		categories: filepath.Join(dir, "categorie_uniche.json"),
		blacklist:  filepath.Join(dir, "blacklist.txt"),
	}
	assert.NoError(t, runDerive(&f))
}

func TestRunDeriveWritesHTMLAndSaves(t *testing.T) {
	dir := t.TempDir()
	cfg = config.Default()
	cfg.Database = filepath.Join(dir, "db", "catkw.db")

	cats := filepath.Join(dir, "categorie_uniche.json")
	bl := filepath.Join(dir, "blacklist.txt")
	require.NoError(t, catalog.SavePaths(cats, []string{"Armi|Fucili|Elettrici", "Armi|Pistole"}))
	require.NoError(t, os.WriteFile(bl, []byte("Armi|Fucili|Elettrici\n"), 0644))

	f := deriveFlags{
		categories: cats,
		blacklist:  bl,
		save:       true,
		htmlOut:    filepath.Join(dir, "tree.html"),
	}
	require.NoError(t, runDerive(&f))

	page, err := os.ReadFile(f.htmlOut)
	require.NoError(t, err)
	assert.Contains(t, string(page), "Armi|Fucili")

	s, err := getStore()
	require.NoError(t, err)
	defer s.Close()
	runs, err := s.ListRuns(10, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 10))
	assert.Equal(t, "a b...", truncate("a\nbcdefgh", 6))
}

func TestFeedCommandsMissingFileFailSoft(t *testing.T) {
	cfg = config.Default()
	missing := filepath.Join(t.TempDir(), "feed.csv")

	for _, cmd := range []*cobra.Command{extractCmd(), uniqueCmd(), countCmd()} {
		cmd.SetArgs([]string{missing})
		assert.NoError(t, cmd.Execute(), cmd.Name())
	}
}
