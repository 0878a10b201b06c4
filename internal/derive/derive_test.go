package derive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pbaille/catkw/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFiles(t *testing.T) {
	dir := t.TempDir()
	cats := filepath.Join(dir, "categorie_uniche.json")
	bl := filepath.Join(dir, "blacklist.txt")

	require.NoError(t, catalog.SavePaths(cats, []string{"A|B|C", "A|E|F", "G"}))
	require.NoError(t, os.WriteFile(bl, []byte("A|B|C\nA|E|F\n\nX|Y|Z\n"), 0644))

	res, err := FromFiles(cats, bl)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, res.Report.Keywords)
	assert.Equal(t, []string{"X|Y|Z"}, res.Report.Unknown)
	assert.Equal(t, 3, res.Source.PathCount)
	assert.Equal(t, 3, res.Source.BlacklistCount)
	assert.Equal(t, cats, res.Source.CategoriesFile)
}

func TestFromFilesMissing(t *testing.T) {
	_, err := FromFiles(filepath.Join(t.TempDir(), "nope.json"), "nope.txt")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}
