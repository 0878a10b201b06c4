package store

import (
	"path/filepath"
	"testing"

	"github.com/pbaille/catkw/internal/domain"
	"github.com/pbaille/catkw/internal/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "catkw.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetRun(t *testing.T) {
	s := newTestStore(t)

	tree := taxonomy.Build([]string{"Armi|Fucili|Elettrici", "Armi|Fucili|A gas", "Armi|Pistole", "Coltelli"})
	bl := taxonomy.NewBlacklist([]string{"Armi|Fucili|Elettrici", "Armi|Fucili|A gas", "Coltelli", "X|Y"})
	report := taxonomy.Analyze(tree, bl)

	run, err := s.SaveRun(domain.RunSource{
		CategoriesFile: "categorie_uniche.json",
		BlacklistFile:  "blacklist.txt",
		PathCount:      4,
		BlacklistCount: bl.Len(),
	}, report)
	require.NoError(t, err)
	require.Len(t, run.ID, 36)

	got, err := s.GetRun(run.ID)
	require.NoError(t, err)
	assert.Equal(t, "categorie_uniche.json", got.CategoriesFile)
	assert.Equal(t, 4, got.BlacklistCount)
	assert.Equal(t, []string{"Armi|Fucili", "Coltelli"}, got.Report.Keywords)
	assert.Equal(t, []string{"X|Y"}, got.Report.Unknown)
	assert.Empty(t, got.Report.Residual)
	assert.Equal(t, report.Coverage, got.Report.Coverage)

	byPrefix, err := s.FindRun(run.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, run.ID, byPrefix.ID)
}

func TestKeywordOrderSurvivesStorage(t *testing.T) {
	s := newTestStore(t)
	report := &taxonomy.Report{Keywords: []string{"Z", "A", "M|N"}}

	run, err := s.SaveRun(domain.RunSource{}, report)
	require.NoError(t, err)

	got, err := s.GetRun(run.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Z", "A", "M|N"}, got.Report.Keywords)
}

func TestListRuns(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 3; i++ {
		_, err := s.SaveRun(domain.RunSource{PathCount: i}, &taxonomy.Report{})
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(2, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
	assert.Nil(t, runs[0].Report)

	runs, err = s.ListRuns(10, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestRunNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetRun("missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
	_, err = s.FindRun("abc")
	assert.ErrorIs(t, err, ErrRunNotFound)
}
