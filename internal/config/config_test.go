package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def, cfg)
	assert.Equal(t, 100, cfg.Report.ResidualLimit)
	assert.Contains(t, cfg.Count.DefaultBlacklist, "Katane")
}

func TestLoadFileAndEnv(t *testing.T) {
	file := filepath.Join(t.TempDir(), "catkw.yaml")
	yml := `
categories_file: data/cats.json
catalog:
  column: Categorie
count:
  default_blacklist: [Spade, Archi]
report:
  residual_limit: -3
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(file, []byte(yml), 0644))
	t.Setenv("CATKW_ADDR", ":9090")
	t.Setenv("CATKW_BLACKLIST_FILE", "bl.txt")

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "data/cats.json", cfg.CategoriesFile)
	assert.Equal(t, "bl.txt", cfg.BlacklistFile)
	assert.Equal(t, "Categorie", cfg.Catalog.Column)
	assert.Equal(t, "Categoria", cfg.Count.Column)
	assert.Equal(t, []string{"Spade", "Archi"}, cfg.Count.DefaultBlacklist)
	assert.Equal(t, 100, cfg.Report.ResidualLimit)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	file := filepath.Join(t.TempDir(), "catkw.yaml")
	require.NoError(t, os.WriteFile(file, []byte("catalog: [unclosed"), 0644))

	_, err := Load(file)
	assert.ErrorContains(t, err, "parse config")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.BlacklistFile = ""
	assert.Error(t, cfg.Validate())
	assert.NoError(t, Default().Validate())
}
