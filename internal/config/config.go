package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pbaille/catkw/internal/report"
	"gopkg.in/yaml.v3"
)

// Config holds catkw settings
type Config struct {
	// Input files of keyword derivation
	CategoriesFile string `yaml:"categories_file"`
	BlacklistFile  string `yaml:"blacklist_file"`

	// Run history database
	Database string `yaml:"database"`

	Catalog CatalogConfig `yaml:"catalog"`
	Count   CountConfig   `yaml:"count"`
	Report  ReportConfig  `yaml:"report"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// CatalogConfig describes the feed category paths are extracted from
type CatalogConfig struct {
	Column string `yaml:"column"`
}

// CountConfig configures the row counter
type CountConfig struct {
	Column           string   `yaml:"column"`
	DefaultBlacklist []string `yaml:"default_blacklist"`
}

// ReportConfig tunes the text report
type ReportConfig struct {
	ResidualLimit int `yaml:"residual_limit"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig configures zap
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultBlacklist is the category list the row counter starts from
var DefaultBlacklist = []string{
	"Katane", "Armeria", "Spade", "Home", "Pugnali", "Balestre",
	"Mattoncini Sluban", "Modellini Militari", "Pistole a salve",
	"Accessori Archi / Balestre", "DARDI", "FRECCE", "Archi",
	"Coltelli butterfly", "Coltelli tascabili", "Coltelli caccia/survival",
	"Coltelli lama fissa", "COMBO PACK", "CUSTOM UPGRADE",
	"Coltelli da lancio", "Multitool / Forbici Trauma", "ANFIBI/SCARPE",
	"INTIMO TERMICO", "ASSEMBLATI", "CUSTOM ESTETICA", "Vip Club",
	"Gift Card Addon no delete", "Caricatori a salve", "Collimatori",
	"TACHYON - STATUS", "Armi/spray peperoncino", "NIKK SAKK CUSTOM",
	"Biglie per fionda", "PERFECT ROSSI", "FUCILI E PISTOLE USATI",
	"STARTER KIT", "SGW CUSTOM", "USATO", "FUCILI ELETTRICI ECO",
}

// Default returns the built-in configuration
func Default() Config {
	home, _ := os.UserHomeDir()

	return Config{
		CategoriesFile: "categorie_uniche.json",
		BlacklistFile:  "blacklist.txt",
		Database:       filepath.Join(home, ".catkw", "catkw.db"),
		Catalog:        CatalogConfig{Column: "Categories_IT"},
		Count: CountConfig{
			Column:           "Categoria",
			DefaultBlacklist: append([]string(nil), DefaultBlacklist...),
		},
		Report:  ReportConfig{ResidualLimit: report.DefaultResidualLimit},
		Server:  ServerConfig{Addr: ":8080"},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads path over the defaults, then applies CATKW_* environment overrides.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	cfg.applyEnv()

	if cfg.Report.ResidualLimit <= 0 {
		cfg.Report.ResidualLimit = report.DefaultResidualLimit
	}

	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	c.CategoriesFile = envOr("CATKW_CATEGORIES_FILE", c.CategoriesFile)
	c.BlacklistFile = envOr("CATKW_BLACKLIST_FILE", c.BlacklistFile)
	c.Database = envOr("CATKW_DB", c.Database)
	c.Catalog.Column = envOr("CATKW_CATALOG_COLUMN", c.Catalog.Column)
	c.Count.Column = envOr("CATKW_COUNT_COLUMN", c.Count.Column)
	c.Report.ResidualLimit = envInt("CATKW_RESIDUAL_LIMIT", c.Report.ResidualLimit)
	c.Server.Addr = envOr("CATKW_ADDR", c.Server.Addr)
	c.Logging.Level = envOr("CATKW_LOG_LEVEL", c.Logging.Level)
}

// Validate checks that required settings are present
func (c Config) Validate() error {
	if c.CategoriesFile == "" {
		return fmt.Errorf("categories_file is required")
	}
	if c.BlacklistFile == "" {
		return fmt.Errorf("blacklist_file is required")
	}
	if c.Catalog.Column == "" || c.Count.Column == "" {
		return fmt.Errorf("catalog and count columns are required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
