package domain

import (
	"time"

	"github.com/pbaille/catkw/internal/taxonomy"
)

// Run is one saved keyword derivation
type Run struct {
	ID             string    `json:"id"`
	CategoriesFile string    `json:"categories_file,omitempty"`
	BlacklistFile  string    `json:"blacklist_file,omitempty"`
	PathCount      int       `json:"path_count"`
	BlacklistCount int       `json:"blacklist_count"`
	CreatedAt      time.Time `json:"created_at"`

	// Report is only loaded by GetRun
	Report *taxonomy.Report `json:"report,omitempty"`
}

// RunSource describes the inputs a run was derived from
type RunSource struct {
	CategoriesFile string
	BlacklistFile  string
	PathCount      int
	BlacklistCount int
}

// Entry kinds stored per run
const (
	KindKeyword  = "keyword"
	KindUnknown  = "unknown"
	KindNonLeaf  = "non_leaf"
	KindResidual = "residual"
	KindProposal = "proposal"
)
