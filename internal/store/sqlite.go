package store

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pbaille/catkw/internal/domain"
	"github.com/pbaille/catkw/internal/taxonomy"
)

//go:embed schema.sql
var schema string

// ErrRunNotFound is returned when no run matches an id or prefix
var ErrRunNotFound = errors.New("run not found")

// Store handles database operations
type Store struct {
	db *sql.DB
}

// New creates a new Store with the given database path
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Initialize schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores a derivation report and returns the new run
func (s *Store) SaveRun(src domain.RunSource, r *taxonomy.Report) (*domain.Run, error) {
	run := &domain.Run{
		ID:             uuid.New().String(),
		CategoriesFile: src.CategoriesFile,
		BlacklistFile:  src.BlacklistFile,
		PathCount:      src.PathCount,
		BlacklistCount: src.BlacklistCount,
		CreatedAt:      time.Now().UTC(),
		Report:         r,
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO runs (id, categories_file, blacklist_file, path_count, blacklist_count, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		run.ID, run.CategoriesFile, run.BlacklistFile, run.PathCount, run.BlacklistCount, run.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}

	entries := []struct {
		kind  string
		paths []string
	}{
		{domain.KindKeyword, r.Keywords},
		{domain.KindUnknown, r.Unknown},
		{domain.KindNonLeaf, r.NonLeaf},
		{domain.KindResidual, r.Residual},
		{domain.KindProposal, r.Proposals},
	}
	for _, e := range entries {
		for i, p := range e.paths {
			_, err := tx.Exec(
				"INSERT INTO run_entries (run_id, kind, position, path) VALUES (?, ?, ?, ?)",
				run.ID, e.kind, i, p,
			)
			if err != nil {
				return nil, fmt.Errorf("insert %s entry: %w", e.kind, err)
			}
		}
	}

	for _, c := range r.Coverage {
		_, err := tx.Exec(
			"INSERT INTO run_coverage (run_id, name, blacklisted, total) VALUES (?, ?, ?, ?)",
			run.ID, c.Name, c.Blacklisted, c.Total,
		)
		if err != nil {
			return nil, fmt.Errorf("insert coverage: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit run: %w", err)
	}
	return run, nil
}

// ListRuns returns recent runs without their reports
func (s *Store) ListRuns(limit, offset int) ([]domain.Run, error) {
	rows, err := s.db.Query(
		"SELECT id, categories_file, blacklist_file, path_count, blacklist_count, created_at FROM runs ORDER BY created_at DESC LIMIT ? OFFSET ?",
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.Run
	for rows.Next() {
		var r domain.Run
		if err := rows.Scan(&r.ID, &r.CategoriesFile, &r.BlacklistFile, &r.PathCount, &r.BlacklistCount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// GetRun retrieves a run by ID with its report
func (s *Store) GetRun(id string) (*domain.Run, error) {
	var run domain.Run
	err := s.db.QueryRow(
		"SELECT id, categories_file, blacklist_file, path_count, blacklist_count, created_at FROM runs WHERE id = ?",
		id,
	).Scan(&run.ID, &run.CategoriesFile, &run.BlacklistFile, &run.PathCount, &run.BlacklistCount, &run.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}

	report, err := s.loadReport(id)
	if err != nil {
		return nil, err
	}
	run.Report = report

	return &run, nil
}

// FindRun resolves a unique id prefix to a run
func (s *Store) FindRun(prefix string) (*domain.Run, error) {
	rows, err := s.db.Query("SELECT id FROM runs WHERE id LIKE ? LIMIT 2", prefix+"%")
	if err != nil {
		return nil, fmt.Errorf("find run: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan run id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()

	switch len(ids) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, prefix)
	case 1:
		return s.GetRun(ids[0])
	default:
		return nil, fmt.Errorf("ambiguous run prefix: %s", prefix)
	}
}

func (s *Store) loadReport(runID string) (*taxonomy.Report, error) {
	r := &taxonomy.Report{}

	rows, err := s.db.Query(
		"SELECT kind, path FROM run_entries WHERE run_id = ? ORDER BY kind, position",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("get run entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind, path string
		if err := rows.Scan(&kind, &path); err != nil {
			return nil, fmt.Errorf("scan run entry: %w", err)
		}
		switch kind {
		case domain.KindKeyword:
			r.Keywords = append(r.Keywords, path)
		case domain.KindUnknown:
			r.Unknown = append(r.Unknown, path)
		case domain.KindNonLeaf:
			r.NonLeaf = append(r.NonLeaf, path)
		case domain.KindResidual:
			r.Residual = append(r.Residual, path)
		case domain.KindProposal:
			r.Proposals = append(r.Proposals, path)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get run entries: %w", err)
	}

	cov, err := s.db.Query(
		"SELECT name, blacklisted, total FROM run_coverage WHERE run_id = ? ORDER BY name",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("get run coverage: %w", err)
	}
	defer cov.Close()

	for cov.Next() {
		var c taxonomy.RootCoverage
		if err := cov.Scan(&c.Name, &c.Blacklisted, &c.Total); err != nil {
			return nil, fmt.Errorf("scan coverage: %w", err)
		}
		r.Coverage = append(r.Coverage, c)
	}

	return r, cov.Err()
}
