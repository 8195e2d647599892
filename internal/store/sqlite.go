package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"sdkmatrix/internal/catalog"
	"sdkmatrix/internal/matrix"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists built section snapshots so tooling commands can reuse
// a build instead of re-reading and re-merging the catalogs. The snapshot is
// keyed by the catalog content hash; a hash mismatch means the snapshot is
// stale and the caller should rebuild.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS sections (
			position INTEGER,
			key TEXT PRIMARY KEY,
			title TEXT,
			description TEXT,
			integration_paths JSON,
			features JSON
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sections_position ON sections(position);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// SaveSnapshot replaces the stored snapshot with the given sections.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, catalogHash string, sections []matrix.Section) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sections`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sections (position, key, title, description, integration_paths, features)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, sec := range sections {
		paths, err := json.Marshal(sec.IntegrationPaths)
		if err != nil {
			return err
		}
		features, err := json.Marshal(sec.Features)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(i, sec.Key, sec.Title, sec.Description, paths, features); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES ('catalog_hash', ?)
		ON CONFLICT(key) DO UPDATE SET value=excluded.value
	`, catalogHash); err != nil {
		return err
	}

	return tx.Commit()
}

// LoadSnapshot returns the stored sections and the catalog hash they were
// built from. A missing snapshot returns sql.ErrNoRows.
func (s *SQLiteStore) LoadSnapshot(ctx context.Context) (string, []matrix.Section, error) {
	var hash string
	row := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'catalog_hash'`)
	if err := row.Scan(&hash); err != nil {
		return "", nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT key, title, description, integration_paths, features
		FROM sections ORDER BY position
	`)
	if err != nil {
		return "", nil, fmt.Errorf("failed to query sections: %w", err)
	}
	defer rows.Close()

	var sections []matrix.Section
	for rows.Next() {
		var sec matrix.Section
		var paths, features []byte
		if err := rows.Scan(&sec.Key, &sec.Title, &sec.Description, &paths, &features); err != nil {
			return "", nil, fmt.Errorf("failed to scan section: %w", err)
		}
		if len(paths) > 0 {
			if err := json.Unmarshal(paths, &sec.IntegrationPaths); err != nil {
				return "", nil, fmt.Errorf("failed to decode integration paths: %w", err)
			}
		}
		if len(features) > 0 {
			if err := json.Unmarshal(features, &sec.Features); err != nil {
				return "", nil, fmt.Errorf("failed to decode features: %w", err)
			}
		}
		sections = append(sections, sec)
	}
	if err := rows.Err(); err != nil {
		return "", nil, err
	}

	return hash, sections, nil
}

// Fresh reports whether the stored snapshot was built from the given
// catalog.
func (s *SQLiteStore) Fresh(ctx context.Context, cat *catalog.Catalog) bool {
	var hash string
	row := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'catalog_hash'`)
	if err := row.Scan(&hash); err != nil {
		return false
	}
	return hash == cat.Hash()
}
