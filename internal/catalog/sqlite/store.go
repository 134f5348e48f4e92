// Package sqlite provides a SQLite-backed part/color catalog store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/brickscope/brickscope/internal/catalog"
	"github.com/brickscope/brickscope/internal/catalog/sqlite/migrations"
	"github.com/brickscope/brickscope/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// Store persists catalog entries in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite catalog store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("catalog path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutPart inserts or updates one part entry. Negative weights are clamped
// to 0 to match the distribution engine's permissive weight policy.
func (s *Store) PutPart(ctx context.Context, entry catalog.Entry) error {
	return s.put(ctx, "parts", entry)
}

// PutColor inserts or updates one color entry.
func (s *Store) PutColor(ctx context.Context, entry catalog.Entry) error {
	return s.put(ctx, "colors", entry)
}

// Part returns the part entry with the given ID.
func (s *Store) Part(ctx context.Context, id string) (catalog.Entry, error) {
	return s.get(ctx, "parts", id)
}

// Color returns the color entry with the given ID.
func (s *Store) Color(ctx context.Context, id string) (catalog.Entry, error) {
	return s.get(ctx, "colors", id)
}

// Parts lists all part entries in name order.
func (s *Store) Parts(ctx context.Context) ([]catalog.Entry, error) {
	return s.list(ctx, "parts")
}

// Colors lists all color entries in name order.
func (s *Store) Colors(ctx context.Context) ([]catalog.Entry, error) {
	return s.list(ctx, "colors")
}

func (s *Store) put(ctx context.Context, table string, entry catalog.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("catalog store is not configured")
	}
	id := strings.TrimSpace(entry.ID)
	name := strings.TrimSpace(entry.Name)
	if id == "" {
		return fmt.Errorf("entry id is required")
	}
	if name == "" {
		return fmt.Errorf("entry name is required")
	}
	weight := entry.Weight
	if weight < 0 {
		weight = 0
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO `+table+` (id, name, weight, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   weight = excluded.weight,
		   updated_at = excluded.updated_at`,
		id,
		name,
		weight,
		time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("upsert %s entry: %w", table, err)
	}
	return nil
}

func (s *Store) get(ctx context.Context, table, id string) (catalog.Entry, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Entry{}, err
	}
	if s == nil || s.sqlDB == nil {
		return catalog.Entry{}, fmt.Errorf("catalog store is not configured")
	}

	var entry catalog.Entry
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, name, weight FROM `+table+` WHERE id = ?`,
		strings.TrimSpace(id),
	)
	if err := row.Scan(&entry.ID, &entry.Name, &entry.Weight); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.Entry{}, catalog.ErrNotFound
		}
		return catalog.Entry{}, fmt.Errorf("get %s entry: %w", table, err)
	}
	return entry, nil
}

func (s *Store) list(ctx context.Context, table string) ([]catalog.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("catalog store is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, name, weight FROM `+table+` ORDER BY name, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list %s entries: %w", table, err)
	}
	defer rows.Close()

	var entries []catalog.Entry
	for rows.Next() {
		var entry catalog.Entry
		if err := rows.Scan(&entry.ID, &entry.Name, &entry.Weight); err != nil {
			return nil, fmt.Errorf("scan %s entry: %w", table, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s entries: %w", table, err)
	}
	return entries, nil
}
