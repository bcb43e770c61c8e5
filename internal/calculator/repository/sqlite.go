package repository

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"sass-calc/internal/calculator/models"
)

// ============================================================
// SQLite History Store
// ============================================================

//go:embed migrations/*.sql
var migrations embed.FS

const queryTimeout = 5 * time.Second

// SQLiteStore реализует history.Store поверх SQLite в памяти.
// База живет ровно столько, сколько процесс, на диск ничего не пишется.
type SQLiteStore struct {
	db *sql.DB
}

func New(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Init применяет встроенные миграции.
func (s *SQLiteStore) Init(ctx context.Context) error {
	if err := s.runMigrations(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Prepend(entry models.HistoryEntry, limit int) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
        INSERT INTO history (id, expression, result, unit, timestamp, created_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `,
		entry.ID,
		entry.Calculation.Expression,
		entry.Result,
		string(entry.Calculation.Unit),
		entry.Timestamp,
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}

	if limit > 0 {
		_, err = tx.ExecContext(ctx, `
            DELETE FROM history
            WHERE seq NOT IN (SELECT seq FROM history ORDER BY seq DESC LIMIT ?)
        `, limit)
		if err != nil {
			return fmt.Errorf("trim history: %w", err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) List() ([]models.HistoryEntry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
        SELECT id, expression, result, unit, timestamp, created_at
        FROM history
        ORDER BY seq DESC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.HistoryEntry{}
	for rows.Next() {
		var (
			e         models.HistoryEntry
			unit      string
			createdAt string
		)
		if err := rows.Scan(&e.ID, &e.Calculation.Expression, &e.Result, &unit, &e.Timestamp, &createdAt); err != nil {
			return nil, err
		}
		e.Calculation.Unit = models.Unit(unit)
		e.Calculation.Result = e.Result
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `DELETE FROM history`)
	return err
}

func (s *SQLiteStore) Count() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM history`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// ============================================================
// Migrations
// ============================================================

func (s *SQLiteStore) runMigrations(ctx context.Context) error {
	files, err := migrations.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	for _, f := range files {
		data, err := migrations.ReadFile("migrations/" + f.Name())
		if err != nil {
			return fmt.Errorf("read migration %s: %w", f.Name(), err)
		}
		if _, err := s.db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", f.Name(), err)
		}
	}
	return nil
}

// OpenInMemory открывает SQLite в памяти. Одно соединение, иначе
// каждое новое соединение увидит свою пустую базу.
func OpenInMemory() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)
	return db, nil
}
