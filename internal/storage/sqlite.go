package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // sqlite driver

	"github.com/dharma-project/fir-extractor/internal/domain"
	"github.com/dharma-project/fir-extractor/internal/logger"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS fir_records (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	record     TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// SQLiteStore is the default file-backed record store. Records are stored
// as JSON text rows so the stored form matches the export format exactly.
type SQLiteStore struct {
	db     *sql.DB
	logger logger.Logger
}

// NewSQLiteStore opens (or creates) the store at path.
func NewSQLiteStore(path string, log logger.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store %s: %w", path, err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create fir_records table: %w", err)
	}

	log.Info("sqlite record store ready", logger.String("path", path))

	return &SQLiteStore{db: db, logger: log}, nil
}

// Append adds one record to the end of the stored sequence.
func (s *SQLiteStore) Append(ctx context.Context, rec *domain.FIRRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO fir_records (record) VALUES (?)`, string(data)); err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	return nil
}

// LoadAll returns every stored record in append order.
func (s *SQLiteStore) LoadAll(ctx context.Context) ([]*domain.FIRRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT record FROM fir_records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	defer rows.Close()

	records := []*domain.FIRRecord{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec := &domain.FIRRecord{}
		if err := json.Unmarshal([]byte(data), rec); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// Ping verifies the store is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
