package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/dharma-project/fir-extractor/internal/domain"
	"github.com/dharma-project/fir-extractor/internal/logger"
)

const (
	// defaultConnMaxLifetime bounds connection reuse.
	defaultConnMaxLifetime = 5 * time.Minute
	// defaultPingTimeout is the timeout for the startup connectivity check.
	defaultPingTimeout = 5 * time.Second
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS fir_records (
	id         SERIAL PRIMARY KEY,
	record     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStore persists records in a JSONB column, for deployments that
// already run PostgreSQL.
type PostgresStore struct {
	db     *sqlx.DB
	logger logger.Logger
}

// NewPostgresStore connects to PostgreSQL and ensures the records table.
func NewPostgresStore(cfg Config, log logger.Logger) (*PostgresStore, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(defaultConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), defaultPingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.ExecContext(ctx, postgresSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create fir_records table: %w", err)
	}

	log.Info("postgres record store ready",
		logger.String("host", cfg.Host),
		logger.String("database", cfg.Database))

	return &PostgresStore{db: db, logger: log}, nil
}

// Append adds one record to the end of the stored sequence.
func (s *PostgresStore) Append(ctx context.Context, rec *domain.FIRRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO fir_records (record) VALUES ($1)`, string(data)); err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	return nil
}

// LoadAll returns every stored record in append order.
func (s *PostgresStore) LoadAll(ctx context.Context) ([]*domain.FIRRecord, error) {
	var rows []string
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT record FROM fir_records ORDER BY id`); err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	records := make([]*domain.FIRRecord, 0, len(rows))
	for _, data := range rows {
		rec := &domain.FIRRecord{}
		if err := json.Unmarshal([]byte(data), rec); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Ping verifies the store is reachable.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
