// Package storage persists extraction records. The store is append-only:
// the pipeline hands over finished records and never mutates them, and the
// core never touches files or connections directly.
package storage

import (
	"context"
	"fmt"

	"github.com/dharma-project/fir-extractor/internal/domain"
	"github.com/dharma-project/fir-extractor/internal/logger"
)

// RecordStore is the persistence boundary for extraction results.
type RecordStore interface {
	// Append adds one record to the end of the stored sequence.
	Append(ctx context.Context, rec *domain.FIRRecord) error
	// LoadAll returns every stored record in append order.
	LoadAll(ctx context.Context) ([]*domain.FIRRecord, error)
	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
	// Close releases the underlying connection.
	Close() error
}

// Config holds record store configuration.
type Config struct {
	Driver string // "sqlite" or "postgres"

	// sqlite
	Path string

	// postgres
	Host           string
	Port           int
	User           string
	Password       string
	Database       string
	SSLMode        string
	MaxConnections int
	MaxIdleConns   int
}

// New opens the record store selected by cfg.Driver.
func New(cfg Config, log logger.Logger) (RecordStore, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return NewSQLiteStore(cfg.Path, log)
	case "postgres":
		return NewPostgresStore(cfg, log)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
