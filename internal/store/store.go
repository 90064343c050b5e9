// Package store holds the last successfully fetched article set. The store
// keeps exactly one set: every successful fetch replaces the previous one
// wholly, there is no merge and no eviction.
package store

import (
	"context"
	"fmt"

	"github.com/tkaraca/newsdesk/internal/config"
	"github.com/tkaraca/newsdesk/internal/models"
)

// Store persists the most recent article set.
//
// ReplaceAll swaps the stored set atomically relative to reads that start
// after it returns. GetAll on an empty store returns an empty slice, not an
// error.
type Store interface {
	ReplaceAll(ctx context.Context, articles []models.Article) error
	GetAll(ctx context.Context) ([]models.Article, error)
	Close() error
}

// Open builds the store backend selected by the configuration.
func Open(cfg *config.Config) (Store, error) {
	switch cfg.StoreBackend {
	case "redis":
		return NewRedisStore(cfg)
	case "file":
		return NewFileStore(cfg.SnapshotPath)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
