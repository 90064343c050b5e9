package store

import (
	"context"
	"sync"

	"github.com/tkaraca/newsdesk/internal/models"
)

// MemoryStore is an in-process store used in tests and as a fallback when no
// persistent backend is configured. Contents do not survive a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	articles []models.Article
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Close() error {
	return nil
}

func (m *MemoryStore) ReplaceAll(ctx context.Context, articles []models.Article) error {
	cp := make([]models.Article, len(articles))
	copy(cp, articles)

	m.mu.Lock()
	m.articles = cp
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) GetAll(ctx context.Context) ([]models.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cp := make([]models.Article, len(m.articles))
	copy(cp, m.articles)
	return cp, nil
}
