package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tkaraca/newsdesk/internal/config"
	"github.com/tkaraca/newsdesk/internal/models"
)

const articlesKey = "articles"

// RedisStore keeps the article set as a single JSON value, so SET is the
// atomic replace-all.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(cfg *config.Config) (*RedisStore, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{
		client: client,
		prefix: cfg.RedisPrefix,
	}, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

func (r *RedisStore) ReplaceAll(ctx context.Context, articles []models.Article) error {
	data, err := json.Marshal(articles)
	if err != nil {
		return fmt.Errorf("failed to marshal articles: %w", err)
	}
	if err := r.client.Set(ctx, r.prefix+articlesKey, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set error: %w", err)
	}
	return nil
}

func (r *RedisStore) GetAll(ctx context.Context) ([]models.Article, error) {
	data, err := r.client.Get(ctx, r.prefix+articlesKey).Bytes()
	if err == redis.Nil {
		return []models.Article{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get error: %w", err)
	}

	var articles []models.Article
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal articles: %w", err)
	}
	return articles, nil
}
