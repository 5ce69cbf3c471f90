// Package session persists gateway credentials between CLI invocations.
package session

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wolfman30/dental-clinic-client/internal/config"
	"github.com/wolfman30/dental-clinic-client/internal/gateway"
)

// ErrNotFound is returned by Load when nothing has been saved.
var ErrNotFound = errors.New("session: not found")

// Record is what a Store keeps: the credentials and the backend they belong
// to.
type Record struct {
	BaseURL string          `json:"baseUrl"`
	Session gateway.Session `json:"session"`
	SavedAt time.Time       `json:"savedAt"`
}

// For returns the stored credentials when they were issued by baseURL.
func (r Record) For(baseURL string) (gateway.Session, bool) {
	if r.Session.Empty() || !strings.EqualFold(strings.TrimRight(r.BaseURL, "/"), strings.TrimRight(baseURL, "/")) {
		return gateway.Session{}, false
	}
	return r.Session, true
}

// Store persists one Record.
type Store interface {
	Load(ctx context.Context) (Record, error)
	Save(ctx context.Context, rec Record) error
	Clear(ctx context.Context) error
}

// Open returns the store selected by cfg.SessionStore ("file" or "redis").
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("session: config is required")
	}
	switch cfg.SessionStore {
	case "", "file":
		return NewFileStore(cfg.SessionFile), nil
	case "redis":
		client := BuildRedisClient(cfg)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("session: redis %s: %w", cfg.RedisAddr, err)
		}
		return NewRedisStore(client, RedisKey(cfg.APIBaseURL), cfg.SessionTTL), nil
	default:
		return nil, fmt.Errorf("session: unknown store %q", cfg.SessionStore)
	}
}

// BuildRedisClient returns a client for cfg's Redis settings.
func BuildRedisClient(cfg *config.Config) *redis.Client {
	opts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return redis.NewClient(opts)
}
