package options

import (
	"context"
	"encoding/json"
	"time"

	"github.com/simplefs/catalog-backend/pkg/db/models"
	pkgerrors "github.com/simplefs/catalog-backend/pkg/errors"
	"github.com/simplefs/catalog-backend/pkg/logger"
	redisclient "github.com/simplefs/catalog-backend/pkg/redis"
)

const cacheKeySuffix = "options:all"

type catalogLoader interface {
	ListWithValues(ctx context.Context) ([]models.Option, error)
}

type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CacheKey(parts ...string) string
}

// Service exposes the option catalog with a Redis read-through cache.
// The cache is best-effort: failures fall back to the database and are
// logged, never surfaced to callers.
type Service struct {
	repo  catalogLoader
	cache cacheStore
	ttl   time.Duration
	logg  *logger.Logger
}

// NewService builds the option service. cache may be nil to disable caching.
func NewService(repo catalogLoader, cache cacheStore, ttl time.Duration, logg *logger.Logger) *Service {
	return &Service{repo: repo, cache: cache, ttl: ttl, logg: logg}
}

// Load returns the indexed option catalog, from cache when available.
func (s *Service) Load(ctx context.Context) (*Catalog, error) {
	if c := s.fromCache(ctx); c != nil {
		return c, nil
	}

	rows, err := s.repo.ListWithValues(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading filter options")
	}
	catalog := NewCatalog(rows)
	s.toCache(ctx, catalog)
	return catalog, nil
}

// Invalidate drops the cached snapshot so the next Load hits the database.
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, s.cache.CacheKey(cacheKeySuffix)); err != nil {
		s.warn(ctx, "dropping options cache", err)
	}
}

func (s *Service) fromCache(ctx context.Context) *Catalog {
	if s.cache == nil {
		return nil
	}
	payload, err := s.cache.Get(ctx, s.cache.CacheKey(cacheKeySuffix))
	if err != nil {
		if !redisclient.IsNil(err) {
			s.warn(ctx, "reading options cache", err)
		}
		return nil
	}
	var catalog Catalog
	if err := json.Unmarshal([]byte(payload), &catalog); err != nil {
		s.warn(ctx, "decoding options cache", err)
		return nil
	}
	catalog.Reindex()
	return &catalog
}

func (s *Service) toCache(ctx context.Context, catalog *Catalog) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(catalog)
	if err != nil {
		s.warn(ctx, "encoding options cache", err)
		return
	}
	if err := s.cache.Set(ctx, s.cache.CacheKey(cacheKeySuffix), string(payload), s.ttl); err != nil {
		s.warn(ctx, "writing options cache", err)
	}
}

func (s *Service) warn(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), msg)
}
