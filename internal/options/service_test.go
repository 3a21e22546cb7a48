package options

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/simplefs/catalog-backend/pkg/db/models"
)

type fakeLoader struct {
	rows  []models.Option
	err   error
	calls int
}

func (f *fakeLoader) ListWithValues(context.Context) ([]models.Option, error) {
	f.calls++
	return f.rows, f.err
}

type fakeCache struct {
	data map[string]string
	sets int
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string]string{}} }

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", goredis.Nil
	}
	return v, nil
}

func (f *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.sets++
	f.data[key] = value.(string)
	return nil
}

func (f *fakeCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func (f *fakeCache) CacheKey(parts ...string) string {
	key := "cache"
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

func TestServiceLoadPopulatesCache(t *testing.T) {
	loader := &fakeLoader{rows: sampleRows()}
	cache := newFakeCache()
	svc := NewService(loader, cache, time.Minute, nil)

	c, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Options) != 2 {
		t.Fatalf("options = %d, want 2", len(c.Options))
	}
	if cache.sets != 1 {
		t.Fatalf("cache sets = %d, want 1", cache.sets)
	}

	// Second call is served from cache with working lookups.
	c2, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("Load from cache: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("loader calls = %d, want 1", loader.calls)
	}
	if _, ok := c2.OptionByName("weight"); !ok {
		t.Fatal("cached catalog lost its index")
	}
}

func TestServiceLoadBypassesBrokenCache(t *testing.T) {
	loader := &fakeLoader{rows: sampleRows()}
	cache := newFakeCache()
	cache.data[cache.CacheKey(cacheKeySuffix)] = "{not json"
	svc := NewService(loader, cache, time.Minute, nil)

	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("loader calls = %d, want 1", loader.calls)
	}
}

func TestServiceLoadRepoError(t *testing.T) {
	loader := &fakeLoader{err: errors.New("connection refused")}
	svc := NewService(loader, nil, time.Minute, nil)

	if _, err := svc.Load(context.Background()); err == nil {
		t.Fatal("expected error from failing repository")
	}
}

func TestServiceInvalidate(t *testing.T) {
	loader := &fakeLoader{rows: sampleRows()}
	cache := newFakeCache()
	svc := NewService(loader, cache, time.Minute, nil)

	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	svc.Invalidate(context.Background())
	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load after invalidate: %v", err)
	}
	if loader.calls != 2 {
		t.Fatalf("loader calls = %d, want 2", loader.calls)
	}
}
