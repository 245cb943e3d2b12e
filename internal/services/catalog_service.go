package services

import (
	"context"
	"errors"
	"sync"

	"fitshop/internal/domain"
	"fitshop/internal/infra/cache"
	"fitshop/internal/logging"
	"fitshop/internal/metrics"
	"fitshop/internal/repository"

	"golang.org/x/sync/singleflight"
)

const catalogLimit = 50

type CatalogCache interface {
	Get(ctx context.Context) ([]domain.CatalogEntry, error)
	Set(ctx context.Context, entries []domain.CatalogEntry) error
	Invalidate(ctx context.Context) error
}

var _ CatalogCache = (*cache.CatalogCache)(nil)

type CatalogService struct {
	repo  repository.CatalogRepository
	cache CatalogCache
	group singleflight.Group

	// mu orders cache writes against invalidations; gen counts invalidations
	// so a load that straddles one does not write its stale read back.
	mu  sync.Mutex
	gen uint64
}

func NewCatalogService(r repository.CatalogRepository) *CatalogService {
	return &CatalogService{repo: r}
}

// SetCache enables read-through caching. Without it every List hits MySQL.
func (s *CatalogService) SetCache(c CatalogCache) {
	s.cache = c
}

func (s *CatalogService) List(ctx context.Context) ([]domain.CatalogEntry, error) {
	if s.cache != nil {
		entries, err := s.cache.Get(ctx)
		switch {
		case err == nil:
			metrics.CatalogCache.WithLabelValues("hit").Inc()
			return entries, nil
		case errors.Is(err, cache.ErrMiss):
			metrics.CatalogCache.WithLabelValues("miss").Inc()
		default:
			metrics.CatalogCache.WithLabelValues("error").Inc()
			logging.Ctx(ctx).Warn().Err(err).Msg("catalog cache read failed")
		}
	}

	// concurrent misses share one query
	v, err, _ := s.group.Do("catalog", func() (any, error) {
		return s.load(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.CatalogEntry), nil
}

func (s *CatalogService) load(ctx context.Context) ([]domain.CatalogEntry, error) {
	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	entries, err := s.repo.ListActive(ctx, catalogLimit)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.store(ctx, gen, entries)
	}
	return entries, nil
}

func (s *CatalogService) store(ctx context.Context, gen uint64, entries []domain.CatalogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		logging.Ctx(ctx).Debug().Msg("catalog invalidated during load, not caching")
		return
	}
	if err := s.cache.Set(ctx, entries); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("catalog cache write failed")
	}
}

// Warmup fills the cache at startup.
func (s *CatalogService) Warmup(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	entries, err := s.load(ctx)
	if err != nil {
		return err
	}
	logging.Ctx(ctx).Info().Int("products", len(entries)).Msg("catalog cache warmed")
	return nil
}

// Invalidate drops the cached catalog after stock changes.
func (s *CatalogService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.mu.Lock()
	s.gen++
	err := s.cache.Invalidate(ctx)
	s.mu.Unlock()
	// callers arriving from now on start a fresh load
	s.group.Forget("catalog")
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}
