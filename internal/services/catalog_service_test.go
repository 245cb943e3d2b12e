package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fitshop/internal/domain"
	"fitshop/internal/infra/cache"
	"fitshop/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testCatalog = []domain.CatalogEntry{{ID: 1, Name: TestProductName, Price: 24.99, InStock: true, StockQuantity: 5}}

func TestCatalogService_List(t *testing.T) {
	tests := []struct {
		name       string
		withCache  bool
		setupMocks func(*mocks.MockCatalogRepository, *mocks.MockCatalogCache)
	}{
		{
			name: "no cache configured",
			setupMocks: func(repo *mocks.MockCatalogRepository, _ *mocks.MockCatalogCache) {
				repo.On("ListActive", mock.Anything, 50).Return(testCatalog, nil).Once()
			},
		},
		{
			name:      "cache hit skips the database",
			withCache: true,
			setupMocks: func(repo *mocks.MockCatalogRepository, c *mocks.MockCatalogCache) {
				c.On("Get", mock.Anything).Return(testCatalog, nil)
			},
		},
		{
			name:      "cache miss loads and stores",
			withCache: true,
			setupMocks: func(repo *mocks.MockCatalogRepository, c *mocks.MockCatalogCache) {
				c.On("Get", mock.Anything).Return(nil, cache.ErrMiss)
				repo.On("ListActive", mock.Anything, 50).Return(testCatalog, nil).Once()
				c.On("Set", mock.Anything, testCatalog).Return(nil)
			},
		},
		{
			name:      "broken cache falls through to the database",
			withCache: true,
			setupMocks: func(repo *mocks.MockCatalogRepository, c *mocks.MockCatalogCache) {
				c.On("Get", mock.Anything).Return(nil, errors.New("connection refused"))
				repo.On("ListActive", mock.Anything, 50).Return(testCatalog, nil).Once()
				c.On("Set", mock.Anything, testCatalog).Return(errors.New("connection refused"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockCatalogRepository)
			c := new(mocks.MockCatalogCache)
			tt.setupMocks(repo, c)

			service := NewCatalogService(repo)
			if tt.withCache {
				service.SetCache(c)
			}

			entries, err := service.List(context.Background())
			require.NoError(t, err)
			assert.Equal(t, testCatalog, entries)
			repo.AssertExpectations(t)
			c.AssertExpectations(t)
		})
	}
}

func TestCatalogService_ConcurrentMissesShareOneQuery(t *testing.T) {
	repo := new(mocks.MockCatalogRepository)
	release := make(chan struct{})
	repo.On("ListActive", mock.Anything, 50).Return(testCatalog, nil).Run(func(mock.Arguments) {
		<-release
	})

	service := NewCatalogService(repo)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			entries, err := service.List(context.Background())
			assert.NoError(t, err)
			assert.Len(t, entries, 1)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	repo.AssertNumberOfCalls(t, "ListActive", 1)
}

func TestCatalogService_WarmupAndInvalidate(t *testing.T) {
	repo := new(mocks.MockCatalogRepository)
	c := new(mocks.MockCatalogCache)
	repo.On("ListActive", mock.Anything, 50).Return(testCatalog, nil)
	c.On("Set", mock.Anything, testCatalog).Return(nil)
	c.On("Invalidate", mock.Anything).Return(nil)

	service := NewCatalogService(repo)
	assert.NoError(t, service.Warmup(context.Background()))
	repo.AssertNotCalled(t, "ListActive", mock.Anything, mock.Anything)

	service.SetCache(c)
	require.NoError(t, service.Warmup(context.Background()))
	service.Invalidate(context.Background())

	c.AssertCalled(t, "Set", mock.Anything, testCatalog)
	c.AssertCalled(t, "Invalidate", mock.Anything)
}

func TestCatalogService_InvalidateDuringLoadSkipsStaleWrite(t *testing.T) {
	repo := new(mocks.MockCatalogRepository)
	c := new(mocks.MockCatalogCache)
	stale := []domain.CatalogEntry{{ID: 1, Name: TestProductName, StockQuantity: 5, InStock: true}}
	fresh := []domain.CatalogEntry{{ID: 1, Name: TestProductName, StockQuantity: 3, InStock: true}}

	entered := make(chan struct{})
	release := make(chan struct{})
	repo.On("ListActive", mock.Anything, 50).Return(stale, nil).Run(func(mock.Arguments) {
		close(entered)
		<-release
	}).Once()
	repo.On("ListActive", mock.Anything, 50).Return(fresh, nil).Once()
	c.On("Get", mock.Anything).Return(nil, cache.ErrMiss)
	c.On("Invalidate", mock.Anything).Return(nil)
	c.On("Set", mock.Anything, mock.Anything).Return(nil)

	service := NewCatalogService(repo)
	service.SetCache(c)

	done := make(chan struct{})
	go func() {
		defer close(done)
		entries, err := service.List(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, stale, entries)
	}()

	<-entered
	service.Invalidate(context.Background())
	close(release)
	<-done

	c.AssertNotCalled(t, "Set", mock.Anything, stale)

	entries, err := service.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fresh, entries)
	c.AssertCalled(t, "Set", mock.Anything, fresh)
	c.AssertNumberOfCalls(t, "Set", 1)
}
