package service

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/EminDurmuSS/TestKgeRecipe/internal/logging"
)

const catalogKey = "unique_ingredients"

// IngredientCatalog caches the backend's ingredient list. Concurrent callers
// share one in-flight load; a failed load is retried on the next call.
type IngredientCatalog struct {
	client RecommendationClient
	loads  singleflight.Group

	mu     sync.RWMutex
	names  []string
	loaded bool
}

func NewIngredientCatalog(client RecommendationClient) *IngredientCatalog {
	return &IngredientCatalog{client: client}
}

func (c *IngredientCatalog) cached() ([]string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.names, c.loaded
}

// Names returns the cached list, loading it first if needed
func (c *IngredientCatalog) Names(ctx context.Context) ([]string, error) {
	if names, ok := c.cached(); ok {
		return names, nil
	}

	// the load outlives any single caller going away
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := c.loads.Do(catalogKey, func() (any, error) {
		if names, ok := c.cached(); ok {
			return names, nil
		}
		names, err := c.client.UniqueIngredients(loadCtx)
		if err != nil {
			logging.Ctx(loadCtx).Error().Err(err).Msg("Error while loading ingredients")
			return nil, err
		}

		c.mu.Lock()
		c.names, c.loaded = names, true
		c.mu.Unlock()
		logging.Ctx(loadCtx).Info().Int("count", len(names)).Msg("Ingredients loaded")
		return names, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}
