package cache

import (
	"fmt"
	"ratefeed/internal/domain"

	"github.com/dgraph-io/ristretto"
)

// RistrettoRateCache holds the last stored value of every rate pair. The
// aggregator reads pivots from it and the read API serves lookups from it.
type RistrettoRateCache struct {
	cache *ristretto.Cache
}

func NewRateCache(maxItems int64) (*RistrettoRateCache, error) {
	if maxItems <= 0 {
		return nil, fmt.Errorf("create rate cache failed: max items must be positive, got %d", maxItems)
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create rate cache failed: %w", err)
	}
	return &RistrettoRateCache{cache: c}, nil
}

func (c *RistrettoRateCache) Get(pair domain.RatePair) (domain.CurrencyRate, bool) {
	if v, ok := c.cache.Get(toKey(pair)); ok {
		r, ok := v.(domain.CurrencyRate)
		return r, ok
	}
	return domain.CurrencyRate{}, false
}

// SetBatch stores rates keyed by pair; a later rate for the same pair
// replaces the earlier one. Writes are visible once SetBatch returns.
func (c *RistrettoRateCache) SetBatch(rates []domain.CurrencyRate) {
	for _, r := range rates {
		c.cache.Set(toKey(r.Pair()), r, 1)
	}
	c.cache.Wait()
}

func (c *RistrettoRateCache) Close() { c.cache.Close() }

func toKey(p domain.RatePair) string { return p.Base + ":" + p.Quote }
