package cache

import (
	"testing"

	"ratefeed/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestRateCache_SetBatchAndGet(t *testing.T) {
	c, err := NewRateCache(128)
	require.NoError(t, err)
	defer c.Close()

	eth := domain.CurrencyRate{QuoteCode: "BTC", BaseIso: "ETH", Rate: 0.06}
	usd := domain.CurrencyRate{QuoteCode: "USD", BaseIso: "BTC", Rate: 43000.12, Name: "US Dollar"}
	c.SetBatch([]domain.CurrencyRate{eth, usd})

	got, ok := c.Get(domain.RatePair{Base: "ETH", Quote: "BTC"})
	require.True(t, ok)
	require.Equal(t, eth, got)

	got, ok = c.Get(domain.RatePair{Base: "BTC", Quote: "USD"})
	require.True(t, ok)
	require.Equal(t, usd, got)
}

func TestRateCache_GetMissWhenEmpty(t *testing.T) {
	c, err := NewRateCache(64)
	require.NoError(t, err)
	defer c.Close()

	r, ok := c.Get(domain.RatePair{Base: "ETH", Quote: "BTC"})
	require.False(t, ok)
	require.Equal(t, domain.CurrencyRate{}, r)
}

func TestRateCache_LaterRateForSamePairWins(t *testing.T) {
	c, err := NewRateCache(64)
	require.NoError(t, err)
	defer c.Close()

	c.SetBatch([]domain.CurrencyRate{{QuoteCode: "BTC", BaseIso: "ETH", Rate: 0.05}})
	c.SetBatch([]domain.CurrencyRate{{QuoteCode: "BTC", BaseIso: "ETH", Rate: 0.07}})

	got, ok := c.Get(domain.RatePair{Base: "ETH", Quote: "BTC"})
	require.True(t, ok)
	require.Equal(t, 0.07, got.Rate)
}

func TestNewRateCache_RejectsNonPositiveSize(t *testing.T) {
	_, err := NewRateCache(0)
	require.Error(t, err)
}
