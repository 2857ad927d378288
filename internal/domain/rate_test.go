package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRateSet_UnionIsIdempotent(t *testing.T) {
	s := NewRateSet(
		CurrencyRate{QuoteCode: "USD", BaseIso: "BTC", Rate: 43000.12, Name: "US Dollar"},
		CurrencyRate{QuoteCode: "BTC", BaseIso: "ETH", Rate: 0.06},
	)

	require.Equal(t, s, s.Union(s))
	require.Equal(t, s, s.Union(s, s))
}

func TestRateSet_UnionKeepsConflictingRatesForSamePair(t *testing.T) {
	a := NewRateSet(CurrencyRate{QuoteCode: "BTC", BaseIso: "ETH", Rate: 0.06})
	b := NewRateSet(
		CurrencyRate{QuoteCode: "BTC", BaseIso: "ETH", Rate: 0.06},
		CurrencyRate{QuoteCode: "BTC", BaseIso: "ETH", Rate: 0.061},
	)

	u := a.Union(b)
	require.Equal(t, 2, u.Len())
	require.True(t, u.Has(CurrencyRate{QuoteCode: "BTC", BaseIso: "ETH", Rate: 0.061}))
	// sources untouched
	require.Equal(t, 1, a.Len())
}

func TestRateSet_UnionIsCommutative(t *testing.T) {
	a := NewRateSet(CurrencyRate{QuoteCode: "BTC", BaseIso: "ETH", Rate: 0.06})
	b := NewRateSet(CurrencyRate{QuoteCode: "USD", BaseIso: "BTC", Rate: 43000})

	require.Equal(t, a.Union(b), b.Union(a))
}

func TestRateSet_SliceIsOrdered(t *testing.T) {
	s := NewRateSet(
		CurrencyRate{QuoteCode: "USD", BaseIso: "BTC", Rate: 1},
		CurrencyRate{QuoteCode: "BTC", BaseIso: "ETH", Rate: 0.07},
		CurrencyRate{QuoteCode: "BTC", BaseIso: "ETH", Rate: 0.06},
		CurrencyRate{QuoteCode: "BTC", BaseIso: "BCH", Rate: 0.01},
	)

	got := s.Slice()
	require.Equal(t, []CurrencyRate{
		{QuoteCode: "BTC", BaseIso: "BCH", Rate: 0.01},
		{QuoteCode: "BTC", BaseIso: "ETH", Rate: 0.06},
		{QuoteCode: "BTC", BaseIso: "ETH", Rate: 0.07},
		{QuoteCode: "USD", BaseIso: "BTC", Rate: 1},
	}, got)
}

func TestRateSet_Find(t *testing.T) {
	s := NewRateSet(
		CurrencyRate{QuoteCode: "BTC", BaseIso: "ETH", Rate: 0.07},
		CurrencyRate{QuoteCode: "BTC", BaseIso: "ETH", Rate: 0.06},
	)

	r, ok := s.Find("ETH", "BTC")
	require.True(t, ok)
	require.InDelta(t, 0.06, r.Rate, 1e-12)

	_, ok = s.Find("BTC", "ETH")
	require.False(t, ok)
}

func TestFetchError_KindAndUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := error(NewFetchError(EnvelopeParseFailure, "fiat", cause))

	require.ErrorIs(t, err, cause)
	require.Equal(t, EnvelopeParseFailure, KindOf(err))
	require.Equal(t, FailureKind(0), KindOf(cause))
	require.Equal(t, "fiat: envelope_parse failure: boom", err.Error())
}
