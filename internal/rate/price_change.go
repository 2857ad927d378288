package rate

import (
	"context"
	"encoding/json"
	"errors"
	"ratefeed/internal/adapters"
	"ratefeed/internal/domain"
	"ratefeed/internal/platform/metrics"
	"strings"

	"github.com/sirupsen/logrus"
)

const sourcePriceChange = "price_change"

var errAllChunksFailed = errors.New("all price change chunks failed")

// PriceChangeFetcher reads 24h price change percentages from the
// multi-symbol full price endpoint.
type PriceChangeFetcher struct {
	getter       adapters.HTTPGetter
	priceHost    string
	symbolsLimit int
}

// Fetch24hChange returns the 24h change percentage per base code. Chunks
// that fail are skipped; an error is returned only when every chunk failed.
func (f *PriceChangeFetcher) Fetch24hChange(ctx context.Context, codes []string, quote string) (map[string]float64, error) {
	quote = strings.ToUpper(quote)
	changes := make(map[string]float64, len(codes))

	var attempted, failed int
	for _, chunk := range Chunk(codes, f.symbolsLimit) {
		if chunk == "" {
			continue
		}
		attempted++
		if err := f.fetchChunk(ctx, chunk, quote, changes); err != nil {
			failed++
			logrus.WithError(err).WithField("chunk", chunk).Warn("Price change chunk skipped")
			metrics.ObserveFetch(sourcePriceChange, outcomeOf(err), 0)
		}
	}

	if attempted > 0 && failed == attempted {
		return nil, errAllChunksFailed
	}
	metrics.ObserveFetch(sourcePriceChange, metrics.OutcomeSuccess, len(changes))
	return changes, nil
}

func (f *PriceChangeFetcher) fetchChunk(ctx context.Context, chunk string, quote string, into map[string]float64) error {
	resp, err := f.getter.Get(ctx, priceQueryURL(f.priceHost, "/pricemultifull", chunk, quote))
	if err != nil {
		return domain.NewFetchError(domain.TransportFailure, sourcePriceChange, err)
	}

	var full priceMultiFullResponse
	if err = json.Unmarshal(resp.Body, &full); err != nil {
		return domain.NewFetchError(domain.EnvelopeParseFailure, sourcePriceChange, err)
	}
	for base, quotes := range full.Raw {
		entry, ok := quotes[quote]
		if !ok || entry.ChangePct24h == nil {
			continue
		}
		into[base] = entry.ChangePct24h.InexactFloat64()
	}
	return nil
}

func NewPriceChangeFetcher(getter adapters.HTTPGetter, priceHost string, symbolsLimit int) *PriceChangeFetcher {
	if priceHost == "" {
		priceHost = DefaultPriceHost
	}
	if symbolsLimit <= 0 {
		symbolsLimit = DefaultSymbolsLimit
	}
	return &PriceChangeFetcher{
		getter:       getter,
		priceHost:    strings.TrimSuffix(priceHost, "/"),
		symbolsLimit: symbolsLimit,
	}
}
