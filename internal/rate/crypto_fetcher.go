package rate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"ratefeed/internal/adapters"
	"ratefeed/internal/domain"
	"ratefeed/internal/platform/metrics"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	sourceCrypto = "crypto"

	// DefaultPriceHost serves the multi-symbol price endpoints.
	DefaultPriceHost = "https://min-api.cryptocompare.com/data"

	defaultChunkWorkers = 4
)

// CryptoRateFetcher queries the multi-symbol price endpoint in chunks bounded by symbolsLimit.
type CryptoRateFetcher struct {
	getter       adapters.HTTPGetter
	reporter     adapters.ErrorReporter
	priceHost    string
	symbolsLimit int
	workers      int
}

// Fetch chunks codes, fetches every chunk and unions the results. Chunks are
// independent, so they run concurrently; a failed chunk only contributes nothing.
func (f *CryptoRateFetcher) Fetch(ctx context.Context, codes []string, quote string) domain.RateSet {
	chunks := Chunk(codes, f.symbolsLimit)

	var (
		mu     sync.Mutex
		result = domain.NewRateSet()
	)
	var g errgroup.Group
	g.SetLimit(f.workers)
	for _, chunk := range chunks {
		if chunk == "" {
			continue
		}
		g.Go(func() error {
			rates, err := f.FetchChunk(ctx, chunk, quote)
			if err != nil {
				logrus.WithError(err).WithField("chunk", chunk).Warn("Crypto rates chunk skipped")
				return nil
			}
			mu.Lock()
			result = result.Union(rates)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return result
}

// FetchChunk fetches rates for one comma-joined chunk of codes, priced in quote.
// Malformed JSON or a missing quote key fails the whole chunk.
func (f *CryptoRateFetcher) FetchChunk(ctx context.Context, chunk string, quote string) (domain.RateSet, error) {
	quote = strings.ToUpper(quote)
	resp, err := f.getter.Get(ctx, priceQueryURL(f.priceHost, "/pricemulti", chunk, quote))
	if err != nil {
		fetchErr := domain.NewFetchError(domain.TransportFailure, sourceCrypto, err)
		metrics.ObserveFetch(sourceCrypto, outcomeOf(fetchErr), 0)
		return nil, fetchErr
	}

	rates, err := parsePriceMulti(resp.Body, quote)
	if err != nil {
		fetchErr := domain.NewFetchError(domain.EnvelopeParseFailure, sourceCrypto, err)
		metrics.ObserveFetch(sourceCrypto, outcomeOf(fetchErr), 0)
		f.reporter.Report(fetchErr)
		return nil, fetchErr
	}
	if rates.Len() == 0 {
		logrus.WithField("chunk", chunk).Warn("Crypto rates response is empty")
		metrics.ObserveFetch(sourceCrypto, metrics.OutcomeEmpty, 0)
		return rates, nil
	}

	metrics.ObserveFetch(sourceCrypto, metrics.OutcomeSuccess, rates.Len())
	return rates, nil
}

// priceQueryURL keeps the commas of the chunk unescaped so the fsyms value on
// the wire is exactly as long as the chunk.
func priceQueryURL(priceHost, endpoint, chunk, quote string) string {
	return priceHost + endpoint + "?fsyms=" + strings.ToUpper(chunk) + "&tsyms=" + url.QueryEscape(quote)
}

func parsePriceMulti(body []byte, quote string) (domain.RateSet, error) {
	var prices priceMultiResponse
	if err := json.Unmarshal(body, &prices); err != nil {
		return nil, err
	}

	rates := domain.NewRateSet()
	for base, quotes := range prices {
		price, ok := quotes[quote]
		if !ok {
			return nil, fmt.Errorf("no %q price for %q", quote, base)
		}
		rates.Add(domain.CurrencyRate{
			QuoteCode: quote,
			BaseIso:   base,
			Rate:      price.InexactFloat64(),
		})
	}
	return rates, nil
}

func NewCryptoRateFetcher(getter adapters.HTTPGetter, reporter adapters.ErrorReporter, priceHost string, symbolsLimit int, workers int) *CryptoRateFetcher {
	if priceHost == "" {
		priceHost = DefaultPriceHost
	}
	if symbolsLimit <= 0 {
		symbolsLimit = DefaultSymbolsLimit
	}
	if workers <= 0 {
		workers = defaultChunkWorkers
	}
	return &CryptoRateFetcher{
		getter:       getter,
		reporter:     reporter,
		priceHost:    strings.TrimSuffix(priceHost, "/"),
		symbolsLimit: symbolsLimit,
		workers:      workers,
	}
}
