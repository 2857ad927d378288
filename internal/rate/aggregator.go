package rate

import (
	"context"
	"errors"
	"ratefeed/internal/adapters"
	"ratefeed/internal/domain"
	"ratefeed/internal/platform/metrics"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type AggregatorConfig struct {
	QuoteCode   string // quote of crypto and token rates, BTC
	ChangeQuote string // quote of 24h price changes, USD
}

// Summary describes what one aggregation cycle produced.
type Summary struct {
	Codes        int
	Fiat         int
	Crypto       int
	Tokens       int
	Stored       int
	PriceChanges int
}

// Aggregator runs one fetch-merge-store cycle over all rate sources.
type Aggregator struct {
	storage  adapters.RateStorage
	cache    adapters.RateCache
	changes  adapters.PriceChangeClient
	reporter adapters.ErrorReporter
	fiat     *FiatRateFetcher
	crypto   *CryptoRateFetcher
	tokens   *TokenRateConverter
	cfg      AggregatorConfig
}

// Run aggregates rates for knownCodes, or for all codes known to storage when
// knownCodes is nil. Every step is isolated: a failing step only means fewer
// rates this cycle, the next scheduled cycle is the retry.
func (a *Aggregator) Run(ctx context.Context, execID string, knownCodes []string) Summary {
	started := time.Now()
	log := logrus.WithField("execID", execID)
	defer func() { metrics.CycleDuration.Observe(time.Since(started).Seconds()) }()

	// STEP 1: resolving the codes universe
	codes := knownCodes
	if codes == nil {
		loaded, err := a.storage.KnownCodes(ctx)
		if err != nil {
			log.WithError(err).Error("Failed to load known currency codes")
			a.reporter.Report(err)
		}
		codes = loaded
	}
	summary := Summary{Codes: len(codes)}
	log.Infof("Aggregation started for %d codes", len(codes))

	// STEP 2: fiat and crypto are independent and run side by side. Tokens need
	// this cycle's crypto rates as pivots, so they run after crypto.
	var fiatRates, cryptoRates, tokenRates domain.RateSet
	var g errgroup.Group
	g.Go(func() error {
		fiatRates = a.fiat.Fetch(ctx)
		return nil
	})
	g.Go(func() error {
		cryptoRates = a.crypto.Fetch(ctx, codes, a.cfg.QuoteCode)
		tokenRates = a.tokens.FetchAndConvert(ctx, a.pivotLookup(cryptoRates))
		return nil
	})
	_ = g.Wait()

	summary.Fiat = fiatRates.Len()
	summary.Crypto = cryptoRates.Len()
	summary.Tokens = tokenRates.Len()

	// STEP 3: union and a single storage write
	all := fiatRates.Union(cryptoRates, tokenRates)
	if all.Len() > 0 {
		rates := all.Slice()
		if err := a.storage.PutRates(ctx, rates); err != nil {
			log.WithError(err).Error("Failed to store rates")
			a.reporter.Report(err)
		} else {
			summary.Stored = len(rates)
			metrics.RatesStored.Add(float64(len(rates)))
			if a.cache != nil {
				a.cache.SetBatch(rates)
			}
		}
	} else {
		log.Warn("No rates fetched this cycle")
	}

	// STEP 4: 24h price changes, best effort and independent of the steps above
	summary.PriceChanges = a.refreshPriceChanges(ctx, log, codes)

	log.WithFields(logrus.Fields{
		"fiat":         summary.Fiat,
		"crypto":       summary.Crypto,
		"tokens":       summary.Tokens,
		"stored":       summary.Stored,
		"priceChanges": summary.PriceChanges,
	}).Info("Aggregation finished")
	return summary
}

func (a *Aggregator) refreshPriceChanges(ctx context.Context, log *logrus.Entry, codes []string) int {
	if a.changes == nil || len(codes) == 0 {
		return 0
	}
	changes, err := a.changes.Fetch24hChange(ctx, codes, a.cfg.ChangeQuote)
	if err != nil {
		log.WithError(err).Warn("Failed to fetch 24h price changes")
		return 0
	}
	if len(changes) == 0 {
		return 0
	}
	if err = a.storage.PutPriceChanges(ctx, a.cfg.ChangeQuote, changes); err != nil {
		log.WithError(err).Error("Failed to store 24h price changes")
		a.reporter.Report(err)
		return 0
	}
	return len(changes)
}

// pivotLookup resolves pivots from this cycle's rates first, then from the
// snapshot of the last stored cycle, then from storage.
func (a *Aggregator) pivotLookup(fresh domain.RateSet) PivotLookup {
	return func(ctx context.Context, pivot string, quote string) (domain.CurrencyRate, bool) {
		if r, ok := fresh.Find(pivot, quote); ok {
			return r, true
		}
		if a.cache != nil {
			if r, ok := a.cache.Get(domain.RatePair{Base: pivot, Quote: quote}); ok {
				return r, true
			}
		}
		r, err := a.storage.Lookup(ctx, pivot, quote)
		if err != nil {
			if !errors.Is(err, domain.ErrRateNotFound) {
				logrus.WithError(err).Warnf("Pivot lookup %s/%s failed", pivot, quote)
			}
			return domain.CurrencyRate{}, false
		}
		return r, true
	}
}

func NewAggregator(
	storage adapters.RateStorage,
	cache adapters.RateCache,
	changes adapters.PriceChangeClient,
	reporter adapters.ErrorReporter,
	fiat *FiatRateFetcher,
	crypto *CryptoRateFetcher,
	tokens *TokenRateConverter,
	cfg AggregatorConfig,
) *Aggregator {
	cfg.QuoteCode = strings.ToUpper(cfg.QuoteCode)
	cfg.ChangeQuote = strings.ToUpper(cfg.ChangeQuote)
	return &Aggregator{
		storage:  storage,
		cache:    cache,
		changes:  changes,
		reporter: reporter,
		fiat:     fiat,
		crypto:   crypto,
		tokens:   tokens,
		cfg:      cfg,
	}
}
