package rate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"ratefeed/internal/adapters"
	"ratefeed/internal/domain"
	"ratefeed/internal/platform/metrics"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	sourceFiatPrimary  = "fiat_primary"
	sourceFiatFallback = "fiat_fallback"

	// DefaultFallbackRatesURL is the public rates endpoint used when the primary one yields nothing.
	DefaultFallbackRatesURL = "https://bitpay.com/rates"
)

var errEmptyEnvelope = errors.New("rates array is empty or absent")

// FiatRateFetcher fetches BTC-denominated fiat rates from the primary API,
// falling back to a public rates endpoint.
type FiatRateFetcher struct {
	getter      adapters.HTTPGetter
	reporter    adapters.ErrorReporter
	primaryURL  string
	fallbackURL string
	baseIso     string
}

// Fetch never fails: when both endpoints yield nothing the result is empty.
func (f *FiatRateFetcher) Fetch(ctx context.Context) domain.RateSet {
	entries, err := f.fetchPrimary(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Primary fiat rates unavailable, using fallback")
		metrics.ObserveFetch(sourceFiatPrimary, outcomeOf(err), 0)
		if domain.KindOf(err) == domain.EnvelopeParseFailure && !errors.Is(err, errEmptyEnvelope) {
			f.reporter.Report(err)
		}

		entries, err = f.fetchFallback(ctx)
		if err != nil {
			// fiat rates are the least critical, the fallback failing is not tracked
			logrus.WithError(err).Warn("Fallback fiat rates unavailable")
			metrics.ObserveFetch(sourceFiatFallback, outcomeOf(err), 0)
			return domain.NewRateSet()
		}
		rates := f.parseEntries(sourceFiatFallback, entries)
		metrics.ObserveFetch(sourceFiatFallback, metrics.OutcomeSuccess, rates.Len())
		return rates
	}

	rates := f.parseEntries(sourceFiatPrimary, entries)
	metrics.ObserveFetch(sourceFiatPrimary, metrics.OutcomeSuccess, rates.Len())
	return rates
}

func (f *FiatRateFetcher) fetchPrimary(ctx context.Context) ([]json.RawMessage, error) {
	resp, err := f.getter.Get(ctx, f.primaryURL)
	if err != nil {
		return nil, domain.NewFetchError(domain.TransportFailure, sourceFiatPrimary, err)
	}
	var envelope primaryFiatEnvelope
	if err = json.Unmarshal(resp.Body, &envelope); err != nil {
		return nil, domain.NewFetchError(domain.EnvelopeParseFailure, sourceFiatPrimary, err)
	}
	if len(envelope.Body) == 0 {
		return nil, domain.NewFetchError(domain.EnvelopeParseFailure, sourceFiatPrimary, errEmptyEnvelope)
	}
	return envelope.Body, nil
}

func (f *FiatRateFetcher) fetchFallback(ctx context.Context) ([]json.RawMessage, error) {
	resp, err := f.getter.Get(ctx, f.fallbackURL)
	if err != nil {
		return nil, domain.NewFetchError(domain.TransportFailure, sourceFiatFallback, err)
	}
	var envelope fallbackFiatEnvelope
	if err = json.Unmarshal(resp.Body, &envelope); err != nil {
		return nil, domain.NewFetchError(domain.EnvelopeParseFailure, sourceFiatFallback, err)
	}
	if len(envelope.Data) == 0 {
		return nil, domain.NewFetchError(domain.EnvelopeParseFailure, sourceFiatFallback, errEmptyEnvelope)
	}
	return envelope.Data, nil
}

// parseEntries decodes entries one by one; a malformed entry is skipped and reported.
func (f *FiatRateFetcher) parseEntries(source string, entries []json.RawMessage) domain.RateSet {
	rates := domain.NewRateSet()
	for i, raw := range entries {
		rate, err := parseFiatEntry(f.baseIso, raw)
		if err != nil {
			f.reporter.Report(domain.NewFetchError(domain.ElementParseFailure, source, fmt.Errorf("entry %d: %w", i, err)))
			continue
		}
		rates.Add(rate)
	}
	return rates
}

func parseFiatEntry(baseIso string, raw json.RawMessage) (domain.CurrencyRate, error) {
	var entry fiatRateEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return domain.CurrencyRate{}, err
	}
	code := strings.ToUpper(strings.TrimSpace(entry.Code))
	if code == "" {
		return domain.CurrencyRate{}, errors.New("code is missing")
	}
	if entry.Rate == nil {
		return domain.CurrencyRate{}, fmt.Errorf("rate is missing for %q", code)
	}
	return domain.CurrencyRate{
		QuoteCode: code,
		BaseIso:   baseIso,
		Rate:      entry.Rate.InexactFloat64(),
		Name:      entry.Name,
	}, nil
}

func outcomeOf(err error) string {
	return domain.KindOf(err).String()
}

// NewFiatRateFetcher builds the fetcher for rates of baseIso (BTC) in fiat currencies.
func NewFiatRateFetcher(getter adapters.HTTPGetter, reporter adapters.ErrorReporter, apiBaseURL, fallbackURL, baseIso string) *FiatRateFetcher {
	baseIso = strings.ToUpper(baseIso)
	if fallbackURL == "" {
		fallbackURL = DefaultFallbackRatesURL
	}
	return &FiatRateFetcher{
		getter:      getter,
		reporter:    reporter,
		primaryURL:  strings.TrimSuffix(apiBaseURL, "/") + "/rates?currency=" + baseIso,
		fallbackURL: fallbackURL,
		baseIso:     baseIso,
	}
}
