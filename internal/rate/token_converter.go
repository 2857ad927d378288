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
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	sourceTokens = "tokens"

	DefaultPivotCode = "ETH"
)

// PivotLookup resolves the rate of one pivot unit expressed in quote.
type PivotLookup func(ctx context.Context, pivot string, quote string) (domain.CurrencyRate, bool)

// TokenRateConverter prices new tokens that have no public rate yet: their
// initial contract value is given in a pivot currency and converted to quote.
type TokenRateConverter struct {
	getter       adapters.HTTPGetter
	reporter     adapters.ErrorReporter
	currencies   string
	quoteCode    string
	defaultPivot string
}

func (c *TokenRateConverter) FetchAndConvert(ctx context.Context, pivots PivotLookup) domain.RateSet {
	resp, err := c.getter.Get(ctx, c.currencies)
	if err != nil {
		logrus.WithError(err).Warn("Token listing unavailable")
		metrics.ObserveFetch(sourceTokens, domain.TransportFailure.String(), 0)
		return domain.NewRateSet()
	}

	var entries []json.RawMessage
	if err = json.Unmarshal(resp.Body, &entries); err != nil {
		fetchErr := domain.NewFetchError(domain.EnvelopeParseFailure, sourceTokens, err)
		logrus.WithError(fetchErr).Warn("Token listing has unexpected shape")
		metrics.ObserveFetch(sourceTokens, outcomeOf(fetchErr), 0)
		c.reporter.Report(fetchErr)
		return domain.NewRateSet()
	}

	rates := domain.NewRateSet()
	for i, raw := range entries {
		provisional, ok, err := c.parseListing(raw)
		if err != nil {
			c.reporter.Report(domain.NewFetchError(domain.ElementParseFailure, sourceTokens, fmt.Errorf("entry %d: %w", i, err)))
			continue
		}
		if !ok {
			continue
		}

		converted, err := c.convert(ctx, provisional, pivots)
		if err != nil {
			logrus.WithError(err).WithField("token", provisional.code).Warn("Token rate dropped")
			continue
		}
		rates.Add(converted)
	}

	metrics.ObserveFetch(sourceTokens, metrics.OutcomeSuccess, rates.Len())
	return rates
}

// provisionalRate is a token price expressed in its pivot currency.
type provisionalRate struct {
	code   string
	name   string
	pivot  string
	amount decimal.Decimal
}

// parseListing returns ok=false for listings without an initial contract value.
func (c *TokenRateConverter) parseListing(raw json.RawMessage) (provisionalRate, bool, error) {
	var listing tokenListing
	if err := json.Unmarshal(raw, &listing); err != nil {
		return provisionalRate{}, false, err
	}
	if listing.ContractInitialValue == nil {
		return provisionalRate{}, false, nil
	}

	code := strings.ToUpper(strings.TrimSpace(listing.Code))
	if code == "" {
		return provisionalRate{}, false, errors.New("code is missing")
	}
	amount, pivot, err := ParseInitialValue(*listing.ContractInitialValue, c.defaultPivot)
	if err != nil {
		return provisionalRate{}, false, fmt.Errorf("token %q: %w", code, err)
	}
	return provisionalRate{code: code, name: listing.Name, pivot: pivot, amount: amount}, true, nil
}

func (c *TokenRateConverter) convert(ctx context.Context, p provisionalRate, pivots PivotLookup) (domain.CurrencyRate, error) {
	pivotRate, ok := pivots(ctx, p.pivot, c.quoteCode)
	if !ok {
		return domain.CurrencyRate{}, domain.NewFetchError(
			domain.ConversionMiss,
			sourceTokens,
			fmt.Errorf("no %s/%s pivot rate", p.pivot, c.quoteCode),
		)
	}
	return domain.CurrencyRate{
		QuoteCode: c.quoteCode,
		BaseIso:   p.code,
		Rate:      ConvertViaPivot(p.amount, pivotRate.Rate),
		Name:      p.name,
	}, nil
}

// ConvertViaPivot multiplies a pivot-denominated amount by the pivot-to-quote
// rate in decimal arithmetic and reduces the product to float64.
func ConvertViaPivot(amount decimal.Decimal, pivotRate float64) float64 {
	return amount.Mul(decimal.NewFromFloat(pivotRate)).InexactFloat64()
}

// ParseInitialValue splits a value like "123.45 ETH" into its amount and
// currency symbol. A bare number is denominated in defaultPivot.
func ParseInitialValue(value string, defaultPivot string) (decimal.Decimal, string, error) {
	value = strings.TrimSpace(value)
	head := strings.TrimRightFunc(value, unicode.IsLetter)
	number := strings.TrimSpace(head)
	symbol := strings.ToUpper(value[len(head):])
	if symbol == "" {
		symbol = strings.ToUpper(defaultPivot)
	}
	if number == "" {
		return decimal.Decimal{}, "", fmt.Errorf("no amount in %q", value)
	}

	amount, err := decimal.NewFromString(number)
	if err != nil {
		return decimal.Decimal{}, "", fmt.Errorf("invalid amount %q: %w", number, err)
	}
	return amount, symbol, nil
}

func NewTokenRateConverter(getter adapters.HTTPGetter, reporter adapters.ErrorReporter, apiBaseURL, quoteCode, defaultPivot string) *TokenRateConverter {
	if defaultPivot == "" {
		defaultPivot = DefaultPivotCode
	}
	return &TokenRateConverter{
		getter:       getter,
		reporter:     reporter,
		currencies:   strings.TrimSuffix(apiBaseURL, "/") + "/currencies",
		quoteCode:    strings.ToUpper(quoteCode),
		defaultPivot: strings.ToUpper(defaultPivot),
	}
}
