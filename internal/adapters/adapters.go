package adapters

import (
	"context"
	"net/http"
	"ratefeed/internal/domain"
)

// Response is a successful (2xx) HTTP response.
type Response struct {
	Body   []byte
	Header http.Header
}

// HTTPGetter performs a GET. Any transport error or non-2xx status is returned as an error.
type HTTPGetter interface {
	Get(ctx context.Context, url string) (*Response, error)
}

type RateStorage interface {
	PutRates(ctx context.Context, rates []domain.CurrencyRate) error
	KnownCodes(ctx context.Context) ([]string, error)
	Lookup(ctx context.Context, base string, quote string) (domain.CurrencyRate, error)
	PutPriceChanges(ctx context.Context, quote string, changes map[string]float64) error
}

type RateReader interface {
	Lookup(ctx context.Context, base string, quote string) (domain.CurrencyRate, error)
	ListByQuote(ctx context.Context, quote string) ([]domain.CurrencyRate, error)
	KnownCodes(ctx context.Context) ([]string, error)
}

type RateCache interface {
	Get(pair domain.RatePair) (domain.CurrencyRate, bool)
	SetBatch(rates []domain.CurrencyRate)
}

type PriceChangeClient interface {
	Fetch24hChange(ctx context.Context, codes []string, quote string) (map[string]float64, error)
}

// ErrorReporter accepts errors for tracking. Report must never block.
type ErrorReporter interface {
	Report(err error)
}

type TrustedClock interface {
	SetTimestamp(millis int64)
}
