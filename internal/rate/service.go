package rate

import (
	"context"
	"fmt"
	"ratefeed/internal/adapters"
	"ratefeed/internal/domain"
	"time"
)

type refreshTrigger interface {
	RunNow() error
}

type trustedTimeSource interface {
	Time() (time.Time, bool)
}

// Service serves stored rates to the HTTP API.
type Service struct {
	reader  adapters.RateReader
	cache   adapters.RateCache
	trigger refreshTrigger
	clock   trustedTimeSource
}

// GetByCodes returns the rate of base in quote, from cache when it holds the pair.
func (s *Service) GetByCodes(ctx context.Context, base string, quote string) (domain.CurrencyRate, error) {
	pair := domain.RatePair{Base: base, Quote: quote}
	if r, ok := s.cache.Get(pair); ok {
		return r, nil
	}

	r, err := s.reader.Lookup(ctx, base, quote)
	if err != nil {
		return domain.CurrencyRate{}, err
	}
	s.cache.SetBatch([]domain.CurrencyRate{r})
	return r, nil
}

func (s *Service) ListByQuote(ctx context.Context, quote string) ([]domain.CurrencyRate, error) {
	rates, err := s.reader.ListByQuote(ctx, quote)
	if err != nil {
		return nil, fmt.Errorf("failed to list rates in %q: %w", quote, err)
	}
	return rates, nil
}

func (s *Service) KnownCodes(ctx context.Context) ([]string, error) {
	return s.reader.KnownCodes(ctx)
}

// Refresh starts an aggregation cycle without waiting for it.
func (s *Service) Refresh() error {
	return s.trigger.RunNow()
}

func (s *Service) TrustedTime() (time.Time, bool) {
	return s.clock.Time()
}

func NewService(reader adapters.RateReader, cache adapters.RateCache, trigger refreshTrigger, clock trustedTimeSource) *Service {
	return &Service{reader: reader, cache: cache, trigger: trigger, clock: clock}
}
