package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ratefeed/internal/domain"
	"ratefeed/internal/rate"
	"ratefeed/internal/rate/handler"

	"github.com/stretchr/testify/require"
)

type stubService struct{}

func (stubService) GetByCodes(_ context.Context, base, quote string) (domain.CurrencyRate, error) {
	return domain.CurrencyRate{QuoteCode: quote, BaseIso: base, Rate: 0.06}, nil
}

func (stubService) ListByQuote(context.Context, string) ([]domain.CurrencyRate, error) {
	return nil, nil
}

func (stubService) KnownCodes(context.Context) ([]string, error) { return []string{"ETH"}, nil }

func (stubService) Refresh() error { return nil }

func (stubService) TrustedTime() (time.Time, bool) { return time.Time{}, false }

func newTestRouter() http.Handler {
	return NewRouter(handler.NewRateHandler(rate.NewValidator(), stubService{}))
}

func TestRouter_Routes(t *testing.T) {
	cases := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/api/v1/time", http.StatusNotFound},
		{http.MethodPost, "/api/v1/rates/refresh", http.StatusAccepted},
		{http.MethodGet, "/api/v1/rates/known-codes", http.StatusOK},
		{http.MethodGet, "/api/v1/rates/btc", http.StatusOK},
		{http.MethodGet, "/api/v1/rates/btc/eth", http.StatusOK},
		{http.MethodGet, "/api/v1/rates/btc/e-th", http.StatusNotFound},
	}

	router := newTestRouter()
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
			require.Equal(t, tc.want, rr.Code)
		})
	}
}
