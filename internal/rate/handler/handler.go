package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"ratefeed/internal/domain"
	"time"
)

type currencyValidator interface {
	ValidateCode(code string) error
	ValidateCurrencyPair(base, quote string) error
}

type rateService interface {
	GetByCodes(ctx context.Context, base string, quote string) (domain.CurrencyRate, error)
	ListByQuote(ctx context.Context, quote string) ([]domain.CurrencyRate, error)
	KnownCodes(ctx context.Context) ([]string, error)
	Refresh() error
	TrustedTime() (time.Time, bool)
}

type Handler struct {
	validator currencyValidator
	service   rateService
}

func NewRateHandler(validator currencyValidator, service rateService) *Handler {
	return &Handler{validator: validator, service: service}
}

type RateResponse struct {
	Base  string  `json:"base" example:"ETH"`
	Quote string  `json:"quote" example:"BTC"`
	Rate  float64 `json:"rate" example:"0.06"`
	Name  string  `json:"name,omitempty" example:"Ethereum"`
}

func toRateResponse(r domain.CurrencyRate) RateResponse {
	return RateResponse{Base: r.BaseIso, Quote: r.QuoteCode, Rate: r.Rate, Name: r.Name}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{Error: errorMsg})
}
