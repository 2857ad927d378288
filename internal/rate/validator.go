package rate

import (
	"errors"
)

const maxCodeLen = 10

var (
	ErrBaseRequired  = errors.New("base currency is required")
	ErrQuoteRequired = errors.New("quote currency is required")
	ErrSameCodes     = errors.New("base and quote must be different")
	ErrInvalidCode   = errors.New("currency code must be 2-10 latin letters or digits")
)

// CurrencyValidator checks the shape of currency codes coming from API requests.
// Codes are expected to be upper-cased already.
type CurrencyValidator struct{}

func (v *CurrencyValidator) ValidateCode(code string) error {
	if len(code) < 2 || len(code) > maxCodeLen {
		return ErrInvalidCode
	}
	for _, c := range code {
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return ErrInvalidCode
		}
	}
	return nil
}

func (v *CurrencyValidator) ValidateCurrencyPair(base, quote string) error {
	if base == "" {
		return ErrBaseRequired
	}
	if quote == "" {
		return ErrQuoteRequired
	}
	if base == quote {
		return ErrSameCodes
	}
	if err := v.ValidateCode(base); err != nil {
		return err
	}
	return v.ValidateCode(quote)
}

func NewValidator() *CurrencyValidator {
	return &CurrencyValidator{}
}
