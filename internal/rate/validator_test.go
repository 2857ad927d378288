package rate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCurrencyValidator_ValidatePair_Errors(t *testing.T) {
	validator := NewValidator()

	require.Equal(t, ErrBaseRequired, validator.ValidateCurrencyPair("", "BTC"))
	require.Equal(t, ErrQuoteRequired, validator.ValidateCurrencyPair("ETH", ""))
	require.Equal(t, ErrSameCodes, validator.ValidateCurrencyPair("BTC", "BTC"))
	require.Equal(t, ErrInvalidCode, validator.ValidateCurrencyPair("E-TH", "BTC"))
	require.Equal(t, ErrInvalidCode, validator.ValidateCurrencyPair("ETH", "b"))
}

func TestCurrencyValidator_ValidatePair_Success(t *testing.T) {
	validator := NewValidator()
	require.NoError(t, validator.ValidateCurrencyPair("ETH", "BTC"))
	require.NoError(t, validator.ValidateCurrencyPair("USDT", "BTC"))
	require.NoError(t, validator.ValidateCurrencyPair("1INCH", "BTC"))
}

func TestCurrencyValidator_ValidateCode(t *testing.T) {
	validator := NewValidator()

	require.NoError(t, validator.ValidateCode("USD"))
	require.Equal(t, ErrInvalidCode, validator.ValidateCode("usd"))
	require.Equal(t, ErrInvalidCode, validator.ValidateCode("TOOLONGCODE1"))
	require.Equal(t, ErrInvalidCode, validator.ValidateCode(""))
}
