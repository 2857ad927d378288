package rate

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"
)

var errNullNumber = errors.New("number is null")

// flexNumber decodes either a JSON number or a numeric string ("43000.12").
type flexNumber struct {
	decimal.Decimal
}

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return errNullNumber
	}
	return n.Decimal.UnmarshalJSON(b)
}

// primaryFiatEnvelope is the {base}/rates?currency=BTC response.
type primaryFiatEnvelope struct {
	Body []json.RawMessage `json:"body"`
}

// fallbackFiatEnvelope is the public fallback rates response.
type fallbackFiatEnvelope struct {
	Data []json.RawMessage `json:"data"`
}

type fiatRateEntry struct {
	Name string      `json:"name"`
	Code string      `json:"code"`
	Rate *flexNumber `json:"rate"`
}

// priceMultiResponse maps base code to quote code to price.
type priceMultiResponse map[string]map[string]flexNumber

type tokenListing struct {
	Name                 string  `json:"name"`
	Code                 string  `json:"code"`
	ContractInitialValue *string `json:"contract_initial_value"`
}

type priceChangeQuote struct {
	ChangePct24h *flexNumber `json:"CHANGEPCT24HOUR"`
}

type priceMultiFullResponse struct {
	Raw map[string]map[string]priceChangeQuote `json:"RAW"`
}
