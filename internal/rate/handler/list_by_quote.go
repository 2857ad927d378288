package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type ListByQuoteResponse struct {
	Quote string         `json:"quote" example:"BTC"`
	Rates []RateResponse `json:"rates"`
}

// ListByQuote godoc
// @Summary List rates in a quote currency
// @Description List every stored rate priced in quote
// @Tags Rates
// @Produce json
// @Param quote path string true "Quote currency code" example(BTC)
// @Success 200 {object} ListByQuoteResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /rates/{quote} [get]
func (h *Handler) ListByQuote(w http.ResponseWriter, r *http.Request) {
	quote := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "quote")))
	if err := h.validator.ValidateCode(quote); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rates, err := h.service.ListByQuote(r.Context(), quote)
	if err != nil {
		msg := "ups, couldn't list rates this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "ListByQuote", "quote": quote}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	res := ListByQuoteResponse{Quote: quote, Rates: make([]RateResponse, 0, len(rates))}
	for _, rate := range rates {
		res.Rates = append(res.Rates, toRateResponse(rate))
	}
	writeJSON(w, http.StatusOK, res)
}
