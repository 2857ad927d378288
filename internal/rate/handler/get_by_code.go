package handler

import (
	"errors"
	"net/http"
	"ratefeed/internal/domain"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// GetByCodes godoc
// @Summary Get rate by currency codes
// @Description Get the last stored rate of base priced in quote
// @Tags Rates
// @Produce json
// @Param quote path string true "Quote currency code" example(BTC)
// @Param base path string true "Base currency code" example(ETH)
// @Success 200 {object} RateResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /rates/{quote}/{base} [get]
func (h *Handler) GetByCodes(w http.ResponseWriter, r *http.Request) {
	base := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "base")))
	quote := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "quote")))

	if err := h.validator.ValidateCurrencyPair(base, quote); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rate, err := h.service.GetByCodes(r.Context(), base, quote)
	if err != nil {
		if errors.Is(err, domain.ErrRateNotFound) {
			writeError(w, http.StatusNotFound, "rate not found")
			return
		}
		msg := "ups, couldn't get rate by codes this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetByCodes", "base": base, "quote": quote}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, toRateResponse(rate))
}
