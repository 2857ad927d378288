package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

type GetKnownCodesResponse struct {
	Codes []string `json:"codes" example:"BCH,ETH,LTC"`
}

// GetKnownCodes godoc
// @Summary List known currencies
// @Description Retrieve the currency codes queried on every aggregation cycle
// @Tags Rates
// @Produce json
// @Success 200 {object} GetKnownCodesResponse
// @Failure 500 {object} errorResponse
// @Router /rates/known-codes [get]
func (h *Handler) GetKnownCodes(w http.ResponseWriter, r *http.Request) {
	codes, err := h.service.KnownCodes(r.Context())
	if err != nil {
		msg := "ups, couldn't get known codes this time"
		logrus.WithError(err).WithField("handler", "GetKnownCodes").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}
	if codes == nil {
		codes = []string{}
	}
	writeJSON(w, http.StatusOK, GetKnownCodesResponse{Codes: codes})
}
