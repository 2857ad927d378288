package handler

import (
	"net/http"
	"time"
)

type TrustedTimeResponse struct {
	Timestamp int64     `json:"timestamp" example:"1577836800000"`
	Time      time.Time `json:"time" example:"2020-01-01T00:00:00Z"`
}

// TrustedTime godoc
// @Summary Get trusted time
// @Description Latest server time observed in a rate feed response Date header
// @Tags Time
// @Produce json
// @Success 200 {object} TrustedTimeResponse
// @Failure 404 {object} errorResponse "no trusted time observed yet"
// @Router /time [get]
func (h *Handler) TrustedTime(w http.ResponseWriter, _ *http.Request) {
	t, ok := h.service.TrustedTime()
	if !ok {
		writeError(w, http.StatusNotFound, "no trusted time observed yet")
		return
	}
	writeJSON(w, http.StatusOK, TrustedTimeResponse{Timestamp: t.UnixMilli(), Time: t.UTC()})
}
