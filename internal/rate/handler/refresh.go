package handler

import (
	"errors"
	"net/http"
	"ratefeed/internal/rate"

	"github.com/sirupsen/logrus"
)

type RefreshResponse struct {
	Status string `json:"status" example:"scheduled"`
}

// Refresh godoc
// @Summary Trigger an aggregation cycle
// @Description Start an out-of-schedule aggregation cycle without waiting for it
// @Tags Rates
// @Produce json
// @Success 202 {object} RefreshResponse
// @Failure 503 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /rates/refresh [post]
func (h *Handler) Refresh(w http.ResponseWriter, _ *http.Request) {
	if err := h.service.Refresh(); err != nil {
		if errors.Is(err, rate.ErrSchedulerNotRunning) {
			writeError(w, http.StatusServiceUnavailable, "scheduler is not running")
			return
		}
		logrus.WithError(err).WithField("handler", "Refresh").Error("refresh wasn't scheduled")
		writeError(w, http.StatusInternalServerError, "failed to schedule refresh")
		return
	}
	writeJSON(w, http.StatusAccepted, RefreshResponse{Status: "scheduled"})
}
