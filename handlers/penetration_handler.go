package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"salesplan/services"
	"salesplan/utils"
)

// PenetrationHandler serves the meeting-to-cross-sale metric.
type PenetrationHandler struct {
	penetration services.PenetrationService
	location    *time.Location
	targetPct   float64
}

func NewPenetrationHandler(penetration services.PenetrationService, location *time.Location, targetPct float64) *PenetrationHandler {
	return &PenetrationHandler{
		penetration: penetration,
		location:    location,
		targetPct:   targetPct,
	}
}

func (h *PenetrationHandler) GetPenetration(w http.ResponseWriter, r *http.Request) {
	tgID, err := strconv.ParseInt(r.PathValue("tgId"), 10, 64)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid agent ID format", http.StatusBadRequest)
		return
	}

	kindRaw := r.URL.Query().Get("period")
	if kindRaw == "" {
		kindRaw = string(services.PeriodDay)
	}
	kind, err := services.ParsePeriodKind(kindRaw)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid period, expected day, week or month", http.StatusBadRequest)
		return
	}

	date, err := utils.DateParam(r, h.location)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid date format", http.StatusBadRequest)
		return
	}

	target := h.targetPct
	if raw := r.URL.Query().Get("target"); raw != "" {
		target, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			utils.HandleMessageResponse(w, "Invalid target format", http.StatusBadRequest)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	summary, err := h.penetration.Summary(ctx, tgID, kind, date, target)
	if err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleDataResponse(w, "Penetration computed successfully", summary, http.StatusOK)
}
