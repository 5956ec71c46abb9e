package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"salesplan/middlewares"
	"salesplan/services"
	"salesplan/utils"
)

// PlanHandler serves plan breakdowns and the admin override for month
// plan values.
type PlanHandler struct {
	plans    services.PlanService
	location *time.Location
}

func NewPlanHandler(plans services.PlanService, location *time.Location) *PlanHandler {
	return &PlanHandler{
		plans:    plans,
		location: location,
	}
}

func (h *PlanHandler) GetPlanBreakdown(w http.ResponseWriter, r *http.Request) {
	tgID, err := strconv.ParseInt(r.PathValue("tgId"), 10, 64)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid agent ID format", http.StatusBadRequest)
		return
	}

	date, err := utils.DateParam(r, h.location)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid date format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	breakdown, err := h.plans.ComputePlanBreakdown(ctx, tgID, date)
	if err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleDataResponse(w, "Plan breakdown computed successfully", breakdown, http.StatusOK)
}

type setPlanRequest struct {
	Year      int `json:"year" validate:"required,min=2020"`
	Month     int `json:"month" validate:"required,min=1,max=12"`
	PlanValue int `json:"plan_value" validate:"required,min=1"`
}

func (h *PlanHandler) SetMonthPlan(w http.ResponseWriter, r *http.Request) {
	claims := middlewares.ClaimsFromContext(r.Context())
	if claims == nil || !claims.Admin {
		utils.HandleMessageResponse(w, "Admin access required", http.StatusForbidden)
		return
	}

	tgID, err := strconv.ParseInt(r.PathValue("tgId"), 10, 64)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid agent ID format", http.StatusBadRequest)
		return
	}

	var req setPlanRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.plans.SetMonthPlan(ctx, tgID, req.Year, req.Month, req.PlanValue); err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleMessageResponse(w, "Month plan updated successfully", http.StatusOK)
}
