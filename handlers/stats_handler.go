package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	repository "salesplan/repositories"
	"salesplan/services"
	"salesplan/utils"
)

// StatsHandler serves the aggregated read surface: per-agent stats,
// month ranking, day leaderboard.
type StatsHandler struct {
	stats     services.StatsService
	employees repository.EmployeeRepository
	location  *time.Location
}

func NewStatsHandler(stats services.StatsService, employees repository.EmployeeRepository, location *time.Location) *StatsHandler {
	return &StatsHandler{
		stats:     stats,
		employees: employees,
		location:  location,
	}
}

func (h *StatsHandler) GetAgentStats(w http.ResponseWriter, r *http.Request) {
	tgID, err := strconv.ParseInt(r.PathValue("tgId"), 10, 64)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid agent ID format", http.StatusBadRequest)
		return
	}

	today, err := utils.DateParam(r, h.location)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid date format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	emp, err := h.employees.GetOrRegister(ctx, tgID)
	if err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	stats, err := h.stats.DayWeekMonth(ctx, tgID, today)
	if err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	ranking, err := h.stats.MonthRanking(ctx, today)
	if err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Rank position is 1-based; 0 means the agent has no attempts yet.
	position := 0
	for i, entry := range ranking {
		if entry.TgID == tgID {
			position = i + 1
			break
		}
	}

	utils.HandleDataResponse(w, "Stats retrieved successfully", map[string]interface{}{
		"agent_name":    emp.AgentName,
		"stats":         stats,
		"rank_position": position,
		"rank_total":    len(ranking),
	}, http.StatusOK)
}

func (h *StatsHandler) GetMonthRanking(w http.ResponseWriter, r *http.Request) {
	today, err := utils.DateParam(r, h.location)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid date format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	ranking, err := h.stats.MonthRanking(ctx, today)
	if err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleDataResponse(w, "Ranking retrieved successfully", ranking, http.StatusOK)
}

func (h *StatsHandler) GetDayLeaderboard(w http.ResponseWriter, r *http.Request) {
	day, err := utils.DateParam(r, h.location)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid date format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	top, bottom, err := h.stats.DayTopBottom(ctx, day)
	if err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleDataResponse(w, "Leaderboard retrieved successfully", map[string]interface{}{
		"top":    top,
		"bottom": bottom,
	}, http.StatusOK)
}
