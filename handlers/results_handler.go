package handlers

import (
	"context"
	"net/http"
	"time"

	"salesplan/calendar"
	"salesplan/middlewares"
	repository "salesplan/repositories"
	"salesplan/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResultsHandler covers the write path used by the bot webhook glue:
// recording attempts and creating meetings.
type ResultsHandler struct {
	attempts  repository.AttemptRepository
	meetings  repository.MeetingRepository
	employees repository.EmployeeRepository
	logs      repository.LogRepository
	location  *time.Location
}

func NewResultsHandler(attempts repository.AttemptRepository, meetings repository.MeetingRepository, employees repository.EmployeeRepository, logs repository.LogRepository, location *time.Location) *ResultsHandler {
	return &ResultsHandler{
		attempts:  attempts,
		meetings:  meetings,
		employees: employees,
		logs:      logs,
		location:  location,
	}
}

type recordAttemptsRequest struct {
	TgID      int64          `json:"tg_id" validate:"required"`
	Products  map[string]int `json:"products" validate:"required"`
	ForDate   string         `json:"for_date"`
	MeetingID string         `json:"meeting_id"`
}

type createMeetingRequest struct {
	TgID        int64  `json:"tg_id" validate:"required"`
	ProductCode string `json:"product_code" validate:"required"`
	ForDate     string `json:"for_date"`
}

// forDate resolves an optional YYYY-MM-DD body field, defaulting to today
// in the app timezone.
func (h *ResultsHandler) forDate(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now().In(h.location)
		return calendar.DateOnly(now), nil
	}
	return time.Parse("2006-01-02", raw)
}

func (h *ResultsHandler) RecordAttempts(w http.ResponseWriter, r *http.Request) {
	var req recordAttemptsRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	forDate, err := h.forDate(req.ForDate)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid for_date format", http.StatusBadRequest)
		return
	}

	var meetingID *primitive.ObjectID
	if req.MeetingID != "" {
		id, err := primitive.ObjectIDFromHex(req.MeetingID)
		if err != nil {
			utils.HandleMessageResponse(w, "Invalid meeting_id format", http.StatusBadRequest)
			return
		}
		meetingID = &id
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	// Register on first contact so the attempt rows always have an owner.
	if _, err := h.employees.GetOrRegister(ctx, req.TgID); err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.attempts.RecordAttempts(ctx, req.TgID, req.Products, forDate, meetingID); err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.logs.Log(ctx, &req.TgID, "save_attempts", map[string]interface{}{
		"products": req.Products,
		"for_date": forDate.Format("2006-01-02"),
		"by":       middlewares.GetUsernameFromContext(r.Context()),
	})

	utils.HandleMessageResponse(w, "Attempts recorded successfully", http.StatusCreated)
}

func (h *ResultsHandler) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	var req createMeetingRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	forDate, err := h.forDate(req.ForDate)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid for_date format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := h.employees.GetOrRegister(ctx, req.TgID); err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	meetingID, err := h.meetings.CreateMeeting(ctx, req.TgID, req.ProductCode, forDate)
	if err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.logs.Log(ctx, &req.TgID, "create_meeting", map[string]interface{}{
		"product_code": req.ProductCode,
		"for_date":     forDate.Format("2006-01-02"),
		"by":           middlewares.GetUsernameFromContext(r.Context()),
	})

	utils.HandleDataResponse(w, "Meeting created successfully", map[string]interface{}{
		"meeting_id": meetingID.Hex(),
	}, http.StatusCreated)
}
