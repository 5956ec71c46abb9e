package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"salesplan/middlewares"
	repository "salesplan/repositories"
	"salesplan/utils"
)

// NotesHandler covers the agent comment feature: append a note, list
// the most recent ones.
type NotesHandler struct {
	notes     repository.NoteRepository
	employees repository.EmployeeRepository
	logs      repository.LogRepository
}

func NewNotesHandler(notes repository.NoteRepository, employees repository.EmployeeRepository, logs repository.LogRepository) *NotesHandler {
	return &NotesHandler{
		notes:     notes,
		employees: employees,
		logs:      logs,
	}
}

type addNoteRequest struct {
	TgID    int64  `json:"tg_id" validate:"required"`
	Content string `json:"content" validate:"required"`
}

func (h *NotesHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	var req addNoteRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	// Register on first contact so the note rows always have an owner.
	if _, err := h.employees.GetOrRegister(ctx, req.TgID); err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.notes.AddNote(ctx, req.TgID, req.Content); err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.logs.Log(ctx, &req.TgID, "note_add", map[string]interface{}{
		"len": len(req.Content),
		"by":  middlewares.GetUsernameFromContext(r.Context()),
	})

	utils.HandleMessageResponse(w, "Note saved successfully", http.StatusCreated)
}

func (h *NotesHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	tgID, err := strconv.ParseInt(r.PathValue("tgId"), 10, 64)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid agent ID format", http.StatusBadRequest)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			utils.HandleMessageResponse(w, "Invalid limit format", http.StatusBadRequest)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	notes, err := h.notes.ListNotes(ctx, tgID, limit)
	if err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.HandleDataResponse(w, "Notes retrieved successfully", notes, http.StatusOK)
}
