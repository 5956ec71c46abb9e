package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"salesplan/handlers"
	"salesplan/models"
	repository "salesplan/repositories"

	"github.com/stretchr/testify/assert"
)

type fakeNoteStore struct {
	notes     []models.Note
	employees map[int64]*models.Employee
	actions   []string
}

func newFakeNoteStore() *fakeNoteStore {
	return &fakeNoteStore{employees: map[int64]*models.Employee{}}
}

func (s *fakeNoteStore) AddNote(_ context.Context, tgID int64, content string) error {
	s.notes = append(s.notes, models.Note{
		TgID:      tgID,
		Content:   content,
		CreatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(len(s.notes)) * time.Hour),
	})
	return nil
}

func (s *fakeNoteStore) ListNotes(_ context.Context, tgID int64, limit int) ([]models.Note, error) {
	if limit <= 0 {
		limit = repository.DefaultNotesLimit
	}
	var out []models.Note
	for _, n := range s.notes {
		if n.TgID == tgID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeNoteStore) GetOrRegister(_ context.Context, tgID int64) (*models.Employee, error) {
	if emp, ok := s.employees[tgID]; ok {
		return emp, nil
	}
	emp := &models.Employee{
		TgID:      tgID,
		AgentName: fmt.Sprintf("agent?%d", tgID),
		Active:    true,
		CreatedAt: time.Now(),
	}
	s.employees[tgID] = emp
	return emp, nil
}

func (s *fakeNoteStore) ListActive(_ context.Context) ([]models.Employee, error) {
	var out []models.Employee
	for _, emp := range s.employees {
		out = append(out, *emp)
	}
	return out, nil
}

func (s *fakeNoteStore) ActiveNamesByIDs(_ context.Context, ids []int64) (map[int64]string, error) {
	names := map[int64]string{}
	for _, id := range ids {
		if emp, ok := s.employees[id]; ok && emp.Active {
			names[id] = emp.AgentName
		}
	}
	return names, nil
}

func (s *fakeNoteStore) Log(_ context.Context, _ *int64, action string, _ map[string]interface{}) {
	s.actions = append(s.actions, action)
}

func TestAddNote(t *testing.T) {
	store := newFakeNoteStore()
	h := handlers.NewNotesHandler(store, store, store)

	body, _ := json.Marshal(map[string]interface{}{
		"tg_id":   int64(4004),
		"content": "перезвонить клиенту в среду",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/notes", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.AddNote(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, store.notes, 1)
	assert.Equal(t, "перезвонить клиенту в среду", store.notes[0].Content)
	// First contact registers the agent and the action is logged.
	assert.Contains(t, store.employees, int64(4004))
	assert.Equal(t, []string{"note_add"}, store.actions)
}

func TestAddNoteValidation(t *testing.T) {
	tests := map[string]string{
		"MissingContent": `{"tg_id": 4004}`,
		"MissingTgID":    `{"content": "text"}`,
		"MalformedJSON":  `{"tg_id":`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			store := newFakeNoteStore()
			h := handlers.NewNotesHandler(store, store, store)

			req := httptest.NewRequest(http.MethodPost, "/api/notes", bytes.NewReader([]byte(body)))
			rec := httptest.NewRecorder()

			h.AddNote(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, store.notes)
		})
	}
}

func TestListNotesNewestFirstWithLimit(t *testing.T) {
	store := newFakeNoteStore()
	h := handlers.NewNotesHandler(store, store, store)
	ctx := context.Background()

	assert.NoError(t, store.AddNote(ctx, 4004, "first"))
	assert.NoError(t, store.AddNote(ctx, 4004, "second"))
	assert.NoError(t, store.AddNote(ctx, 4004, "third"))
	// Another agent's note must not leak in.
	assert.NoError(t, store.AddNote(ctx, 5005, "other"))

	req := httptest.NewRequest(http.MethodGet, "/api/notes/4004?limit=2", nil)
	req.SetPathValue("tgId", "4004")
	rec := httptest.NewRecorder()

	h.ListNotes(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.Note `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, "third", resp.Data[0].Content)
	assert.Equal(t, "second", resp.Data[1].Content)
}

func TestListNotesBadParams(t *testing.T) {
	tests := map[string]struct {
		tgID  string
		query string
	}{
		"NonNumericAgent": {tgID: "abc", query: ""},
		"ZeroLimit":       {tgID: "4004", query: "?limit=0"},
		"NegativeLimit":   {tgID: "4004", query: "?limit=-5"},
		"NonNumericLimit": {tgID: "4004", query: "?limit=ten"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			store := newFakeNoteStore()
			h := handlers.NewNotesHandler(store, store, store)

			req := httptest.NewRequest(http.MethodGet, "/api/notes/"+tc.tgID+tc.query, nil)
			req.SetPathValue("tgId", tc.tgID)
			rec := httptest.NewRecorder()

			h.ListNotes(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
