package routes

import (
	"net/http"

	"salesplan/handlers"
	"salesplan/metrics"
	"salesplan/middlewares"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Results     *handlers.ResultsHandler
	Plan        *handlers.PlanHandler
	Stats       *handlers.StatsHandler
	Penetration *handlers.PenetrationHandler
	Notes       *handlers.NotesHandler
}

func SetupRoutes(h Handlers, jwtSecret string) *http.ServeMux {
	mux := http.NewServeMux()

	// Apply JWT middleware to all API routes
	jwtMiddleware := middlewares.JWTMiddleware(jwtSecret)

	// Write path used by the bot webhook glue
	mux.Handle("POST /api/attempts", jwtMiddleware(http.HandlerFunc(h.Results.RecordAttempts)))
	mux.Handle("POST /api/meetings", jwtMiddleware(http.HandlerFunc(h.Results.CreateMeeting)))

	// Aggregated read surface for /stats-style summaries and reporting
	mux.Handle("GET /api/stats/{tgId}", jwtMiddleware(http.HandlerFunc(h.Stats.GetAgentStats)))
	mux.Handle("GET /api/ranking", jwtMiddleware(http.HandlerFunc(h.Stats.GetMonthRanking)))
	mux.Handle("GET /api/leaderboard/day", jwtMiddleware(http.HandlerFunc(h.Stats.GetDayLeaderboard)))

	// Plan engine
	mux.Handle("GET /api/plan/{tgId}/breakdown", jwtMiddleware(http.HandlerFunc(h.Plan.GetPlanBreakdown)))
	mux.Handle("PUT /api/plan/{tgId}", jwtMiddleware(http.HandlerFunc(h.Plan.SetMonthPlan)))

	// Penetration metric
	mux.Handle("GET /api/penetration/{tgId}", jwtMiddleware(http.HandlerFunc(h.Penetration.GetPenetration)))

	// Agent notes
	mux.Handle("POST /api/notes", jwtMiddleware(http.HandlerFunc(h.Notes.AddNote)))
	mux.Handle("GET /api/notes/{tgId}", jwtMiddleware(http.HandlerFunc(h.Notes.ListNotes)))

	// Observability
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return mux
}
