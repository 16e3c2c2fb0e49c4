package handlers

import "net/http"

// Handlers groups every HTTP handler the API serves.
type Handlers struct {
	Health     *HealthHandler
	Users      *UserHandler
	Records    *RecordHandler
	Statistics *StatisticsHandler
	Friends    *FriendHandler
}

// Register mounts the API routes on mux.
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /live", h.Health.Live)

	mux.HandleFunc("POST /api/users", h.Users.Create)
	mux.HandleFunc("GET /api/users/{id}", h.Users.Get)
	mux.HandleFunc("GET /api/users/{id}/score", h.Users.WeeklyScore)

	mux.HandleFunc("POST /api/exercises", h.Records.Create)
	mux.HandleFunc("GET /api/users/{id}/exercises", h.Records.List)
	mux.HandleFunc("GET /api/exercises/{id}", h.Records.Get)
	mux.HandleFunc("PUT /api/exercises/{id}", h.Records.Update)
	mux.HandleFunc("DELETE /api/exercises/{id}", h.Records.Delete)

	mux.HandleFunc("GET /api/statistics/global", h.Statistics.Global)
	mux.HandleFunc("GET /api/statistics/{id}", h.Statistics.Get)
	mux.HandleFunc("GET /api/statistics/compare/{id}/{friendID}", h.Statistics.Compare)

	mux.HandleFunc("POST /api/friends/request", h.Friends.SendRequest)
	mux.HandleFunc("POST /api/friends/accept", h.Friends.AcceptRequest)
	mux.HandleFunc("DELETE /api/friends/remove", h.Friends.Remove)
	mux.HandleFunc("GET /api/friends/leaderboard/{id}", h.Friends.Leaderboard)
	mux.HandleFunc("GET /api/friends/{id}", h.Friends.List)
}
