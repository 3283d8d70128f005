package server

import "net/http"

// registerRoutes sets up all API endpoints
func (s *Server) registerRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/state", s.handleGetState)
	mux.HandleFunc("POST /api/tasks", s.handleAddTask)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.handleDeleteTask)
	mux.HandleFunc("POST /api/session/start", s.handleStartSession)
	mux.HandleFunc("POST /api/session/pause", s.handlePauseSession)
	mux.HandleFunc("POST /api/session/resume", s.handleResumeSession)
	mux.HandleFunc("POST /api/session/stop", s.handleStopSession)
	mux.HandleFunc("POST /api/break/start", s.handleStartBreak)
	mux.HandleFunc("PATCH /api/settings", s.handleUpdateSettings)
	mux.HandleFunc("GET /api/gate", s.handleGateCheck)
	mux.HandleFunc("POST /api/notifications/{taskId}/actions/{index}", s.handleNotificationAction)

	return s.corsMiddleware(mux)
}
