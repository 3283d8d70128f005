package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/lawrnfy/TaskForge/internal/engine"
	"github.com/lawrnfy/TaskForge/types"
	"go.uber.org/zap"
)

func writeAPIJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.NewCommandError(code, message, nil))
}

// dispatch runs a command and maps the outcome onto HTTP. Store failures
// are 503 (retryable); ignored lifecycle no-ops are a 200 with
// ignored=true so UI callers can tell them from success.
func (s *Server) dispatch(w http.ResponseWriter, cmd engine.Command) {
	resp, err := s.engine.Dispatch(cmd)
	if err != nil {
		s.log.Error("command failed", zap.Error(err))
		writeAPIError(w, http.StatusServiceUnavailable, "STORE_ERROR", err.Error())
		return
	}
	writeAPIJSON(w, resp)
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, engine.GetState{})
}

func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	var req AddTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if req.Title == "" {
		writeAPIError(w, http.StatusBadRequest, "BAD_REQUEST", "title is required")
		return
	}
	s.dispatch(w, engine.AddTask{
		Title:      req.Title,
		Importance: req.Importance,
		EffortMin:  req.EffortMin,
		DueAt:      req.DueAt,
		Notes:      req.Notes,
	})
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeAPIError(w, http.StatusBadRequest, "BAD_REQUEST", "missing id")
		return
	}
	s.dispatch(w, engine.DeleteTask{TaskID: id})
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeAPIError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
			return
		}
	}
	s.dispatch(w, engine.StartSession{TaskID: req.TaskID, DurationMin: req.DurationMin})
}

func (s *Server) handlePauseSession(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, engine.PauseSession{})
}

func (s *Server) handleResumeSession(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, engine.ResumeSession{})
}

func (s *Server) handleStopSession(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, engine.StopSession{})
}

func (s *Server) handleStartBreak(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, engine.StartBreak{})
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	s.dispatch(w, engine.UpdateSettings{Patch: req.Settings})
}

func (s *Server) handleGateCheck(w http.ResponseWriter, r *http.Request) {
	host := r.URL.Query().Get("host")
	if host == "" {
		writeAPIError(w, http.StatusBadRequest, "BAD_REQUEST", "host is required")
		return
	}
	blocked, err := s.engine.CheckNavigation(host)
	if err != nil {
		writeAPIError(w, http.StatusServiceUnavailable, "STORE_ERROR", err.Error())
		return
	}
	writeAPIJSON(w, GateResponse{Host: host, Blocked: blocked})
}

func (s *Server) handleNotificationAction(w http.ResponseWriter, r *http.Request) {
	taskID := r.PathValue("taskId")
	index, err := strconv.Atoi(r.PathValue("index"))
	if taskID == "" || err != nil {
		writeAPIError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid action reference")
		return
	}
	if err := s.engine.HandleNotificationAction(taskID, index); err != nil {
		if types.IsIgnored(err) {
			writeAPIJSON(w, engine.Response{Ignored: true, Reason: err.Error()})
			return
		}
		s.log.Error("notification action failed", zap.Error(err))
		writeAPIError(w, http.StatusServiceUnavailable, "STORE_ERROR", err.Error())
		return
	}
	writeAPIJSON(w, engine.Response{OK: true})
}
