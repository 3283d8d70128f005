package server

import (
	"time"

	"github.com/lawrnfy/TaskForge/models"
)

// AddTaskRequest is the payload for POST /api/tasks.
type AddTaskRequest struct {
	Title      string     `json:"title"`
	Importance int        `json:"importance"`
	EffortMin  int        `json:"effortMin"`
	DueAt      *time.Time `json:"dueAt,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

// StartSessionRequest is the payload for POST /api/session/start.
type StartSessionRequest struct {
	TaskID      string `json:"taskId,omitempty"`
	DurationMin int    `json:"durationMin,omitempty"`
}

// UpdateSettingsRequest is the payload for PATCH /api/settings.
type UpdateSettingsRequest struct {
	Settings models.SettingsPatch `json:"settings"`
}

// GateResponse is the result of GET /api/gate.
type GateResponse struct {
	Host    string `json:"host"`
	Blocked bool   `json:"blocked"`
}
