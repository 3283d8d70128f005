package models

import "time"

// SessionState is the single focus-session record. At most one session is
// ever active; an inactive state has every other field at its zero value.
//
// Invariant: RemainingMs is non-nil iff Paused is true. HadPause is sticky
// for the lifetime of the session so pause/resume cycling cannot dodge the
// credit penalty.
type SessionState struct {
	Active      bool       `json:"active"`
	TaskID      *string    `json:"taskId,omitempty"`
	StartAt     time.Time  `json:"startAt,omitempty"`
	EndAt       time.Time  `json:"endAt,omitempty"`
	Paused      bool       `json:"paused"`
	PausedAt    *time.Time `json:"pausedAt,omitempty"`
	RemainingMs *int64     `json:"remainingMs,omitempty"`
	HadPause    bool       `json:"hadPause"`
}

// Reset returns the session to the neutral idle state.
func (s *SessionState) Reset() {
	*s = SessionState{}
}

// Remaining reports the time left in the session at now. A paused session
// reports its frozen remainder; an idle session reports zero.
func (s *SessionState) Remaining(now time.Time) time.Duration {
	if !s.Active {
		return 0
	}
	if s.Paused && s.RemainingMs != nil {
		return time.Duration(*s.RemainingMs) * time.Millisecond
	}
	if d := s.EndAt.Sub(now); d > 0 {
		return d
	}
	return 0
}
