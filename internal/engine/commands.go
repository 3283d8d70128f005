package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lawrnfy/TaskForge/models"
	"github.com/lawrnfy/TaskForge/types"
)

// Command is the closed set of requests the UI layer can drive the core
// with. Dispatch switches exhaustively over these variants.
type Command interface {
	isCommand()
}

// GetState requests a full snapshot of tasks, settings, stats, session,
// and reminders.
type GetState struct{}

// AddTask creates a task and schedules its first reminder.
type AddTask struct {
	Title      string
	Importance int
	EffortMin  int
	DueAt      *time.Time
	Notes      string
}

// DeleteTask removes a task, its reminder state, and any pending reminder
// alarm.
type DeleteTask struct {
	TaskID string
}

// StartSession begins a focus session. TaskID and DurationMin are optional.
type StartSession struct {
	TaskID      string
	DurationMin int
}

// PauseSession freezes the running session.
type PauseSession struct{}

// ResumeSession continues a paused session.
type ResumeSession struct{}

// StopSession abandons the running session without credit.
type StopSession struct{}

// StartBreak runs a break timer.
type StartBreak struct{}

// UpdateSettings merges a partial settings patch.
type UpdateSettings struct {
	Patch models.SettingsPatch
}

func (GetState) isCommand()       {}
func (AddTask) isCommand()        {}
func (DeleteTask) isCommand()     {}
func (StartSession) isCommand()   {}
func (PauseSession) isCommand()   {}
func (ResumeSession) isCommand()  {}
func (StopSession) isCommand()    {}
func (StartBreak) isCommand()     {}
func (UpdateSettings) isCommand() {}

// StateSnapshot is the full application state returned by GetState.
type StateSnapshot struct {
	Tasks     []models.Task                   `json:"tasks"`
	Settings  models.Settings                 `json:"settings"`
	Stats     models.Stats                    `json:"stats"`
	Session   models.SessionState             `json:"session"`
	Reminders map[string]models.ReminderState `json:"reminders"`
}

// Response is the typed result of a dispatched command.
type Response struct {
	OK bool `json:"ok"`
	// Ignored marks benign no-op outcomes (double start, pause of an idle
	// session) so callers can tell them from plain success.
	Ignored bool           `json:"ignored,omitempty"`
	Reason  string         `json:"reason,omitempty"`
	Task    *models.Task   `json:"task,omitempty"`
	State   *StateSnapshot `json:"state,omitempty"`
}

// Dispatch executes a command. Store failures come back as errors
// (retryable by the caller); ignored lifecycle commands come back as
// Response{OK:false, Ignored:true}.
func (e *Engine) Dispatch(cmd Command) (Response, error) {
	switch c := cmd.(type) {
	case GetState:
		snap, err := e.Snapshot()
		if err != nil {
			return Response{}, err
		}
		return Response{OK: true, State: snap}, nil

	case AddTask:
		task, err := e.AddTask(c)
		if err != nil {
			return Response{}, err
		}
		return Response{OK: true, Task: &task}, nil

	case DeleteTask:
		if err := e.RemoveTask(c.TaskID); err != nil {
			return Response{}, err
		}
		return Response{OK: true}, nil

	case StartSession:
		return lifecycleResponse(e.StartSession(c.TaskID, c.DurationMin))

	case PauseSession:
		return lifecycleResponse(e.PauseSession())

	case ResumeSession:
		return lifecycleResponse(e.ResumeSession())

	case StopSession:
		return lifecycleResponse(e.StopSession())

	case StartBreak:
		if err := e.StartBreak(); err != nil {
			return Response{}, err
		}
		return Response{OK: true}, nil

	case UpdateSettings:
		if err := e.PatchSettings(c.Patch); err != nil {
			return Response{}, err
		}
		return Response{OK: true}, nil

	default:
		return Response{}, fmt.Errorf("unknown command %T", cmd)
	}
}

func lifecycleResponse(err error) (Response, error) {
	if err == nil {
		return Response{OK: true}, nil
	}
	if types.IsIgnored(err) {
		return Response{OK: false, Ignored: true, Reason: err.Error()}, nil
	}
	return Response{}, err
}

// Snapshot assembles the full state view.
func (e *Engine) Snapshot() (*StateSnapshot, error) {
	tasks, err := e.store.ListTasks(nil)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	settings, err := e.store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	stats, err := e.store.GetStats()
	if err != nil {
		return nil, fmt.Errorf("read stats: %w", err)
	}
	sess, err := e.store.GetSession()
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	reminders, err := e.store.GetReminders()
	if err != nil {
		return nil, fmt.Errorf("read reminders: %w", err)
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return &StateSnapshot{
		Tasks:     tasks,
		Settings:  settings,
		Stats:     stats,
		Session:   sess,
		Reminders: reminders,
	}, nil
}

// AddTask persists a new task (numeric fields coerced, not rejected) and
// schedules its first reminder.
func (e *Engine) AddTask(c AddTask) (models.Task, error) {
	task := models.NewTask(uuid.NewString(), c.Title, c.Importance, c.EffortMin)
	task.DueAt = c.DueAt
	task.Notes = c.Notes
	if err := e.store.PutTask(task); err != nil {
		return models.Task{}, fmt.Errorf("persist task: %w", err)
	}
	if err := e.ScheduleNextReminder(task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// RemoveTask deletes a task, cascading its reminder state and cancelling
// any pending reminder alarm. Deleting an unknown task is benign.
func (e *Engine) RemoveTask(taskID string) error {
	if err := e.CancelReminder(taskID); err != nil {
		return err
	}
	if err := e.store.DeleteTask(taskID); err != nil {
		if errors.Is(err, types.ErrTaskNotFound) {
			return nil
		}
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// PatchSettings merges a partial settings update onto stored settings.
func (e *Engine) PatchSettings(patch models.SettingsPatch) error {
	settings, err := e.store.GetSettings()
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}
	patch.Apply(&settings)
	if err := e.store.SetSettings(settings); err != nil {
		return fmt.Errorf("persist settings: %w", err)
	}
	return nil
}
