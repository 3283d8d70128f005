package store

import "github.com/lawrnfy/TaskForge/models"

// StateStore is the typed repository for every aggregate the core mutates:
// the task collection, the single session record, the stats ledger, the
// per-task reminder map, and user settings. Implementations persist each
// mutation before returning; callers must not assume a write succeeded
// without a nil error.
//
// The store offers no multi-step transactions. Handlers performing
// read-modify-write sequences against the same aggregate must be serialized
// by the caller (the engine holds a per-aggregate mutex).
type StateStore interface {
	// Initialize configures the store with backend-specific settings such
	// as file path and data format. It must be called before any other
	// operation.
	Initialize(config map[string]string) error

	// ListTasks returns every task, optionally filtered.
	ListTasks(filterFn func(models.Task) bool) ([]models.Task, error)

	// GetTask retrieves a task by ID. It returns types.ErrTaskNotFound
	// (wrapped) when the task does not exist.
	GetTask(id string) (models.Task, error)

	// PutTask inserts or replaces a task.
	PutTask(task models.Task) error

	// DeleteTask removes a task and its reminder state. Deleting an absent
	// task is an error; callers that treat it as benign check first.
	DeleteTask(id string) error

	// GetSession returns the current session record.
	GetSession() (models.SessionState, error)

	// SetSession replaces the session record.
	SetSession(s models.SessionState) error

	// GetStats returns the credit/streak ledger.
	GetStats() (models.Stats, error)

	// SetStats replaces the ledger.
	SetStats(st models.Stats) error

	// GetReminders returns the full reminder map keyed by task ID.
	GetReminders() (map[string]models.ReminderState, error)

	// GetReminder returns the reminder state for one task and whether it
	// exists.
	GetReminder(taskID string) (models.ReminderState, bool, error)

	// SetReminder inserts or replaces reminder state for a task.
	SetReminder(taskID string, r models.ReminderState) error

	// SetReminders replaces the whole reminder map. Used by the daily
	// reset, which touches every entry at once.
	SetReminders(rs map[string]models.ReminderState) error

	// DeleteReminder removes reminder state for a task; removing absent
	// state is a no-op.
	DeleteReminder(taskID string) error

	// GetSettings returns stored settings, seeding defaults on first read.
	GetSettings() (models.Settings, error)

	// SetSettings replaces stored settings.
	SetSettings(s models.Settings) error

	// Close releases any resources held by the store, such as file locks.
	Close() error
}
