// Package notify defines the notification surface the core emits to.
package notify

// Button is an action offered on a notification. Button indices are part of
// the protocol: on reminder notifications index 0 starts a session for the
// task and index 1 snoozes it by 15 minutes.
type Button struct {
	Title string `json:"title"`
}

// Notification is a single message for the user.
type Notification struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	// Priority 0-2; display surfaces may use it for ordering or emphasis.
	Priority int `json:"priority"`
	// RequireInteraction marks notifications that demand acknowledgement
	// rather than auto-dismissing. Set once a reminder has escalated past
	// its first level.
	RequireInteraction bool     `json:"requireInteraction"`
	Buttons            []Button `json:"buttons,omitempty"`
	// TaskID ties reminder notifications back to their task for button
	// dispatch.
	TaskID string `json:"taskId,omitempty"`
}

// Notifier displays notifications. Implementations must be safe for use
// from the engine's event goroutines.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Notification)

// Notify implements Notifier.
func (f NotifierFunc) Notify(n Notification) { f(n) }
