package notify

import (
	"time"

	"github.com/google/uuid"
)

// Type represents the notification type/severity.
type Type string

const (
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeWarning Type = "warning"
	TypeError   Type = "error"
)

// Action represents a call-to-action attached to a notification. Command is
// an application-level instruction the UI maps to behaviour, e.g. "cart.open"
// renders a "view cart" button that opens the cart panel.
type Action struct {
	Label   string `json:"label"`
	Command string `json:"command"`
}

// Notification is a single user-facing notice.
type Notification struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Actions   []Action  `json:"actions,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// New creates a notification with a generated ID and the current timestamp.
func New(typ Type, title, message string, actions ...Action) Notification {
	return Notification{
		ID:        uuid.New().String(),
		Type:      typ,
		Title:     title,
		Message:   message,
		Actions:   actions,
		CreatedAt: time.Now(),
	}
}

// Success is shorthand for New(TypeSuccess, ...).
func Success(title, message string, actions ...Action) Notification {
	return New(TypeSuccess, title, message, actions...)
}

// Warning is shorthand for New(TypeWarning, ...).
func Warning(title, message string, actions ...Action) Notification {
	return New(TypeWarning, title, message, actions...)
}

// Error is shorthand for New(TypeError, ...).
func Error(title, message string, actions ...Action) Notification {
	return New(TypeError, title, message, actions...)
}

// Notifier receives notices emitted by stores. Implementations must not
// block: stores emit synchronously from their mutation paths.
type Notifier interface {
	Notify(n Notification)
}

// Discard is a Notifier that drops every notice. Stores default to it so
// notifications stay opt-in.
type Discard struct{}

func (Discard) Notify(Notification) {}
