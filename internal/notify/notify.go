// Package notify keeps the transient toast messages shown to a session.
package notify

import (
	"time"

	"github.com/google/uuid"
)

// Severity selects the toast styling
type Severity string

const (
	Info    Severity = "info"
	Success Severity = "success"
	Error   Severity = "error"
)

// DefaultTTL is how long a toast stays visible unless dismissed
const DefaultTTL = 5 * time.Second

// Notification is one toast
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Stack holds a session's toasts, oldest first
type Stack struct {
	Items []Notification `json:"items,omitempty"`
}

// Center creates and expires toasts
type Center struct {
	ttl time.Duration
	now func() time.Time
}

// NewCenter returns a Center whose toasts live for ttl. A non-positive ttl
// uses DefaultTTL.
func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{ttl: ttl, now: time.Now}
}

// WithClock replaces the time source
func (c *Center) WithClock(now func() time.Time) *Center {
	c.now = now
	return c
}

// Notify appends a toast to the stack and returns it. Toasts are independent;
// showing one never removes another.
func (c *Center) Notify(stack *Stack, message string, severity Severity) Notification {
	now := c.now()
	n := Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  severity,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}
	stack.Items = append(stack.Items, n)
	return n
}

// Dismiss removes the toast with id. It reports whether one was removed.
func (c *Center) Dismiss(stack *Stack, id string) bool {
	for i, n := range stack.Items {
		if n.ID == id {
			stack.Items = append(stack.Items[:i], stack.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Active prunes expired toasts and returns a copy of the ones left
func (c *Center) Active(stack *Stack) []Notification {
	now := c.now()
	kept := stack.Items[:0]
	for _, n := range stack.Items {
		if now.Before(n.ExpiresAt) {
			kept = append(kept, n)
		}
	}
	stack.Items = kept
	if len(kept) == 0 {
		stack.Items = nil
		return nil
	}

	out := make([]Notification, len(kept))
	copy(out, kept)
	return out
}
