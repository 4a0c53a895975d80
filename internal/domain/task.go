package domain

import "time"

// Task is a single reminder item owned by the app's one user.
type Task struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Deadline        time.Time  `json:"deadline"`
	Completed       bool       `json:"completed"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	NotifiedOverdue bool       `json:"notified_overdue"`
}

// Overdue reports whether the task's deadline has passed while it is
// still incomplete. Completed tasks are never overdue, regardless of
// deadline. Derived, never stored.
func (t *Task) Overdue(now time.Time) bool {
	return !t.Completed && t.Deadline.Before(now)
}
