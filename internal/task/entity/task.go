package entity

import "time"

// Task is a to-do item owned by exactly one user.
type Task struct {
	ID          int64
	UserID      int64
	Name        string
	Description string
	DueDate     time.Time
	IsCompleted bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskFilter narrows a task listing. A nil Completed matches both states.
type TaskFilter struct {
	UserID    int64
	Completed *bool
}

// Match reports whether t passes the filter.
func (f TaskFilter) Match(t Task) bool {
	if t.UserID != f.UserID {
		return false
	}
	return f.Completed == nil || *f.Completed == t.IsCompleted
}

// WelcomeTask is seeded for every new account.
func WelcomeTask(id, userID int64, username string, now time.Time) Task {
	return Task{
		ID:          id,
		UserID:      userID,
		Name:        "Welcome to GoTask, " + username,
		Description: "Create your first task, then mark this one as completed.",
		DueDate:     now.Add(7 * 24 * time.Hour),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
