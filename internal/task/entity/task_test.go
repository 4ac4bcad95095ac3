package entity

import (
	"testing"
	"time"
)

func TestTaskFilter_Match(t *testing.T) {
	t.Parallel()

	yes, no := true, false
	task := Task{ID: 1, UserID: 7, IsCompleted: true}

	tests := []struct {
		name   string
		filter TaskFilter
		want   bool
	}{
		{name: "owner any state", filter: TaskFilter{UserID: 7}, want: true},
		{name: "owner completed", filter: TaskFilter{UserID: 7, Completed: &yes}, want: true},
		{name: "owner pending", filter: TaskFilter{UserID: 7, Completed: &no}, want: false},
		{name: "other user", filter: TaskFilter{UserID: 8}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.filter.Match(task); got != tt.want {
				t.Fatalf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWelcomeTask(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	got := WelcomeTask(11, 7, "alice", now)

	if got.ID != 11 || got.UserID != 7 || got.IsCompleted {
		t.Fatalf("WelcomeTask() = %+v", got)
	}
	if got.Name != "Welcome to GoTask, alice" {
		t.Fatalf("Name = %q", got.Name)
	}
	if !got.DueDate.Equal(now.AddDate(0, 0, 7)) {
		t.Fatalf("DueDate = %v", got.DueDate)
	}
}
