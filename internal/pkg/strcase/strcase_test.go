package strcase

import "testing"

func TestToLowerSnake(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":               "",
		"Username":       "username",
		"TaskName":       "task_name",
		"userID":         "user_id",
		"HTTPServer":     "http_server",
		"RefreshToken":   "refresh_token",
		"DueDate2":       "due_date2",
		"IdempotencyKey": "idempotency_key",
		"already_snake":  "already_snake",
	}

	for in, want := range cases {
		if got := ToLowerSnake(in); got != want {
			t.Fatalf("ToLowerSnake(%q) = %q, want %q", in, got, want)
		}
	}
}
