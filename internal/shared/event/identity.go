// Package event holds the payloads exchanged between modules over messaging.
package event

import "time"

const (
	UserRegisteredDestination     string = "identity.user_registered"
	UserRegisteredConsumerWelcome string = "task.user_registered.welcome"

	SessionEndedDestination string = "identity.session_ended"
)

// HeaderCorrelationID carries the request correlation id across the broker.
const HeaderCorrelationID string = "cID"

type UserRegisteredMessage struct {
	UserID       int64     `json:"user_id"`
	Username     string    `json:"username"`
	RegisteredAt time.Time `json:"registered_at"`
}

type SessionEndedMessage struct {
	UserID  int64     `json:"user_id"`
	EndedAt time.Time `json:"ended_at"`
}
