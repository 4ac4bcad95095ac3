package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shandysiswandi/gotask/internal/identity/usecase"
	"github.com/shandysiswandi/gotask/internal/pkg/instrument"
	"github.com/shandysiswandi/gotask/internal/pkg/messaging"
	"github.com/shandysiswandi/gotask/internal/shared/event"
)

type capturePublisher struct {
	destination string
	msg         messaging.OutgoingMessage
	err         error
}

func (c *capturePublisher) Publish(_ context.Context, destination string, msg messaging.OutgoingMessage) (messaging.PublishResult, error) {
	c.destination = destination
	c.msg = msg
	return messaging.PublishResult{Topic: destination}, c.err
}

func TestMessaging_PublishUserRegistered(t *testing.T) {
	t.Parallel()

	// Arrange
	pub := &capturePublisher{}
	m := NewMessaging(pub, instrument.NewNoop())
	ctx := instrument.SetCorrelationID(context.Background(), "cid-42")
	at := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

	// Act
	err := m.PublishUserRegistered(ctx, usecase.UserRegisteredEvent{UserID: 42, Username: "alice", RegisteredAt: at})

	// Assert
	if err != nil {
		t.Fatalf("PublishUserRegistered() error = %v", err)
	}
	if pub.destination != event.UserRegisteredDestination {
		t.Fatalf("destination = %q", pub.destination)
	}
	if string(pub.msg.Key) != "42" {
		t.Fatalf("key = %q, want 42", pub.msg.Key)
	}
	if pub.msg.Headers[event.HeaderCorrelationID] != "cid-42" {
		t.Fatalf("headers = %v", pub.msg.Headers)
	}

	var body event.UserRegisteredMessage
	if err := json.Unmarshal(pub.msg.Body, &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body.UserID != 42 || body.Username != "alice" || !body.RegisteredAt.Equal(at) {
		t.Fatalf("body = %+v", body)
	}
}

func TestMessaging_PublishSessionEndedError(t *testing.T) {
	t.Parallel()

	pub := &capturePublisher{err: errors.New("broker down")}
	m := NewMessaging(pub, instrument.NewNoop())

	err := m.PublishSessionEnded(context.Background(), usecase.SessionEndedEvent{UserID: 1})

	if err == nil {
		t.Fatalf("expected publish error")
	}
	if pub.destination != event.SessionEndedDestination {
		t.Fatalf("destination = %q", pub.destination)
	}
}
