package mq

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/shandysiswandi/gotask/internal/identity/usecase"
	"github.com/shandysiswandi/gotask/internal/pkg/instrument"
	"github.com/shandysiswandi/gotask/internal/pkg/messaging"
	"github.com/shandysiswandi/gotask/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type Messaging struct {
	client messaging.Publisher
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Publisher, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishUserRegistered(ctx context.Context, msg usecase.UserRegisteredEvent) error {
	ctx, span := m.ins.Tracer("identity.outbound.mq").Start(ctx, "PublishUserRegistered")
	defer span.End()

	return m.publish(ctx, span, event.UserRegisteredDestination, msg.UserID, event.UserRegisteredMessage{
		UserID:       msg.UserID,
		Username:     msg.Username,
		RegisteredAt: msg.RegisteredAt,
	})
}

func (m *Messaging) PublishSessionEnded(ctx context.Context, msg usecase.SessionEndedEvent) error {
	ctx, span := m.ins.Tracer("identity.outbound.mq").Start(ctx, "PublishSessionEnded")
	defer span.End()

	return m.publish(ctx, span, event.SessionEndedDestination, msg.UserID, event.SessionEndedMessage{
		UserID:  msg.UserID,
		EndedAt: msg.EndedAt,
	})
}

// publish keys every message by user id so one user's events stay ordered
// on partitioned brokers.
func (m *Messaging) publish(ctx context.Context, span trace.Span, destination string, userID int64, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if _, err := m.client.Publish(ctx, destination, messaging.OutgoingMessage{
		Body:    body,
		Key:     []byte(strconv.FormatInt(userID, 10)),
		Headers: map[string]string{event.HeaderCorrelationID: instrument.GetCorrelationID(ctx)},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
