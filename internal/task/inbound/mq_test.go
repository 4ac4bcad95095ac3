package inbound

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shandysiswandi/gotask/internal/pkg/config"
	"github.com/shandysiswandi/gotask/internal/pkg/goroutine"
	"github.com/shandysiswandi/gotask/internal/pkg/instrument"
	"github.com/shandysiswandi/gotask/internal/pkg/messaging"
	"github.com/shandysiswandi/gotask/internal/shared/event"
	"github.com/shandysiswandi/gotask/internal/task/usecase"
)

type fixedUUID struct{}

func (fixedUUID) Generate() string { return "generated-cid" }

type fakeMessage struct {
	body    []byte
	headers map[string]string
}

func (m fakeMessage) Body() []byte { return m.body }
func (m fakeMessage) Key() []byte { return nil }
func (m fakeMessage) Header(key string) string { return m.headers[key] }
func (m fakeMessage) Headers() map[string]string { return m.headers }
func (m fakeMessage) ID() string { return "m-1" }
func (m fakeMessage) Topic() string { return event.UserRegisteredDestination }
func (m fakeMessage) Timestamp() time.Time { return time.Time{} }
func (m fakeMessage) Ack(context.Context) error { return nil }
func (m fakeMessage) Nack(context.Context) error { return nil }

type cidRecorder struct {
	fakeUC
	cID string
}

func (c *cidRecorder) ConsumeUserRegistered(ctx context.Context, in usecase.ConsumeUserRegisteredInput) error {
	c.cID = instrument.GetCorrelationID(ctx)
	return c.fakeUC.ConsumeUserRegistered(ctx, in)
}

func newHandler(uc uc) *MQHandler {
	return &MQHandler{uc: uc, uuid: fixedUUID{}, ins: instrument.NewNoop()}
}

func TestMQHandler_UserRegisteredWelcome(t *testing.T) {
	t.Parallel()

	t.Run("forwards the event with its correlation id", func(t *testing.T) {
		t.Parallel()

		// Arrange
		uc := &cidRecorder{}
		msg := fakeMessage{
			body:    []byte(`{"user_id":42,"username":"alice","registered_at":"2026-05-04T10:00:00Z"}`),
			headers: map[string]string{event.HeaderCorrelationID: "cid-from-identity"},
		}

		// Act
		err := newHandler(uc).UserRegisteredWelcome(context.Background(), msg)

		// Assert
		if err != nil {
			t.Fatalf("UserRegisteredWelcome() error = %v", err)
		}
		if len(uc.consumed) != 1 || uc.consumed[0].UserID != 42 || uc.consumed[0].Username != "alice" {
			t.Fatalf("consumed = %+v", uc.consumed)
		}
		if uc.cID != "cid-from-identity" {
			t.Fatalf("correlation id = %q", uc.cID)
		}
	})

	t.Run("generates a correlation id when missing", func(t *testing.T) {
		t.Parallel()

		uc := &cidRecorder{}
		if err := newHandler(uc).UserRegisteredWelcome(context.Background(), fakeMessage{body: []byte(`{"user_id":1}`)}); err != nil {
			t.Fatalf("UserRegisteredWelcome() error = %v", err)
		}
		if uc.cID != "generated-cid" {
			t.Fatalf("correlation id = %q", uc.cID)
		}
	})

	t.Run("malformed body is dropped", func(t *testing.T) {
		t.Parallel()

		uc := &cidRecorder{}
		if err := newHandler(uc).UserRegisteredWelcome(context.Background(), fakeMessage{body: []byte(`{`)}); err != nil {
			t.Fatalf("UserRegisteredWelcome() error = %v", err)
		}
		if len(uc.consumed) != 0 {
			t.Fatalf("usecase should not be called")
		}
	})

	t.Run("usecase error is returned for redelivery", func(t *testing.T) {
		t.Parallel()

		uc := &cidRecorder{fakeUC: fakeUC{err: errors.New("db down")}}
		if err := newHandler(uc).UserRegisteredWelcome(context.Background(), fakeMessage{body: []byte(`{"user_id":1}`)}); err == nil {
			t.Fatalf("expected error")
		}
	})
}

type fakeConsumer struct {
	topics chan string
}

func (f *fakeConsumer) Consume(ctx context.Context, source string, _ messaging.Handler, _ ...messaging.ConsumeOption) error {
	f.topics <- source
	<-ctx.Done()
	return ctx.Err()
}

func TestRegisterMQConsumer(t *testing.T) {
	t.Parallel()

	cfg, err := config.NewViperFromBytes("yaml", []byte("modules:\n  task:\n    consumer_names: [\"task.user_registered.welcome\"]\n"))
	if err != nil {
		t.Fatalf("NewViperFromBytes() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	routine := goroutine.NewManager(4)
	consumer := &fakeConsumer{topics: make(chan string, 1)}

	started := RegisterMQConsumer(ctx, cfg, routine, consumer, fixedUUID{}, &fakeUC{}, instrument.NewNoop())
	if started != 1 {
		t.Fatalf("started = %d, want 1", started)
	}

	select {
	case topic := <-consumer.topics:
		if topic != event.UserRegisteredDestination {
			t.Fatalf("topic = %q", topic)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("consumer not started")
	}

	cancel()
	if err := routine.Wait(); err != nil {
		t.Fatalf("Wait() error = %v, a canceled consumer is a clean stop", err)
	}
}

func TestRegisterMQConsumer_Disabled(t *testing.T) {
	t.Parallel()

	cfg, err := config.NewViperFromBytes("yaml", []byte("modules:\n  task:\n    consumer_names: []\n"))
	if err != nil {
		t.Fatalf("NewViperFromBytes() error = %v", err)
	}

	started := RegisterMQConsumer(context.Background(), cfg, goroutine.NewManager(1), &fakeConsumer{}, fixedUUID{}, &fakeUC{}, instrument.NewNoop())
	if started != 0 {
		t.Fatalf("started = %d, want 0", started)
	}
}
