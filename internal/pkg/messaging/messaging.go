package messaging

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	// ErrClosed is returned by every operation on a closed client.
	ErrClosed = errors.New("messaging: client is closed")
	// ErrDestinationRequired is returned when the topic or subject is empty.
	ErrDestinationRequired = errors.New("messaging: destination is required")
	// ErrHandlerRequired is returned when Consume is called with a nil handler.
	ErrHandlerRequired = errors.New("messaging: handler is required")
)

// Messaging is a broker-agnostic client that can publish and consume messages.
type Messaging interface {
	io.Closer

	Publisher
	Consumer
}

// Publisher publishes messages to a topic or subject.
type Publisher interface {
	Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error)
}

// Consumer consumes messages from a topic or subject. Consume blocks until
// ctx is canceled or the subscription fails.
type Consumer interface {
	Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error
}

// Handler processes a received message. With auto ack enabled a nil error
// acks the message and a non-nil error nacks it.
type Handler func(ctx context.Context, msg Message) error

// OutgoingMessage is a message to be published.
type OutgoingMessage struct {
	Body []byte
	// Key selects the Kafka partition; NATS ignores it.
	Key     []byte
	Headers map[string]string
}

// PublishResult carries what the broker reported back.
type PublishResult struct {
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
}

// Message is a received message.
type Message interface {
	Body() []byte
	Key() []byte
	// Header returns the first value of the named header, or "".
	Header(key string) string
	Headers() map[string]string
	// ID identifies the delivery when the broker provides one.
	ID() string
	Topic() string
	Timestamp() time.Time

	Ack(ctx context.Context) error
	Nack(ctx context.Context) error
}
