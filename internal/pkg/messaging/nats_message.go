package messaging

import (
	"context"
	"errors"
	"time"

	"github.com/nats-io/nats.go"
)

type natsMessage struct {
	responder
	msg        *nats.Msg
	receivedAt time.Time
}

func newNATSMessage(msg *nats.Msg) *natsMessage {
	return &natsMessage{msg: msg, receivedAt: time.Now()}
}

func (m *natsMessage) Body() []byte { return m.msg.Data }
func (m *natsMessage) Key() []byte  { return nil }

func (m *natsMessage) Header(key string) string {
	if m.msg.Header == nil {
		return ""
	}
	return m.msg.Header.Get(key)
}

func (m *natsMessage) Headers() map[string]string {
	if len(m.msg.Header) == 0 {
		return nil
	}
	out := make(map[string]string, len(m.msg.Header))
	for k, values := range m.msg.Header {
		if len(values) > 0 {
			out[k] = values[0]
		}
	}
	return out
}

// ID is empty: core NATS does not number deliveries.
func (m *natsMessage) ID() string           { return "" }
func (m *natsMessage) Topic() string        { return m.msg.Subject }
func (m *natsMessage) Timestamp() time.Time { return m.receivedAt }

// Ack and Nack only reach the server for JetStream deliveries; plain
// subscriptions have nothing to acknowledge.
func (m *natsMessage) Ack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !m.claim() {
		return nil
	}
	return ignoreNoAck(m.msg.Ack())
}

func (m *natsMessage) Nack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !m.claim() {
		return nil
	}
	return ignoreNoAck(m.msg.Nak())
}

func ignoreNoAck(err error) error {
	if errors.Is(err, nats.ErrMsgNoReply) || errors.Is(err, nats.ErrMsgNotBound) {
		return nil
	}
	return err
}
