package messaging

import (
	"context"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

type kafkaMessage struct {
	responder
	reader *kafka.Reader
	msg    kafka.Message
}

func newKafkaMessage(reader *kafka.Reader, msg kafka.Message) *kafkaMessage {
	return &kafkaMessage{reader: reader, msg: msg}
}

func (m *kafkaMessage) Body() []byte { return m.msg.Value }
func (m *kafkaMessage) Key() []byte  { return m.msg.Key }

func (m *kafkaMessage) Header(key string) string {
	for _, h := range m.msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (m *kafkaMessage) Headers() map[string]string {
	if len(m.msg.Headers) == 0 {
		return nil
	}
	out := make(map[string]string, len(m.msg.Headers))
	for _, h := range m.msg.Headers {
		if _, seen := out[h.Key]; !seen {
			out[h.Key] = string(h.Value)
		}
	}
	return out
}

func (m *kafkaMessage) ID() string {
	return m.msg.Topic + "/" + strconv.Itoa(m.msg.Partition) + "/" + strconv.FormatInt(m.msg.Offset, 10)
}

func (m *kafkaMessage) Topic() string        { return m.msg.Topic }
func (m *kafkaMessage) Timestamp() time.Time { return m.msg.Time }

// Ack commits the offset for the consumer group.
func (m *kafkaMessage) Ack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !m.claim() {
		return nil
	}
	return m.reader.CommitMessages(ctx, m.msg)
}

// Nack leaves the offset uncommitted; kafka has no per message redelivery,
// so the message comes back only after a rebalance or restart.
func (m *kafkaMessage) Nack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.claim()
	return nil
}
