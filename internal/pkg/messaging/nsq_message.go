package messaging

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nsqio/go-nsq"
)

// nsqEnvelopeVersion marks bodies written by this package. NSQ has no message
// headers, so key and headers travel inside the body.
const nsqEnvelopeVersion = 1

type nsqEnvelope struct {
	Version int               `json:"v"`
	Key     []byte            `json:"k,omitempty"`
	Headers map[string]string `json:"h,omitempty"`
	Body    []byte            `json:"b"`
}

func encodeNSQEnvelope(msg OutgoingMessage) ([]byte, error) {
	b, err := json.Marshal(nsqEnvelope{
		Version: nsqEnvelopeVersion,
		Key:     msg.Key,
		Headers: msg.Headers,
		Body:    msg.Body,
	})
	if err != nil {
		return nil, fmt.Errorf("messaging: nsq encode envelope: %w", err)
	}
	return b, nil
}

// decodeNSQEnvelope unwraps a body written by encodeNSQEnvelope. Anything
// else is returned as a bare body.
func decodeNSQEnvelope(raw []byte) nsqEnvelope {
	var env nsqEnvelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Version != nsqEnvelopeVersion {
		return nsqEnvelope{Body: raw}
	}
	return env
}

type nsqMessage struct {
	responder
	topic string
	env   nsqEnvelope
	msg   *nsq.Message
}

func newNSQMessage(topic string, msg *nsq.Message) *nsqMessage {
	return &nsqMessage{topic: topic, env: decodeNSQEnvelope(msg.Body), msg: msg}
}

func (m *nsqMessage) Body() []byte { return m.env.Body }
func (m *nsqMessage) Key() []byte  { return m.env.Key }

func (m *nsqMessage) Header(key string) string { return m.env.Headers[key] }

func (m *nsqMessage) Headers() map[string]string { return m.env.Headers }

func (m *nsqMessage) ID() string           { return hex.EncodeToString(m.msg.ID[:]) }
func (m *nsqMessage) Topic() string        { return m.topic }
func (m *nsqMessage) Timestamp() time.Time { return time.Unix(0, m.msg.Timestamp) }

func (m *nsqMessage) Ack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.claim() {
		m.msg.Finish()
	}
	return nil
}

// Nack requeues with nsqd's default backoff.
func (m *nsqMessage) Nack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.claim() {
		m.msg.Requeue(-1)
	}
	return nil
}
