package messaging

import (
	"context"
	"maps"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// Memory is an in-process broker. Every consumer group of a topic receives
// each message once; consumers without a group each receive every message.
// Messages published while nobody consumes are dropped.
//
// It backs local development and tests; it is not durable.
type Memory struct {
	mu     sync.RWMutex
	subs   map[string][]*memorySub
	seq    atomic.Int64
	closed bool
	done   chan struct{}
}

type memorySub struct {
	group string
	ch    chan *memoryMessage
	gone  chan struct{}
}

// NewMemory creates an empty in-process broker.
func NewMemory() *Memory {
	return &Memory{subs: make(map[string][]*memorySub), done: make(chan struct{})}
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		close(m.done)
	}
	return nil
}

func (m *Memory) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}
	if destination == "" {
		return PublishResult{}, ErrDestinationRequired
	}

	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		return PublishResult{}, ErrClosed
	}
	subs := append([]*memorySub(nil), m.subs[destination]...)
	m.mu.RUnlock()

	offset := m.seq.Add(1)
	now := time.Now()
	delivered := make(map[string]struct{})

	for _, sub := range subs {
		if sub.group != "" {
			if _, ok := delivered[sub.group]; ok {
				continue
			}
			delivered[sub.group] = struct{}{}
		}

		mm := &memoryMessage{
			topic:   destination,
			offset:  offset,
			at:      now,
			body:    append([]byte(nil), msg.Body...),
			key:     append([]byte(nil), msg.Key...),
			headers: maps.Clone(msg.Headers),
		}
		select {
		case sub.ch <- mm:
		case <-sub.gone:
		case <-m.done:
			return PublishResult{}, ErrClosed
		case <-ctx.Done():
			return PublishResult{}, ctx.Err()
		}
	}

	return PublishResult{Topic: destination, Offset: offset, Timestamp: now}, nil
}

func (m *Memory) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if source == "" {
		return ErrDestinationRequired
	}
	if handler == nil {
		return ErrHandlerRequired
	}

	co := newConsumeOptions(opts...)
	sub := &memorySub{group: co.group, ch: make(chan *memoryMessage, 64), gone: make(chan struct{})}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	m.subs[source] = append(m.subs[source], sub)
	m.mu.Unlock()

	defer func() {
		close(sub.gone)
		m.unsubscribe(source, sub)
	}()

	var wg sync.WaitGroup
	for range co.concurrency {
		wg.Go(func() {
			for {
				select {
				case <-ctx.Done():
					return
				case <-m.done:
					return
				case mm := <-sub.ch:
					_ = deliver(ctx, "memory", mm, handler, co.autoAck)
				}
			}
		})
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	return ErrClosed
}

func (m *Memory) unsubscribe(source string, sub *memorySub) {
	m.mu.Lock()
	defer m.mu.Unlock()

	subs := m.subs[source]
	for i, s := range subs {
		if s == sub {
			m.subs[source] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

type memoryMessage struct {
	responder
	topic   string
	offset  int64
	at      time.Time
	body    []byte
	key     []byte
	headers map[string]string
}

func (m *memoryMessage) Body() []byte               { return m.body }
func (m *memoryMessage) Key() []byte                { return m.key }
func (m *memoryMessage) Header(key string) string   { return m.headers[key] }
func (m *memoryMessage) Headers() map[string]string { return m.headers }
func (m *memoryMessage) ID() string                 { return m.topic + "/" + strconv.FormatInt(m.offset, 10) }
func (m *memoryMessage) Topic() string              { return m.topic }
func (m *memoryMessage) Timestamp() time.Time       { return m.at }

func (m *memoryMessage) Ack(context.Context) error {
	m.claim()
	return nil
}

func (m *memoryMessage) Nack(context.Context) error {
	m.claim()
	return nil
}
