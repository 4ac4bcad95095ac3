package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nsqio/go-nsq"
)

var (
	// ErrNSQProducerAddrRequired is returned by Publish when no nsqd address
	// was configured for the producer.
	ErrNSQProducerAddrRequired = errors.New("messaging: nsq producer address is required")
	// ErrNSQConsumerAddrsRequired is returned by Consume when neither nsqd nor
	// lookupd addresses were configured.
	ErrNSQConsumerAddrsRequired = errors.New("messaging: nsq nsqd or lookupd addresses are required")
	// ErrNSQChannelRequired is returned when Consume is called without WithGroup.
	ErrNSQChannelRequired = errors.New("messaging: nsq channel is required")
)

// NSQConfig configures the NSQ implementation.
type NSQConfig struct {
	ProducerAddr string

	ConsumerNSQDAddrs    []string
	ConsumerLookupdAddrs []string

	// ProducerConfig and ConsumerConfig default to nsq.NewConfig().
	ProducerConfig *nsq.Config
	ConsumerConfig *nsq.Config
}

// NSQ is a Messaging implementation on NSQ topics. The consume group is used
// as the NSQ channel, so consumers sharing a group split the messages.
type NSQ struct {
	producer *nsq.Producer

	nsqdAddrs    []string
	lookupdAddrs []string
	consumerCfg  *nsq.Config

	mu        sync.Mutex
	consumers []*nsq.Consumer
	closed    bool
}

// NewNSQ builds the client. Nothing is dialed until the first publish or
// consume.
func NewNSQ(cfg NSQConfig) (*NSQ, error) {
	n := &NSQ{
		nsqdAddrs:    append([]string(nil), cfg.ConsumerNSQDAddrs...),
		lookupdAddrs: append([]string(nil), cfg.ConsumerLookupdAddrs...),
		consumerCfg:  cfg.ConsumerConfig,
	}
	if n.consumerCfg == nil {
		n.consumerCfg = nsq.NewConfig()
	}

	if cfg.ProducerAddr != "" {
		pcfg := cfg.ProducerConfig
		if pcfg == nil {
			pcfg = nsq.NewConfig()
		}

		p, err := nsq.NewProducer(cfg.ProducerAddr, pcfg)
		if err != nil {
			return nil, fmt.Errorf("messaging: nsq new producer: %w", err)
		}
		p.SetLoggerLevel(nsq.LogLevelError)
		n.producer = p
	}

	return n, nil
}

// Close stops every consumer and then the producer.
func (n *NSQ) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	consumers := n.consumers
	n.consumers = nil
	n.mu.Unlock()

	for _, c := range consumers {
		stopNSQConsumer(c)
	}
	if n.producer != nil {
		n.producer.Stop()
	}
	return nil
}

func (n *NSQ) isClosed() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.closed
}

func (n *NSQ) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}
	if destination == "" {
		return PublishResult{}, ErrDestinationRequired
	}
	if n.isClosed() {
		return PublishResult{}, ErrClosed
	}
	if n.producer == nil {
		return PublishResult{}, ErrNSQProducerAddrRequired
	}

	body, err := encodeNSQEnvelope(msg)
	if err != nil {
		return PublishResult{}, err
	}

	if err := n.producer.Publish(destination, body); err != nil {
		return PublishResult{}, fmt.Errorf("messaging: nsq publish: %w", err)
	}

	return PublishResult{Topic: destination, Timestamp: time.Now()}, nil
}

func (n *NSQ) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if source == "" {
		return ErrDestinationRequired
	}
	if handler == nil {
		return ErrHandlerRequired
	}
	if len(n.nsqdAddrs) == 0 && len(n.lookupdAddrs) == 0 {
		return ErrNSQConsumerAddrsRequired
	}

	co := newConsumeOptions(opts...)
	if co.group == "" {
		return ErrNSQChannelRequired
	}

	ccfg := *n.consumerCfg
	if ccfg.MaxInFlight < co.concurrency {
		ccfg.MaxInFlight = co.concurrency
	}

	consumer, err := nsq.NewConsumer(source, co.group, &ccfg)
	if err != nil {
		return fmt.Errorf("messaging: nsq new consumer: %w", err)
	}
	consumer.SetLoggerLevel(nsq.LogLevelError)

	consumer.AddConcurrentHandlers(nsq.HandlerFunc(func(m *nsq.Message) error {
		m.DisableAutoResponse()
		if err := deliver(ctx, "nsq", newNSQMessage(source, m), handler, co.autoAck); err != nil {
			slog.WarnContext(ctx, "nsq ack failed", "topic", source, "error", err)
		}
		return nil
	}), co.concurrency)

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		stopNSQConsumer(consumer)
		return ErrClosed
	}
	n.consumers = append(n.consumers, consumer)
	n.mu.Unlock()

	if len(n.lookupdAddrs) > 0 {
		err = consumer.ConnectToNSQLookupds(n.lookupdAddrs)
	} else {
		err = consumer.ConnectToNSQDs(n.nsqdAddrs)
	}
	if err != nil {
		stopNSQConsumer(consumer)
		return fmt.Errorf("messaging: nsq connect: %w", err)
	}

	select {
	case <-ctx.Done():
		stopNSQConsumer(consumer)
		return ctx.Err()
	case <-consumer.StopChan:
		return nil
	}
}

func stopNSQConsumer(c *nsq.Consumer) {
	c.Stop()
	<-c.StopChan
}
