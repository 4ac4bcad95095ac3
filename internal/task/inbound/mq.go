package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/shandysiswandi/gotask/internal/pkg/config"
	"github.com/shandysiswandi/gotask/internal/pkg/goroutine"
	"github.com/shandysiswandi/gotask/internal/pkg/instrument"
	"github.com/shandysiswandi/gotask/internal/pkg/messaging"
	"github.com/shandysiswandi/gotask/internal/pkg/uid"
	"github.com/shandysiswandi/gotask/internal/shared/event"
)

// RegisterMQConsumer starts the consumers listed in
// modules.task.consumer_names on routine. It returns how many were started.
func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	consumer messaging.Consumer,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) int {
	handler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enabled := cfg.GetArray("modules.task.consumer_names")

	consumers := []struct {
		name    string
		topic   string
		handler messaging.Handler
	}{
		{
			name:    event.UserRegisteredConsumerWelcome,
			topic:   event.UserRegisteredDestination,
			handler: handler.UserRegisteredWelcome,
		},
	}

	started := 0
	for _, c := range consumers {
		if !slices.Contains(enabled, c.name) {
			continue
		}

		ok := routine.Go(ctx, func(ctx context.Context) error {
			slog.InfoContext(ctx, "running consumer", "consumer", c.name, "topic", c.topic)
			err := consumer.Consume(ctx, c.topic, c.handler,
				messaging.WithGroup(c.name),
				messaging.WithAutoAck(true),
				messaging.WithConcurrency(cfg.GetInt("modules.task.consumer_concurrency")),
			)
			if ctx.Err() != nil {
				return nil
			}
			return err
		})
		if ok {
			started++
		}
	}

	return started
}
