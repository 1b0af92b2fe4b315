package consumer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ihor-metko/courtbook/libs/kafkax"
	"github.com/segmentio/kafka-go"
)

type Config struct {
	Brokers string
	GroupID string
	Topic   string
}

// HandlerFunc processes one message. Returning an error leaves the
// message uncommitted so the group redelivers it.
type HandlerFunc func(ctx context.Context, msg kafka.Message) error

// Consumer is a single-topic group consumer that restores the producer's
// trace context before invoking the handler.
type Consumer struct {
	logger *slog.Logger
	cfg    Config
	handle HandlerFunc
}

func New(logger *slog.Logger, cfg Config, handle HandlerFunc) *Consumer {
	if cfg.GroupID == "" {
		cfg.GroupID = "court-service"
	}
	return &Consumer{logger: logger, cfg: cfg, handle: handle}
}

func (c *Consumer) Run(ctx context.Context) {
	brokers := kafkax.SplitBrokers(c.cfg.Brokers)
	if len(brokers) == 0 || c.cfg.Topic == "" {
		c.logger.Warn("consumer disabled (no kafka brokers or topic configured)", "topic", c.cfg.Topic)
		return
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		GroupID:        c.cfg.GroupID,
		Topic:          c.cfg.Topic,
		MinBytes:       1,
		MaxBytes:       10 << 20,
		CommitInterval: 0, // explicit commits only
	})
	defer reader.Close()

	c.logger.Info("consumer starting", "topic", c.cfg.Topic, "group", c.cfg.GroupID)
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return
			}
			c.logger.Error("fetch message failed", "err", err, "topic", c.cfg.Topic)
			time.Sleep(time.Second)
			continue
		}

		msgCtx := kafkax.ExtractTraceContext(ctx, msg)
		meta := kafkax.ExtractEventMeta(msg)
		if err := c.handle(msgCtx, msg); err != nil {
			c.logger.Error("message handling failed",
				"err", err,
				"event_id", meta.EventID,
				"event_type", meta.EventType,
			)
			continue
		}
		if err := reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error("commit failed", "err", err, "event_id", meta.EventID)
		}
	}
}
