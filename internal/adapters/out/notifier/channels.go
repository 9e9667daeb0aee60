package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// LogChannel writes every notification to the service log.
type LogChannel struct {
	logger *zap.Logger
}

func NewLogChannel(logger *zap.Logger) *LogChannel {
	return &LogChannel{logger: logger}
}

func (c *LogChannel) Name() string { return "log" }

func (c *LogChannel) Send(_ context.Context, msg Message) error {
	c.logger.Info("notification",
		zap.String("kind", string(msg.Kind)),
		zap.Strings("recipients", msg.Recipients),
		zap.Any("payload", msg.Payload))
	return nil
}

const DefaultRedisChannel = "fulfillment.notifications"

type publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// RedisChannel publishes notifications as JSON on a Redis pub/sub channel
// for the delivery workers (email, push) to consume.
type RedisChannel struct {
	client  publisher
	channel string
}

func NewRedisChannel(client redis.UniversalClient, channel string) *RedisChannel {
	if channel == "" {
		channel = DefaultRedisChannel
	}
	return &RedisChannel{client: client, channel: channel}
}

func (c *RedisChannel) Name() string { return "redis" }

func (c *RedisChannel) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	return c.client.Publish(ctx, c.channel, body).Err()
}
