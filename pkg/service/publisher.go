package service

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// RedisPublisher publishes messages on Redis Pub/Sub channels.
type RedisPublisher struct {
	client redis.UniversalClient
}

func NewRedisPublisher(client redis.UniversalClient) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// Publish sends payload to channel.
func (p *RedisPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	receivers, err := p.client.Publish(ctx, channel, payload).Result()
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", channel, err)
	}

	logrus.Debugf("published %d bytes to %s (%d receivers)", len(payload), channel, receivers)
	return nil
}
