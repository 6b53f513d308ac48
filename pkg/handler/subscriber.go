package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// ErrSubscriptionClosed is returned by Run when the Pub/Sub channel closes underneath it.
var ErrSubscriptionClosed = errors.New("event subscription closed")

// Subscriber feeds messages from a Redis Pub/Sub channel into a Progression handler.
type Subscriber struct {
	client  redis.UniversalClient
	channel string
	handler *Progression
}

// NewSubscriber creates a subscriber for channel. An empty channel means DefaultEventChannel.
func NewSubscriber(client redis.UniversalClient, channel string, handler *Progression) *Subscriber {
	if channel == "" {
		channel = DefaultEventChannel
	}
	return &Subscriber{
		client:  client,
		channel: channel,
		handler: handler,
	}
}

// Channel returns the subscribed channel name.
func (s *Subscriber) Channel() string {
	return s.channel
}

// Run consumes messages until ctx is cancelled. Messages are handled one at a
// time; handling errors are logged and never stop the loop.
func (s *Subscriber) Run(ctx context.Context) error {
	pubsub := s.client.Subscribe(ctx, s.channel)
	defer pubsub.Close()

	// Wait for the subscription to be confirmed before reading messages.
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", s.channel, err)
	}
	logrus.Infof("subscribed to progression events on channel %s", s.channel)

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			logrus.Infof("stopping subscriber on channel %s", s.channel)
			return nil
		case msg, ok := <-messages:
			if !ok {
				return ErrSubscriptionClosed
			}
			s.handle(ctx, msg)
		}
	}
}

func (s *Subscriber) handle(ctx context.Context, msg *redis.Message) {
	err := s.handler.OnMessage(ctx, []byte(msg.Payload))
	if err == nil {
		return
	}
	if errors.Is(err, ErrMalformedMessage) {
		logrus.Warnf("dropping message on %s: %v", msg.Channel, err)
		return
	}
	logrus.Errorf("failed to process message on %s: %v", msg.Channel, err)
}
