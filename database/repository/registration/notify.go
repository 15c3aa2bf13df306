package registrationRepo

import (
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// DefaultChangeChannel is the pub/sub channel registration writes are announced on.
const DefaultChangeChannel = "registrations:changed"

// ChangeNotifier fans a "something changed" signal out to every instance.
type ChangeNotifier interface {
	Publish(ctx context.Context) error
	// Subscribe returns a channel that receives a value after each change.
	// Bursts collapse into one signal. The channel closes when ctx is done.
	Subscribe(ctx context.Context) <-chan struct{}
}

type redisChangeNotifier struct {
	client  *redis.Client
	channel string
}

func NewRedisChangeNotifier(client *redis.Client, channel string) ChangeNotifier {
	if channel == "" {
		channel = DefaultChangeChannel
	}
	return &redisChangeNotifier{client: client, channel: channel}
}

func (n *redisChangeNotifier) Publish(ctx context.Context) error {
	return n.client.Publish(ctx, n.channel, strconv.FormatInt(time.Now().UnixMilli(), 10)).Err()
}

func (n *redisChangeNotifier) Subscribe(ctx context.Context) <-chan struct{} {
	pubsub := n.client.Subscribe(ctx, n.channel)
	out := make(chan struct{}, 1)

	go func() {
		defer close(out)
		defer pubsub.Close()
		msgs := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out
}
