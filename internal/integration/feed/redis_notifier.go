package feed

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	domainerror "github.com/technest/admin-dashboard/internal/domain/error"
)

// RedisChannelPrefix prefixes the pub/sub channel of every collection.
const RedisChannelPrefix = "documents:"

// RedisNotifier announces and receives collection changes over Redis pub/sub.
// It is used when the database cannot notify on its own.
type RedisNotifier struct {
	client  *redis.Client
	pubsub  *redis.PubSub
	changes chan string
	stop    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// NewRedisNotifier subscribes to every collection channel.
func NewRedisNotifier(ctx context.Context, client *redis.Client) (*RedisNotifier, error) {
	pubsub := client.PSubscribe(ctx, RedisChannelPrefix+"*")
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, domainerror.NewFeedError(
			domainerror.ErrCodeNotifierFailed,
			"failed to subscribe to document changes",
			err,
		)
	}

	n := &RedisNotifier{
		client:  client,
		pubsub:  pubsub,
		changes: make(chan string, notifierBuffer),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go n.loop()
	return n, nil
}

// Publish announces that collection changed.
func (n *RedisNotifier) Publish(ctx context.Context, collection string) error {
	return n.client.Publish(ctx, RedisChannelPrefix+collection, time.Now().UTC().Format(time.RFC3339Nano)).Err()
}

// Changes returns the channel of changed collection names.
func (n *RedisNotifier) Changes() <-chan string {
	return n.changes
}

// Close unsubscribes. It is safe to call more than once.
func (n *RedisNotifier) Close() error {
	var err error
	n.once.Do(func() {
		close(n.stop)
		err = n.pubsub.Close()
		<-n.stopped
	})
	return err
}

func (n *RedisNotifier) loop() {
	defer close(n.stopped)
	defer close(n.changes)

	messages := n.pubsub.Channel()
	for {
		select {
		case <-n.stop:
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			collection := strings.TrimPrefix(msg.Channel, RedisChannelPrefix)
			select {
			case n.changes <- collection:
			case <-n.stop:
				return
			}
		}
	}
}
