package feed

import (
	"log/slog"
	"sync"
	"time"

	"github.com/lib/pq"

	domainerror "github.com/technest/admin-dashboard/internal/domain/error"
)

const (
	// ChangeChannel is the PostgreSQL NOTIFY channel written by the documents trigger.
	ChangeChannel = "document_changes"

	minReconnectInterval = 10 * time.Second
	maxReconnectInterval = time.Minute
	listenerPingInterval = 90 * time.Second
)

// PostgresNotifier listens for NOTIFY events whose payload is the name of the
// changed collection.
type PostgresNotifier struct {
	listener *pq.Listener
	changes  chan string
	stop     chan struct{}
	stopped  chan struct{}
	once     sync.Once
}

// NewPostgresNotifier connects a listener to dsn and starts listening on channel.
func NewPostgresNotifier(dsn, channel string) (*PostgresNotifier, error) {
	listener := pq.NewListener(dsn, minReconnectInterval, maxReconnectInterval,
		func(event pq.ListenerEventType, err error) {
			if err != nil {
				slog.Warn("Change listener event", "event", event, "error", err)
			}
		},
	)
	if err := listener.Listen(channel); err != nil {
		_ = listener.Close()
		return nil, domainerror.NewFeedError(
			domainerror.ErrCodeNotifierFailed,
			"failed to listen on "+channel,
			err,
		)
	}

	n := &PostgresNotifier{
		listener: listener,
		changes:  make(chan string, notifierBuffer),
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go n.loop()

	slog.Info("Listening for document changes", "channel", channel)
	return n, nil
}

// Changes returns the channel of changed collection names.
func (n *PostgresNotifier) Changes() <-chan string {
	return n.changes
}

// Close stops listening. It is safe to call more than once.
func (n *PostgresNotifier) Close() error {
	var err error
	n.once.Do(func() {
		close(n.stop)
		<-n.stopped
		err = n.listener.Close()
	})
	return err
}

func (n *PostgresNotifier) loop() {
	defer close(n.stopped)
	defer close(n.changes)

	ping := time.NewTicker(listenerPingInterval)
	defer ping.Stop()

	for {
		select {
		case <-n.stop:
			return
		case note, ok := <-n.listener.Notify:
			if !ok {
				return
			}
			// A nil notification follows a reconnect; changes may have been missed.
			collection := ""
			if note != nil {
				collection = note.Extra
			}
			select {
			case n.changes <- collection:
			case <-n.stop:
				return
			}
		case <-ping.C:
			go func() {
				if err := n.listener.Ping(); err != nil {
					slog.Warn("Change listener ping failed", "error", err)
				}
			}()
		}
	}
}
