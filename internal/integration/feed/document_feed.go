// Package feed implements the document change feed over the document store.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/technest/admin-dashboard/internal/application/adapter"
	domainerror "github.com/technest/admin-dashboard/internal/domain/error"
)

const (
	defaultPollInterval = 30 * time.Second
	loadTimeout         = 10 * time.Second
)

// Option customizes a DocumentFeed.
type Option func(*DocumentFeed)

// WithPollInterval reloads every subscription at the given interval in
// addition to notifications. Zero or negative disables polling.
func WithPollInterval(interval time.Duration) Option {
	return func(f *DocumentFeed) {
		f.pollInterval = interval
	}
}

// WithCollections restricts the feed to the named collections.
func WithCollections(collections ...string) Option {
	return func(f *DocumentFeed) {
		f.collections = make(map[string]struct{}, len(collections))
		for _, c := range collections {
			f.collections[c] = struct{}{}
		}
	}
}

// WithClock replaces the clock stamping snapshots.
func WithClock(now func() time.Time) Option {
	return func(f *DocumentFeed) {
		f.now = now
	}
}

// DocumentFeed implements adapter.ChangeFeed by reloading collections from the
// document repository whenever a notifier or the poll ticker says they may
// have changed. A snapshot is only delivered when its content differs from
// the previous one delivered to the same subscription.
type DocumentFeed struct {
	repo         adapter.DocumentRepository
	pollInterval time.Duration
	collections  map[string]struct{}
	now          func() time.Time

	mu     sync.Mutex
	subs   map[uint64]*subscription
	nextID uint64
}

// NewDocumentFeed creates a new DocumentFeed instance.
func NewDocumentFeed(repo adapter.DocumentRepository, opts ...Option) *DocumentFeed {
	f := &DocumentFeed{
		repo:         repo,
		pollInterval: defaultPollInterval,
		now:          time.Now,
		subs:         make(map[uint64]*subscription),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Subscribe opens a subscription. The current snapshot is delivered first.
func (f *DocumentFeed) Subscribe(ctx context.Context, query adapter.Query) (adapter.Subscription, error) {
	if err := f.validate(query); err != nil {
		return nil, err
	}

	f.mu.Lock()
	id := f.nextID
	f.nextID++
	sub := &subscription{
		id:      id,
		feed:    f,
		query:   query,
		events:  make(chan adapter.FeedEvent),
		trigger: make(chan struct{}, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	f.subs[id] = sub
	f.mu.Unlock()

	go sub.run(ctx)
	return sub, nil
}

// Watch forwards change notifications to the affected subscriptions until
// ctx is cancelled or the notifier stops.
func (f *DocumentFeed) Watch(ctx context.Context, notifier Notifier) {
	changes := notifier.Changes()
	for {
		select {
		case <-ctx.Done():
			return
		case collection, ok := <-changes:
			if !ok {
				slog.Warn("Change notifier stopped, falling back to polling")
				return
			}
			f.Notify(collection)
		}
	}
}

// Notify schedules a reload of every subscription watching collection. An
// empty collection reloads every subscription.
func (f *DocumentFeed) Notify(collection string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, sub := range f.subs {
		if collection != "" && sub.query.Collection != collection {
			continue
		}
		select {
		case sub.trigger <- struct{}{}:
		default:
		}
	}
}

func (f *DocumentFeed) validate(query adapter.Query) error {
	if query.Collection == "" {
		return domainerror.NewFeedError(
			domainerror.ErrCodeFeedInternalError,
			"query has no collection",
			domainerror.ErrUnknownCollection,
		)
	}
	if f.collections != nil {
		if _, ok := f.collections[query.Collection]; !ok {
			return domainerror.NewFeedError(
				domainerror.ErrCodeFeedPermissionDenied,
				fmt.Sprintf("collection %q is not served", query.Collection),
				domainerror.ErrFeedPermissionDenied,
			)
		}
	}
	for _, filter := range query.Filters {
		if !validOp(filter.Op) {
			return domainerror.NewFeedError(
				domainerror.ErrCodeFeedInternalError,
				fmt.Sprintf("unsupported filter operator %q on %s", filter.Op, filter.Field),
				nil,
			)
		}
	}
	return nil
}

func (f *DocumentFeed) remove(id uint64) {
	f.mu.Lock()
	delete(f.subs, id)
	f.mu.Unlock()
}

// subscription is one live DocumentFeed subscription.
type subscription struct {
	id      uint64
	feed    *DocumentFeed
	query   adapter.Query
	events  chan adapter.FeedEvent
	trigger chan struct{}
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once

	fingerprint    uint64
	hasFingerprint bool
}

// Events delivers snapshots and errors in order. The channel is closed once
// the subscription stopped.
func (s *subscription) Events() <-chan adapter.FeedEvent {
	return s.events
}

// Close stops delivery and waits for the subscription goroutine to exit.
func (s *subscription) Close() {
	s.once.Do(func() {
		close(s.stop)
	})
	<-s.done
}

func (s *subscription) run(ctx context.Context) {
	defer func() {
		s.feed.remove(s.id)
		close(s.events)
		close(s.done)
	}()

	var tick <-chan time.Time
	if s.feed.pollInterval > 0 {
		ticker := time.NewTicker(s.feed.pollInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	logger := slog.With("collection", s.query.Collection, "feed_subscription", s.id)

	for {
		if ev, ok := s.load(ctx, logger); ok {
			select {
			case s.events <- ev:
			case <-s.stop:
				return
			case <-ctx.Done():
				return
			}
		}

		select {
		case <-s.stop:
			return
		case <-ctx.Done():
			return
		case <-s.trigger:
		case <-tick:
		}
	}
}

// load reads the collection and returns the event to deliver, if any.
func (s *subscription) load(ctx context.Context, logger *slog.Logger) (adapter.FeedEvent, bool) {
	lctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	docs, err := s.feed.repo.LoadCollection(lctx, s.query.Collection)
	if err != nil {
		if ctx.Err() != nil {
			return adapter.FeedEvent{}, false
		}
		logger.Warn("Failed to load collection", "error", err)
		// The next successful load is delivered even if unchanged.
		s.hasFingerprint = false
		return adapter.FeedEvent{Err: domainerror.NewFeedError(
			domainerror.ErrCodeFeedLoadFailed,
			"failed to load "+s.query.Collection,
			fmt.Errorf("%w: %w", domainerror.ErrFeedUnavailable, err),
		)}, true
	}

	matched := make([]adapter.Document, 0, len(docs))
	for _, doc := range docs {
		if matches(doc, s.query.Filters) {
			matched = append(matched, doc)
		}
	}

	fp := fingerprint(matched)
	if s.hasFingerprint && fp == s.fingerprint {
		return adapter.FeedEvent{}, false
	}
	s.fingerprint = fp
	s.hasFingerprint = true

	return adapter.FeedEvent{Snapshot: &adapter.Snapshot{
		Collection: s.query.Collection,
		Documents:  matched,
		ReadAt:     s.feed.now(),
	}}, true
}

// fingerprint hashes the ids and bodies of docs. JSON encoding sorts map
// keys, so equal documents hash equally.
func fingerprint(docs []adapter.Document) uint64 {
	h := xxhash.New()
	for _, doc := range docs {
		_, _ = h.WriteString(doc.ID)
		_, _ = h.Write([]byte{0})
		body, err := json.Marshal(doc.Data)
		if err != nil {
			// Unencodable bodies always count as changed.
			body = []byte(time.Now().String())
		}
		_, _ = h.Write(body)
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}
