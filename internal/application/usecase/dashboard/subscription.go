// Package dashboard contains the real-time aggregation view-model behind the admin dashboard.
package dashboard

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/technest/admin-dashboard/internal/application/adapter"
	domainerror "github.com/technest/admin-dashboard/internal/domain/error"
)

const cacheTimeout = 500 * time.Millisecond

// summaryBinding ties a summary slot to its feed query and reducer.
type summaryBinding interface {
	name() SummaryName
	query(now time.Time) adapter.Query
	requiresAdmin() bool
	open(ctx context.Context) uint64
	handle(ctx context.Context, epoch uint64, ev adapter.FeedEvent)
	discard()
	waitPending()
	settleEmpty(ctx context.Context)
}

// reduceFunc folds a snapshot into a summary value.
type reduceFunc[T any] func(ctx context.Context, snap adapter.Snapshot) (T, error)

// binding is the generic summaryBinding implementation.
type binding[T any] struct {
	slot        *Slot[T]
	buildQuery  func(now time.Time) adapter.Query
	reduce      reduceFunc[T]
	empty       func() T
	async       bool
	adminOnly   bool
	cache       adapter.KeyValueCache
	cacheKey    string
	onPublished func(SummaryName)
	pending     sync.WaitGroup
}

func (b *binding[T]) name() SummaryName {
	return b.slot.Name()
}

func (b *binding[T]) query(now time.Time) adapter.Query {
	return b.buildQuery(now)
}

func (b *binding[T]) requiresAdmin() bool {
	return b.adminOnly
}

// open resets the slot, painting the cached value when one is available.
func (b *binding[T]) open(ctx context.Context) uint64 {
	return b.slot.Open(b.readCache(ctx))
}

// handle applies one feed event. Synchronous reducers publish before
// returning; asynchronous ones publish later if their ticket is still current.
func (b *binding[T]) handle(ctx context.Context, epoch uint64, ev adapter.FeedEvent) {
	ticket, ok := b.slot.Next(epoch)
	if !ok {
		return
	}

	if ev.Err != nil || ev.Snapshot == nil {
		err := ev.Err
		if err == nil {
			err = domainerror.NewFeedError(
				domainerror.ErrCodeFeedInternalError,
				"feed delivered an empty event",
				domainerror.ErrFeedUnavailable,
			)
		}
		if b.slot.Fail(ticket, err) {
			slog.Warn("Summary feed failed", "summary", b.name(), "error", err)
		}
		return
	}

	snap := *ev.Snapshot
	if !b.async {
		value, err := b.reduce(ctx, snap)
		if err != nil {
			b.slot.Fail(ticket, err)
			return
		}
		b.publish(ctx, ticket, value)
		return
	}

	b.pending.Add(1)
	go func() {
		defer b.pending.Done()
		value, err := b.reduce(ctx, snap)
		if err != nil {
			if ctx.Err() == nil {
				b.slot.Fail(ticket, err)
			}
			return
		}
		if !b.publish(ctx, ticket, value) {
			slog.Debug("Discarded stale summary", "summary", b.name())
		}
	}()
}

func (b *binding[T]) publish(ctx context.Context, ticket Ticket, value T) bool {
	if !b.slot.Publish(ticket, value) {
		return false
	}
	b.writeCache(ctx, value)
	if b.onPublished != nil {
		b.onPublished(b.name())
	}
	return true
}

func (b *binding[T]) discard() {
	b.slot.Discard()
}

// settleEmpty publishes the terminal empty value and forgets the cached one.
func (b *binding[T]) settleEmpty(ctx context.Context) {
	b.slot.Settle(b.empty())
	if b.cache == nil {
		return
	}
	cctx, cancel := context.WithTimeout(ctx, cacheTimeout)
	defer cancel()
	if err := b.cache.Remove(cctx, b.cacheKey); err != nil {
		slog.Warn("Failed to remove cached summary", "summary", b.name(), "error", err)
	}
}

// waitPending blocks until in-flight asynchronous reductions returned.
func (b *binding[T]) waitPending() {
	b.pending.Wait()
}

func (b *binding[T]) readCache(ctx context.Context) *T {
	if b.cache == nil {
		return nil
	}
	cctx, cancel := context.WithTimeout(ctx, cacheTimeout)
	defer cancel()

	raw, found, err := b.cache.Get(cctx, b.cacheKey)
	if err != nil {
		slog.Warn("Failed to read cached summary", "summary", b.name(), "error", err)
		return nil
	}
	if !found {
		return nil
	}
	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		slog.Warn("Ignoring unreadable cached summary", "summary", b.name(), "error", err)
		return nil
	}
	return &value
}

func (b *binding[T]) writeCache(ctx context.Context, value T) {
	if b.cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		slog.Warn("Failed to encode summary for cache", "summary", b.name(), "error", err)
		return
	}
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheTimeout)
	defer cancel()
	if err := b.cache.Set(cctx, b.cacheKey, string(raw)); err != nil {
		slog.Warn("Failed to write cached summary", "summary", b.name(), "error", err)
	}
}

// liveSubscription is one open feed subscription and its drain goroutine.
type liveSubscription struct {
	id      uuid.UUID
	binding summaryBinding
	cancel  context.CancelFunc
	sub     adapter.Subscription
	done    chan struct{}
}

func (l *liveSubscription) stop() {
	l.cancel()
	l.sub.Close()
	<-l.done
}

// SubscriptionManager keeps at most one live feed subscription per summary.
type SubscriptionManager struct {
	feed adapter.ChangeFeed
	now  func() time.Time

	// opMu serializes Open and Close; drain goroutines never take it.
	opMu sync.Mutex

	mu   sync.Mutex
	live map[SummaryName]*liveSubscription
}

// NewSubscriptionManager creates a new SubscriptionManager instance.
func NewSubscriptionManager(feed adapter.ChangeFeed, now func() time.Time) *SubscriptionManager {
	if now == nil {
		now = time.Now
	}
	return &SubscriptionManager{
		feed: feed,
		now:  now,
		live: make(map[SummaryName]*liveSubscription),
	}
}

// Open subscribes the binding's summary, closing any live subscription for
// it first. A subscribe failure is reported through the slot as well.
func (m *SubscriptionManager) Open(ctx context.Context, b summaryBinding) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	m.closeLocked(b.name())

	epoch := b.open(ctx)
	subCtx, cancel := context.WithCancel(ctx)
	query := b.query(m.now())

	sub, err := m.feed.Subscribe(subCtx, query)
	if err != nil {
		b.handle(subCtx, epoch, adapter.FeedEvent{Err: err})
		cancel()
		return err
	}

	ls := &liveSubscription{
		id:      uuid.New(),
		binding: b,
		cancel:  cancel,
		sub:     sub,
		done:    make(chan struct{}),
	}

	m.mu.Lock()
	m.live[b.name()] = ls
	m.mu.Unlock()

	logger := slog.With("summary", b.name(), "subscription_id", ls.id, "collection", query.Collection)
	logger.Debug("Summary subscription opened")

	go func() {
		defer close(ls.done)
		events := sub.Events()
		for {
			select {
			case <-subCtx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				if subCtx.Err() != nil {
					return
				}
				b.handle(subCtx, epoch, ev)
			}
		}
	}()

	return nil
}

// Close releases the summary's subscription and discards its value. It is
// synchronous: no event is handled and no reduction touches the store or the
// cache after it returns. Closing a summary that is not open is a no-op.
func (m *SubscriptionManager) Close(name SummaryName) {
	m.opMu.Lock()
	defer m.opMu.Unlock()
	m.closeLocked(name)
}

// CloseAll closes every live subscription.
func (m *SubscriptionManager) CloseAll() {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	m.mu.Lock()
	names := make([]SummaryName, 0, len(m.live))
	for name := range m.live {
		names = append(names, name)
	}
	m.mu.Unlock()

	for _, name := range names {
		m.closeLocked(name)
	}
}

// IsLive reports whether the summary has a live subscription.
func (m *SubscriptionManager) IsLive(name SummaryName) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.live[name]
	return ok
}

func (m *SubscriptionManager) closeLocked(name SummaryName) {
	m.mu.Lock()
	ls, ok := m.live[name]
	delete(m.live, name)
	m.mu.Unlock()

	if !ok {
		return
	}
	ls.stop()
	ls.binding.discard()
	// A reduction published just before discard may still be writing the cache.
	ls.binding.waitPending()
	slog.Debug("Summary subscription closed", "summary", name, "subscription_id", ls.id)
}
