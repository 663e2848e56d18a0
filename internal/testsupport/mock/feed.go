package mock

import (
	"context"
	"sync"
	"time"

	"github.com/technest/admin-dashboard/internal/application/adapter"
)

// Feed is a scripted adapter.ChangeFeed. Tests push snapshots and errors to
// the open subscriptions of a collection.
type Feed struct {
	mu           sync.Mutex
	subs         []*FeedSubscription
	subscribeErr map[string]error
}

// NewFeed creates an empty scripted feed.
func NewFeed() *Feed {
	return &Feed{subscribeErr: make(map[string]error)}
}

// FailSubscribe makes every later Subscribe on collection fail with err.
// A nil err clears the failure.
func (f *Feed) FailSubscribe(collection string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.subscribeErr, collection)
		return
	}
	f.subscribeErr[collection] = err
}

// Subscribe opens a scripted subscription.
func (f *Feed) Subscribe(_ context.Context, query adapter.Query) (adapter.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.subscribeErr[query.Collection]; err != nil {
		return nil, err
	}
	sub := &FeedSubscription{
		Query:  query,
		events: make(chan adapter.FeedEvent, 16),
	}
	f.subs = append(f.subs, sub)
	return sub, nil
}

// Emit delivers a snapshot of docs to every open subscription of collection
// and returns how many received it.
func (f *Feed) Emit(collection string, docs ...adapter.Document) int {
	return f.send(collection, adapter.FeedEvent{Snapshot: &adapter.Snapshot{
		Collection: collection,
		Documents:  docs,
		ReadAt:     time.Now(),
	}})
}

// EmitError delivers an error to every open subscription of collection.
func (f *Feed) EmitError(collection string, err error) int {
	return f.send(collection, adapter.FeedEvent{Err: err})
}

// Open returns the open subscriptions of collection.
func (f *Feed) Open(collection string) []*FeedSubscription {
	f.mu.Lock()
	defer f.mu.Unlock()
	var open []*FeedSubscription
	for _, s := range f.subs {
		if s.Query.Collection == collection && !s.IsClosed() {
			open = append(open, s)
		}
	}
	return open
}

// Opened returns how many subscriptions of collection were ever opened.
func (f *Feed) Opened(collection string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, s := range f.subs {
		if s.Query.Collection == collection {
			n++
		}
	}
	return n
}

func (f *Feed) send(collection string, ev adapter.FeedEvent) int {
	n := 0
	for _, s := range f.Open(collection) {
		if s.deliver(ev) {
			n++
		}
	}
	return n
}

// FeedSubscription is one scripted subscription.
type FeedSubscription struct {
	Query adapter.Query

	mu     sync.Mutex
	closed bool
	events chan adapter.FeedEvent
}

// Events delivers the scripted events.
func (s *FeedSubscription) Events() <-chan adapter.FeedEvent {
	return s.events
}

// Close marks the subscription closed. It is idempotent.
func (s *FeedSubscription) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// IsClosed reports whether Close was called.
func (s *FeedSubscription) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *FeedSubscription) deliver(ev adapter.FeedEvent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.events <- ev:
		return true
	default:
		return false
	}
}
