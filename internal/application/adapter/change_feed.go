// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// Document is a schemaless record of a watched collection.
type Document struct {
	Collection string
	ID         string
	Data       map[string]any
	UpdatedAt  time.Time
}

// FilterOp is a comparison operator of a feed filter.
type FilterOp string

const (
	FilterEqual          FilterOp = "=="
	FilterGreaterOrEqual FilterOp = ">="
	FilterLessThan       FilterOp = "<"
)

// Filter restricts a query to documents whose field satisfies the operator.
type Filter struct {
	Field string
	Op    FilterOp
	Value any
}

// Query selects the documents a subscription watches.
type Query struct {
	Collection string
	Filters    []Filter
}

// Snapshot is the full set of documents matching a query at one point in time.
type Snapshot struct {
	Collection string
	Documents  []Document
	ReadAt     time.Time
}

// FeedEvent carries either a snapshot or an out-of-band error.
type FeedEvent struct {
	Snapshot *Snapshot
	Err      error
}

// Subscription is a live feed subscription.
type Subscription interface {
	// Events delivers snapshots and errors in order.
	Events() <-chan FeedEvent

	// Close stops delivery. It is synchronous and safe to call more than once.
	Close()
}

// ChangeFeed delivers full snapshots of a collection whenever it changes.
type ChangeFeed interface {
	// Subscribe opens a subscription. The first event is the current snapshot.
	Subscribe(ctx context.Context, query Query) (Subscription, error)
}
