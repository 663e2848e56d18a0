// Package dashboard contains the real-time aggregation view-model behind the admin dashboard.
package dashboard

import (
	"sync"
	"time"

	"github.com/technest/admin-dashboard/internal/domain/entity"
)

// SummaryName identifies a summary slot of the store.
type SummaryName string

const (
	SummaryUsers    SummaryName = "users"
	SummaryOrders   SummaryName = "orders"
	SummaryEarnings SummaryName = "earnings"
	SummaryChats    SummaryName = "chats"
)

// Status is the tri-state status of a summary.
type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// State is the value of a summary as seen by the presentation layer.
//
// While loading, Value may hold a cached value from the local mirror, in which
// case Cached is true. A failed state keeps the last ready value.
type State[T any] struct {
	Status    Status
	Value     T
	Cached    bool
	Err       error
	Sequence  uint64
	UpdatedAt time.Time
}

// Ticket authorizes one publication into a slot. It is only honored while it
// refers to the slot's latest snapshot of the current subscription.
type Ticket struct {
	epoch uint64
	seq   uint64
}

// Slot holds the state of one summary. Only the binding owning the slot writes it.
type Slot[T any] struct {
	name   SummaryName
	now    func() time.Time
	notify func(SummaryName)

	mu    sync.RWMutex
	state State[T]
	open  bool
	epoch uint64
	seq   uint64
}

func newSlot[T any](name SummaryName, now func() time.Time, notify func(SummaryName)) *Slot[T] {
	return &Slot[T]{
		name:   name,
		now:    now,
		notify: notify,
		state:  State[T]{Status: StatusLoading},
	}
}

// Name returns the summary name of the slot.
func (s *Slot[T]) Name() SummaryName {
	return s.name
}

// State returns the current state.
func (s *Slot[T]) State() State[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Open starts a new subscription epoch and resets the slot to loading,
// optionally painting a cached value. It returns the new epoch.
func (s *Slot[T]) Open(cached *T) uint64 {
	s.mu.Lock()
	s.epoch++
	s.open = true
	state := State[T]{Status: StatusLoading, Sequence: s.seq, UpdatedAt: s.now()}
	if cached != nil {
		state.Value = *cached
		state.Cached = true
	}
	s.state = state
	epoch := s.epoch
	s.mu.Unlock()

	s.notify(s.name)
	return epoch
}

// Next issues a ticket for a newly delivered feed event of the given epoch.
// Issuing a ticket invalidates every earlier ticket.
func (s *Slot[T]) Next(epoch uint64) (Ticket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open || epoch != s.epoch {
		return Ticket{}, false
	}
	s.seq++
	return Ticket{epoch: epoch, seq: s.seq}, true
}

// Publish replaces the state with a ready value if the ticket is still current.
func (s *Slot[T]) Publish(t Ticket, value T) bool {
	s.mu.Lock()
	if !s.currentLocked(t) {
		s.mu.Unlock()
		return false
	}
	s.state = State[T]{
		Status:    StatusReady,
		Value:     value,
		Sequence:  t.seq,
		UpdatedAt: s.now(),
	}
	s.mu.Unlock()

	s.notify(s.name)
	return true
}

// Fail moves the slot to failed if the ticket is still current. The last
// value is kept; a cached value is dropped since it was never live.
func (s *Slot[T]) Fail(t Ticket, err error) bool {
	s.mu.Lock()
	if !s.currentLocked(t) {
		s.mu.Unlock()
		return false
	}
	value := s.state.Value
	if s.state.Cached {
		var zero T
		value = zero
	}
	s.state = State[T]{
		Status:    StatusFailed,
		Value:     value,
		Err:       err,
		Sequence:  t.seq,
		UpdatedAt: s.now(),
	}
	s.mu.Unlock()

	s.notify(s.name)
	return true
}

// Settle closes the current epoch and publishes a terminal ready value.
// Pending tickets are invalidated.
func (s *Slot[T]) Settle(value T) {
	s.mu.Lock()
	s.epoch++
	s.open = false
	s.seq++
	s.state = State[T]{
		Status:    StatusReady,
		Value:     value,
		Sequence:  s.seq,
		UpdatedAt: s.now(),
	}
	s.mu.Unlock()

	s.notify(s.name)
}

// Discard closes the current epoch and drops the summary. Calling it on a
// closed slot is a no-op.
func (s *Slot[T]) Discard() {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return
	}
	s.epoch++
	s.open = false
	s.state = State[T]{Status: StatusLoading, Sequence: s.seq, UpdatedAt: s.now()}
	s.mu.Unlock()

	s.notify(s.name)
}

// IsOpen reports whether a subscription epoch is active.
func (s *Slot[T]) IsOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.open
}

func (s *Slot[T]) currentLocked(t Ticket) bool {
	return s.open && t.epoch == s.epoch && t.seq == s.seq
}

// Store holds the state of every dashboard summary.
type Store struct {
	Users    *Slot[entity.UserVerificationSummary]
	Orders   *Slot[entity.OrderStatusSummary]
	Earnings *Slot[entity.EarningsSeries]
	Chats    *Slot[entity.ChatInboxSummary]

	mu       sync.Mutex
	watchers map[uint64]chan SummaryName
	nextID   uint64
}

// NewStore creates a new store with every slot loading.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	s := &Store{watchers: make(map[uint64]chan SummaryName)}
	s.Users = newSlot[entity.UserVerificationSummary](SummaryUsers, now, s.broadcast)
	s.Orders = newSlot[entity.OrderStatusSummary](SummaryOrders, now, s.broadcast)
	s.Earnings = newSlot[entity.EarningsSeries](SummaryEarnings, now, s.broadcast)
	s.Chats = newSlot[entity.ChatInboxSummary](SummaryChats, now, s.broadcast)
	return s
}

// Watch returns a channel signalled after each change, and a cancel function.
// Signals are coalesced: a slow watcher sees at least one signal after the
// latest change, not one per change.
func (s *Store) Watch() (<-chan SummaryName, func()) {
	ch := make(chan SummaryName, 1)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.watchers[id] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.watchers, id)
			s.mu.Unlock()
			close(ch)
		})
	}
}

func (s *Store) broadcast(name SummaryName) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.watchers {
		select {
		case ch <- name:
		default:
		}
	}
}
