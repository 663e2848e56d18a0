// Package dashboard contains the real-time aggregation view-model behind the admin dashboard.
package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/technest/admin-dashboard/internal/application/adapter"
	"github.com/technest/admin-dashboard/internal/domain/entity"
)

const (
	defaultRefreshAckDelay = time.Second
	defaultCachePrefix     = "dashboard"
)

// Config holds the dashboard configuration.
type Config struct {
	Earnings          EarningsConfig
	RefreshAckDelay   time.Duration
	CachePrefix       string
	LookupConcurrency int
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		Earnings:          DefaultEarningsConfig(),
		RefreshAckDelay:   defaultRefreshAckDelay,
		CachePrefix:       defaultCachePrefix,
		LookupConcurrency: defaultLookupConcurrency,
	}
}

// View is what the presentation layer renders.
type View struct {
	Users      State[entity.UserVerificationSummary]
	Orders     State[entity.OrderStatusSummary]
	Earnings   State[entity.EarningsSeries]
	Chats      State[entity.ChatInboxSummary]
	Refreshing bool
	Visible    bool
}

// Option customizes a Dashboard.
type Option func(*Dashboard)

// WithClock replaces the clock used for the earnings window and timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *Dashboard) {
		d.now = now
	}
}

// WithCache enables the local cache mirror.
func WithCache(cache adapter.KeyValueCache) Option {
	return func(d *Dashboard) {
		d.cache = cache
	}
}

// Dashboard coordinates the summary subscriptions with the visibility and
// authorization signals.
type Dashboard struct {
	cfg     Config
	now     func() time.Time
	cache   adapter.KeyValueCache
	auth    adapter.AuthSignal
	store   *Store
	manager *SubscriptionManager

	bindings []summaryBinding
	users    *binding[entity.UserVerificationSummary]
	orders   *binding[entity.OrderStatusSummary]
	earnings *binding[entity.EarningsSeries]
	chats    *binding[entity.ChatInboxSummary]

	ctx    context.Context
	cancel context.CancelFunc

	// mu guards the visibility and identity state and serializes transitions.
	mu       sync.Mutex
	attached int
	focused  bool
	visible  bool
	identity entity.Identity

	// refreshMu is taken from drain goroutines and must never wrap mu.
	refreshMu    sync.Mutex
	refreshing   bool
	refreshTimer *time.Timer
}

// NewDashboard creates a new Dashboard instance.
func NewDashboard(
	feed adapter.ChangeFeed,
	auth adapter.AuthSignal,
	users adapter.UserDirectory,
	cfg Config,
	opts ...Option,
) (*Dashboard, error) {
	if err := cfg.Earnings.Validate(); err != nil {
		return nil, err
	}
	if cfg.RefreshAckDelay <= 0 {
		cfg.RefreshAckDelay = defaultRefreshAckDelay
	}
	if cfg.CachePrefix == "" {
		cfg.CachePrefix = defaultCachePrefix
	}

	d := &Dashboard{
		cfg:  cfg,
		now:  time.Now,
		auth: auth,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.ctx, d.cancel = context.WithCancel(context.Background())
	d.store = NewStore(d.now)
	d.manager = NewSubscriptionManager(feed, d.now)

	resolver := NewChatInboxResolver(users, cfg.LookupConcurrency)
	earningsCfg := cfg.Earnings

	d.users = &binding[entity.UserVerificationSummary]{
		slot:       d.store.Users,
		buildQuery: collectionQuery(entity.CollectionUsers),
		reduce: func(_ context.Context, snap adapter.Snapshot) (entity.UserVerificationSummary, error) {
			return ReduceUserVerification(decodeUsers(snap.Documents)), nil
		},
		empty: func() entity.UserVerificationSummary { return entity.UserVerificationSummary{} },
	}
	d.orders = &binding[entity.OrderStatusSummary]{
		slot:       d.store.Orders,
		buildQuery: collectionQuery(entity.CollectionOrders),
		reduce: func(_ context.Context, snap adapter.Snapshot) (entity.OrderStatusSummary, error) {
			return ReduceOrderStatus(decodeOrders(snap.Documents)), nil
		},
		empty: func() entity.OrderStatusSummary { return entity.OrderStatusSummary{} },
	}
	d.earnings = &binding[entity.EarningsSeries]{
		slot: d.store.Earnings,
		buildQuery: func(now time.Time) adapter.Query {
			return EarningsQuery(now, earningsCfg)
		},
		reduce: func(_ context.Context, snap adapter.Snapshot) (entity.EarningsSeries, error) {
			return AggregateEarnings(decodeOrders(snap.Documents), d.now(), earningsCfg), nil
		},
		empty: func() entity.EarningsSeries {
			return AggregateEarnings(nil, d.now(), earningsCfg)
		},
	}
	d.chats = &binding[entity.ChatInboxSummary]{
		slot:       d.store.Chats,
		buildQuery: collectionQuery(entity.CollectionChats),
		reduce: func(ctx context.Context, snap adapter.Snapshot) (entity.ChatInboxSummary, error) {
			return resolver.Resolve(ctx, decodeChats(snap.Documents))
		},
		empty:     EmptyChatInbox,
		async:     true,
		adminOnly: true,
	}

	configureBinding(d, d.users)
	configureBinding(d, d.orders)
	configureBinding(d, d.earnings)
	configureBinding(d, d.chats)
	d.bindings = []summaryBinding{d.users, d.orders, d.earnings, d.chats}

	return d, nil
}

// configureBinding attaches the cache mirror and the refresh hook.
func configureBinding[T any](d *Dashboard, b *binding[T]) {
	b.cache = d.cache
	b.cacheKey = d.cfg.CachePrefix + ":" + string(b.name())
	b.onPublished = d.onPublished
}

func collectionQuery(collection string) func(time.Time) adapter.Query {
	return func(time.Time) adapter.Query {
		return adapter.Query{Collection: collection}
	}
}

// Store returns the view-model store.
func (d *Dashboard) Store() *Store {
	return d.store
}

// Run follows the authorization signal until ctx is cancelled, then closes
// every subscription. It blocks.
func (d *Dashboard) Run(ctx context.Context) {
	identities, stop := d.auth.Watch()
	defer stop()

	d.applyIdentity(d.auth.Current())
	slog.Info("Dashboard started")

	for {
		select {
		case <-ctx.Done():
			d.shutdown()
			slog.Info("Dashboard shutting down")
			return
		case identity, ok := <-identities:
			if !ok {
				d.shutdown()
				return
			}
			d.applyIdentity(identity)
		}
	}
}

// Attach marks the dashboard as observed until the returned detach function
// is called. Detach is idempotent.
func (d *Dashboard) Attach() func() {
	d.mu.Lock()
	d.attached++
	d.updateVisibilityLocked()
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			d.attached--
			d.updateVisibilityLocked()
			d.mu.Unlock()
		})
	}
}

// SetFocus forces the dashboard visible or releases the forced visibility.
func (d *Dashboard) SetFocus(active bool) {
	d.mu.Lock()
	d.focused = active
	d.updateVisibilityLocked()
	d.mu.Unlock()
}

// Refresh acknowledges a manual refresh. The refreshing flag clears on the
// next published snapshot or after the configured delay. Summaries whose
// subscription could not be opened are retried.
func (d *Dashboard) Refresh() {
	d.refreshMu.Lock()
	d.refreshing = true
	if d.refreshTimer != nil {
		d.refreshTimer.Stop()
	}
	d.refreshTimer = time.AfterFunc(d.cfg.RefreshAckDelay, d.clearRefreshing)
	d.refreshMu.Unlock()
	d.store.broadcast("")

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.visible {
		return
	}
	for _, b := range d.bindings {
		if d.manager.IsLive(b.name()) || !d.allowedLocked(b) {
			continue
		}
		if err := d.manager.Open(d.ctx, b); err != nil {
			slog.Warn("Failed to reopen summary subscription", "summary", b.name(), "error", err)
		}
	}
}

// View returns the current state of every summary.
func (d *Dashboard) View() View {
	d.refreshMu.Lock()
	refreshing := d.refreshing
	d.refreshMu.Unlock()

	d.mu.Lock()
	visible := d.visible
	d.mu.Unlock()

	return View{
		Users:      d.store.Users.State(),
		Orders:     d.store.Orders.State(),
		Earnings:   d.store.Earnings.State(),
		Chats:      d.store.Chats.State(),
		Refreshing: refreshing,
		Visible:    visible,
	}
}

// applyIdentity re-evaluates admin-only summaries for a new identity.
func (d *Dashboard) applyIdentity(identity entity.Identity) {
	d.mu.Lock()
	defer d.mu.Unlock()

	previous := d.identity
	d.identity = identity

	for _, b := range d.bindings {
		if !b.requiresAdmin() {
			continue
		}
		if !identity.IsVerifiedAdmin() {
			d.manager.Close(b.name())
			b.settleEmpty(d.ctx)
			continue
		}
		if !d.visible {
			continue
		}
		if previous.IsVerifiedAdmin() && previous.UserID == identity.UserID && d.manager.IsLive(b.name()) {
			continue
		}
		if err := d.manager.Open(d.ctx, b); err != nil {
			slog.Warn("Failed to open summary subscription", "summary", b.name(), "error", err)
		}
	}

	if previous.UserID != identity.UserID {
		slog.Info("Dashboard identity changed",
			"authenticated", identity.IsAuthenticated(),
			"admin", identity.IsVerifiedAdmin(),
		)
	}
}

// updateVisibilityLocked opens or closes subscriptions after a visibility change.
func (d *Dashboard) updateVisibilityLocked() {
	visible := d.focused || d.attached > 0
	if visible == d.visible {
		return
	}
	d.visible = visible

	if !visible {
		d.manager.CloseAll()
		for _, b := range d.bindings {
			if b.requiresAdmin() && !d.identity.IsVerifiedAdmin() {
				continue
			}
			b.discard()
		}
		slog.Debug("Dashboard hidden, subscriptions released")
		return
	}

	for _, b := range d.bindings {
		if !d.allowedLocked(b) {
			b.settleEmpty(d.ctx)
			continue
		}
		if err := d.manager.Open(d.ctx, b); err != nil {
			slog.Warn("Failed to open summary subscription", "summary", b.name(), "error", err)
		}
	}
	slog.Debug("Dashboard visible, subscriptions opened")
}

func (d *Dashboard) allowedLocked(b summaryBinding) bool {
	return !b.requiresAdmin() || d.identity.IsVerifiedAdmin()
}

func (d *Dashboard) onPublished(SummaryName) {
	d.clearRefreshing()
}

func (d *Dashboard) clearRefreshing() {
	d.refreshMu.Lock()
	if !d.refreshing {
		d.refreshMu.Unlock()
		return
	}
	d.refreshing = false
	if d.refreshTimer != nil {
		d.refreshTimer.Stop()
		d.refreshTimer = nil
	}
	d.refreshMu.Unlock()
	d.store.broadcast("")
}

func (d *Dashboard) shutdown() {
	d.mu.Lock()
	d.visible = false
	d.attached = 0
	d.focused = false
	d.manager.CloseAll()
	d.mu.Unlock()

	d.refreshMu.Lock()
	if d.refreshTimer != nil {
		d.refreshTimer.Stop()
	}
	d.refreshMu.Unlock()

	d.cancel()
}
