package mock

import (
	"context"
	"sync"

	"github.com/technest/admin-dashboard/internal/domain/entity"
)

// UserDirectory is an in-memory adapter.UserDirectory. A lookup blocks while
// the directory is held.
type UserDirectory struct {
	mu      sync.Mutex
	users   map[string]string
	fail    map[string]error
	gate    chan struct{}
	held    map[string]chan struct{}
	lookups int
}

// NewUserDirectory creates a directory of id to display name.
func NewUserDirectory(names map[string]string) *UserDirectory {
	users := make(map[string]string, len(names))
	for id, name := range names {
		users[id] = name
	}
	return &UserDirectory{users: users, fail: make(map[string]error), held: make(map[string]chan struct{})}
}

// Fail makes lookups of id return err.
func (d *UserDirectory) Fail(id string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fail[id] = err
}

// Hold blocks every later lookup until Release is called.
func (d *UserDirectory) Hold() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gate = make(chan struct{})
}

// Release unblocks held lookups.
func (d *UserDirectory) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.gate != nil {
		close(d.gate)
		d.gate = nil
	}
}

// HoldUser blocks later lookups of id until ReleaseUser is called.
func (d *UserDirectory) HoldUser(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.held[id] = make(chan struct{})
}

// ReleaseUser unblocks held lookups of id.
func (d *UserDirectory) ReleaseUser(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if gate, ok := d.held[id]; ok {
		close(gate)
		delete(d.held, id)
	}
}

// Lookups returns how many lookups were started.
func (d *UserDirectory) Lookups() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lookups
}

// FindUser returns the user with a Name, nil when unknown, or the configured failure.
func (d *UserDirectory) FindUser(ctx context.Context, id string) (*entity.User, error) {
	d.mu.Lock()
	d.lookups++
	gate := d.gate
	if held, found := d.held[id]; found {
		gate = held
	}
	name, ok := d.users[id]
	err := d.fail[id]
	d.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &entity.User{ID: id, Name: name}, nil
}
