package cache

import (
	"context"
	"testing"
	"time"

	"github.com/technest/admin-dashboard/internal/application/adapter"
	"github.com/technest/admin-dashboard/internal/testsupport/mock"
)

func exerciseCache(t *testing.T, c adapter.KeyValueCache) {
	t.Helper()
	ctx := context.Background()

	if _, found, err := c.Get(ctx, "dashboard:users"); err != nil || found {
		t.Fatalf("expected a miss, got found=%v err=%v", found, err)
	}

	if err := c.Set(ctx, "dashboard:users", `{"total_users":3}`); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	value, found, err := c.Get(ctx, "dashboard:users")
	if err != nil || !found || value != `{"total_users":3}` {
		t.Fatalf("unexpected Get result %q found=%v err=%v", value, found, err)
	}

	if err := c.Remove(ctx, "dashboard:users"); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if err := c.Remove(ctx, "dashboard:users"); err != nil {
		t.Fatalf("second Remove returned error: %v", err)
	}
	if _, found, _ := c.Get(ctx, "dashboard:users"); found {
		t.Error("expected the value to be removed")
	}
}

func TestMemoryCache(t *testing.T) {
	exerciseCache(t, NewMemoryCache())
}

func TestRedisCache(t *testing.T) {
	client, _ := mock.NewRedis(t)
	exerciseCache(t, NewRedisCache(client, time.Hour))
}

func TestRedisCache_Expiry(t *testing.T) {
	client, server := mock.NewRedis(t)
	c := NewRedisCache(client, time.Minute)
	ctx := context.Background()

	if err := c.Set(ctx, "dashboard:orders", "{}"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	server.FastForward(2 * time.Minute)

	if _, found, err := c.Get(ctx, "dashboard:orders"); err != nil || found {
		t.Errorf("expected the value to expire, found=%v err=%v", found, err)
	}
}

func TestRedisCache_Unavailable(t *testing.T) {
	client, server := mock.NewRedis(t)
	c := NewRedisCache(client, 0)
	server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, _, err := c.Get(ctx, "dashboard:chats"); err == nil {
		t.Error("expected an error when redis is down")
	}
}
