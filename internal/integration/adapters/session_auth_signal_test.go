package adapters

import (
	"testing"
	"time"

	"github.com/technest/admin-dashboard/internal/domain/entity"
)

func receiveIdentity(t *testing.T, ch <-chan entity.Identity) entity.Identity {
	t.Helper()
	select {
	case identity, ok := <-ch:
		if !ok {
			t.Fatal("identity channel closed")
		}
		return identity
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for an identity")
	}
	return entity.Identity{}
}

func TestSessionAuthSignal_SignInAndOut(t *testing.T) {
	s := NewSessionAuthSignal()
	if s.Current().IsAuthenticated() {
		t.Fatal("expected nobody to be signed in")
	}

	changes, stop := s.Watch()
	defer stop()

	admin := entity.Identity{UserID: "a1", Admin: true, Verified: true}
	s.SignIn(admin)
	if got := receiveIdentity(t, changes); got.UserID != "a1" {
		t.Errorf("expected a1, got %+v", got)
	}
	if !s.Current().IsVerifiedAdmin() {
		t.Error("expected the current identity to be a verified admin")
	}

	s.SignOut()
	if got := receiveIdentity(t, changes); got.IsAuthenticated() {
		t.Errorf("expected the signed out identity, got %+v", got)
	}
}

func TestSessionAuthSignal_SlowWatcherSeesLatest(t *testing.T) {
	s := NewSessionAuthSignal()
	changes, stop := s.Watch()
	defer stop()

	s.SignIn(entity.Identity{UserID: "a1"})
	s.SignIn(entity.Identity{UserID: "a2"})
	s.SignIn(entity.Identity{UserID: "a3"})

	if got := receiveIdentity(t, changes); got.UserID != "a3" {
		t.Errorf("expected the latest identity a3, got %q", got.UserID)
	}
	select {
	case extra := <-changes:
		t.Errorf("unexpected extra identity %+v", extra)
	default:
	}
}

func TestSessionAuthSignal_Expiry(t *testing.T) {
	s := NewSessionAuthSignal()
	changes, stop := s.Watch()
	defer stop()

	s.SignIn(entity.Identity{UserID: "a1", ExpiresAt: time.Now().Add(30 * time.Millisecond)})
	receiveIdentity(t, changes)

	if got := receiveIdentity(t, changes); got.IsAuthenticated() {
		t.Errorf("expected the identity to expire, got %+v", got)
	}
	if s.Current().IsAuthenticated() {
		t.Error("expected nobody to be signed in after expiry")
	}
}

func TestSessionAuthSignal_ExpiryOfReplacedIdentityIsIgnored(t *testing.T) {
	s := NewSessionAuthSignal()

	s.SignIn(entity.Identity{UserID: "a1", ExpiresAt: time.Now().Add(20 * time.Millisecond)})
	s.SignIn(entity.Identity{UserID: "a2"})
	time.Sleep(60 * time.Millisecond)

	if got := s.Current().UserID; got != "a2" {
		t.Errorf("expected a2 to stay signed in, got %q", got)
	}
}

func TestSessionAuthSignal_StopClosesChannel(t *testing.T) {
	s := NewSessionAuthSignal()
	changes, stop := s.Watch()

	stop()
	stop()

	if _, ok := <-changes; ok {
		t.Error("expected the channel to be closed")
	}
	s.SignIn(entity.Identity{UserID: "a1"})
}
