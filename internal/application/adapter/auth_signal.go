// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "github.com/technest/admin-dashboard/internal/domain/entity"

// AuthSignal publishes the identity currently signed in to the dashboard.
type AuthSignal interface {
	// Current returns the identity at the time of the call.
	Current() entity.Identity

	// Watch returns a channel receiving every identity change, and a cancel
	// function that stops delivery and closes the channel.
	Watch() (<-chan entity.Identity, func())
}

// Session is the writable side of the authorization signal.
type Session interface {
	AuthSignal

	// SignIn replaces the current identity.
	SignIn(identity entity.Identity)

	// SignOut clears the current identity.
	SignOut()
}
