package feed

// Notifier delivers the names of collections that may have changed. An empty
// name means any collection may have changed, for example after a reconnect.
type Notifier interface {
	Changes() <-chan string
	Close() error
}

const notifierBuffer = 64
