package item

import "github.com/cooldogedev/prism/version"

// WriteEvent is passed to a WriteObserver before an item's wire form is fixed.
type WriteEvent struct {
	// Version is the protocol version the item is written for.
	Version version.Version
	// Locale is the locale of the connection the item is written to.
	Locale string
	// Original is the item as held by the rest of the system. It must not be mutated.
	Original Stack
	// Result is the remapped item that will be written. Observers may replace it to customise the
	// bytes written without affecting Original.
	Result Stack
}

// WriteObserver observes items written to clients.
type WriteObserver interface {
	// HandleItemWrite is called for every present item written to a client.
	HandleItemWrite(event *WriteEvent)
}

// WriteObserverFunc is a function implementing WriteObserver.
type WriteObserverFunc func(event *WriteEvent)

// HandleItemWrite ...
func (f WriteObserverFunc) HandleItemWrite(event *WriteEvent) {
	f(event)
}
