// Package notify provides a small in-process event bus. Components
// publish advisory notices; interested views subscribe instead of
// reaching into each other's state.
package notify

import "sync"

// Kind identifies what a notice is about.
type Kind string

const (
	SelectionAdded   Kind = "selection_added"
	SelectionRemoved Kind = "selection_removed"
	SelectionCleared Kind = "selection_cleared"
)

// Event is a single advisory notice.
type Event struct {
	Kind    Kind
	Message string
}

// Bus fans events out to subscribers. Publishing never blocks: a
// subscriber that falls behind misses events, which is acceptable for
// advisory notices.
type Bus struct {
	mu   sync.Mutex
	subs []chan Event
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a new subscriber and returns its channel.
func (b *Bus) Subscribe() <-chan Event {
	ch := make(chan Event, 16)
	b.mu.Lock()
	b.subs = append(b.subs, ch)
	b.mu.Unlock()
	return ch
}

// Publish delivers e to every subscriber with room in its buffer.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
