// Package events fans state changes out to whoever needs to re-resolve
// the daily verse: the notification scheduler and websocket clients.
package events

import (
	"sync"
	"time"
)

type Kind string

const (
	RegionDetected    Kind = "region_detected"
	SecondaryAttached Kind = "secondary_attached"
	SecondaryFailed   Kind = "secondary_failed"
	SettingsChanged   Kind = "settings_changed"
)

type Event struct {
	Kind      Kind              `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
	Data      map[string]string `json:"data,omitempty"`
}

// Broker delivers each published event to every current subscriber.
// Publish never blocks: a subscriber whose buffer is full misses the event.
type Broker struct {
	mu     sync.RWMutex
	subs   map[int]chan Event
	nextID int
	closed bool
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[int]chan Event)}
}

// Subscribe returns a channel of events and a cancel func that closes it.
func (b *Broker) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Event, buffer)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if c, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(c)
			}
		})
	}
	return ch, cancel
}

func (b *Broker) Publish(ev Event) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Emit is Publish for an event with optional key/value data.
func (b *Broker) Emit(kind Kind, kv ...string) {
	ev := Event{Kind: kind}
	if len(kv) > 1 {
		ev.Data = make(map[string]string, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			ev.Data[kv[i]] = kv[i+1]
		}
	}
	b.Publish(ev)
}

// Close closes every subscriber channel. Later subscribers get a closed channel.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}

func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
