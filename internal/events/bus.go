// Package events provides the publish/subscribe bus the engine delivers its
// notifications through. Every bus owns its own listeners.
package events

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/hekevintran/kinetophone/internal/models"
)

// Event names published by the engine. Channel-scoped enter and exit events
// are named with EnterOn and ExitOn.
const (
	Play       = "play"
	Pause      = "pause"
	TimeUpdate = "timeupdate"
	Seeking    = "seeking"
	Seek       = "seek"
	Enter      = "enter"
	Exit       = "exit"
	End        = "end"
)

// EnterOn returns the enter event name scoped to a channel
func EnterOn(channel string) string {
	return Enter + ":" + channel
}

// ExitOn returns the exit event name scoped to a channel
func ExitOn(channel string) string {
	return Exit + ":" + channel
}

// Event is a notification delivered to listeners. Time is set for timeupdate,
// seeking and seek; Cue is set for enter and exit events.
type Event struct {
	Name string      `json:"name"`
	Time int64       `json:"time"`
	Cue  *models.Cue `json:"cue,omitempty"`
}

// HasTime reports whether the event carries a playback position
func (ev Event) HasTime() bool {
	return ev.Name == TimeUpdate || ev.Name == Seeking || ev.Name == Seek
}

// MarshalJSON writes time for timeupdate, seeking and seek, zero included,
// and leaves it out of every other event.
func (ev Event) MarshalJSON() ([]byte, error) {
	type wire struct {
		Name string      `json:"name"`
		Time *int64      `json:"time,omitempty"`
		Cue  *models.Cue `json:"cue,omitempty"`
	}

	w := wire{Name: ev.Name, Cue: ev.Cue}
	if ev.HasTime() {
		w.Time = &ev.Time
	}
	return json.Marshal(w)
}

// Handler receives events
type Handler func(Event)

// ListenerID identifies a registered handler for removal
type ListenerID uuid.UUID

type listener struct {
	id      ListenerID
	handler Handler
	once    bool
}

// Bus delivers named events to registered handlers in registration order.
// Handlers may register or remove listeners while being invoked.
type Bus struct {
	mu        sync.RWMutex
	listeners map[string][]listener
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{listeners: make(map[string][]listener)}
}

// On registers handler for events named name
func (b *Bus) On(name string, handler Handler) ListenerID {
	return b.add(name, handler, false)
}

// Once registers handler for the next event named name only
func (b *Bus) Once(name string, handler Handler) ListenerID {
	return b.add(name, handler, true)
}

// Off removes a handler. It reports whether the handler was registered.
func (b *Bus) Off(name string, id ListenerID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.removeLocked(name, id)
}

// ListenerCount returns the number of handlers registered for name
func (b *Bus) ListenerCount(name string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[name])
}

// Emit invokes every handler registered for the event's name. The handler
// list is snapshotted before the first call.
func (b *Bus) Emit(event Event) {
	b.mu.Lock()
	snapshot := append([]listener(nil), b.listeners[event.Name]...)
	for _, l := range snapshot {
		if l.once {
			b.removeLocked(event.Name, l.id)
		}
	}
	b.mu.Unlock()

	for _, l := range snapshot {
		l.handler(event)
	}
}

func (b *Bus) add(name string, handler Handler, once bool) ListenerID {
	id := ListenerID(uuid.New())

	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[name] = append(b.listeners[name], listener{id: id, handler: handler, once: once})
	return id
}

func (b *Bus) removeLocked(name string, id ListenerID) bool {
	ls := b.listeners[name]
	for i, l := range ls {
		if l.id != id {
			continue
		}
		rest := make([]listener, 0, len(ls)-1)
		rest = append(rest, ls[:i]...)
		rest = append(rest, ls[i+1:]...)
		if len(rest) == 0 {
			delete(b.listeners, name)
		} else {
			b.listeners[name] = rest
		}
		return true
	}
	return false
}
