// Package rooms tracks the lifecycle of conversation rooms and owns the
// closed universe of known persons. It is the sole authority on who is
// present in the currently open room.
package rooms

import (
	"fmt"
	"sync"

	"github.com/Gelembjuk/ai-group-chats/internal/domain"
)

// Tracker enforces the one-open-room invariant: the decision context is
// defined relative to exactly one current participant set, so a second open
// room is a protocol violation, not a queueing situation.
type Tracker struct {
	mu       sync.RWMutex
	universe []domain.Person
	known    map[domain.Person]struct{}
	rooms    map[domain.RoomID]*domain.Room
	current  *domain.Room
}

// NewTracker fixes the person universe for the whole session. Any later
// reference to a name outside it is rejected, which catches scenario
// authoring mistakes before they mis-tag provenance.
func NewTracker(universe []domain.Person) *Tracker {
	t := &Tracker{
		universe: append([]domain.Person(nil), universe...),
		known:    make(map[domain.Person]struct{}, len(universe)),
		rooms:    make(map[domain.RoomID]*domain.Room),
	}
	for _, p := range universe {
		t.known[p] = struct{}{}
	}
	return t
}

// OpenRoom creates and opens a room with a fixed participant set. The id
// must be fresh: a closed room never reopens.
func (t *Tracker) OpenRoom(id domain.RoomID, participants []domain.Person) (domain.Room, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current != nil {
		return domain.Room{}, fmt.Errorf("%w: room %q is still open", domain.ErrRoomAlreadyOpen, t.current.ID)
	}
	if _, seen := t.rooms[id]; seen {
		return domain.Room{}, fmt.Errorf("%w: %q", domain.ErrRoomReused, id)
	}
	if len(participants) == 0 {
		return domain.Room{}, fmt.Errorf("%w: room %q has no participants", domain.ErrInvalidProvenance, id)
	}
	for _, p := range participants {
		if _, ok := t.known[p]; !ok {
			return domain.Room{}, fmt.Errorf("%w: %q", domain.ErrUnknownPerson, p)
		}
	}

	room := &domain.Room{
		ID:           id,
		Participants: append([]domain.Person(nil), participants...),
		Status:       domain.RoomOpen,
	}
	t.rooms[id] = room
	t.current = room
	return *room, nil
}

// CloseRoom transitions the currently open room to closed.
func (t *Tracker) CloseRoom() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil {
		return domain.ErrNoOpenRoom
	}
	t.current.Status = domain.RoomClosed
	t.current = nil
	return nil
}

// CurrentRoom returns a copy of the open room, if any.
func (t *Tracker) CurrentRoom() (domain.Room, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.current == nil {
		return domain.Room{}, false
	}
	room := *t.current
	room.Participants = append([]domain.Person(nil), t.current.Participants...)
	return room, true
}

// Knows reports whether the id belongs to a currently open or previously
// closed room. The message store uses this to validate provenance.
func (t *Tracker) Knows(id domain.RoomID) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.rooms[id]
	return ok
}

// InUniverse reports whether p is one of the configured persons.
func (t *Tracker) InUniverse(p domain.Person) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.known[p]
	return ok
}

// AllPersons returns the configured universe in its original order.
func (t *Tracker) AllPersons() []domain.Person {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]domain.Person(nil), t.universe...)
}

// Absent returns the universe members missing from the given participant
// set, preserving universe order.
func (t *Tracker) Absent(participants []domain.Person) []domain.Person {
	t.mu.RLock()
	defer t.mu.RUnlock()

	present := make(map[domain.Person]struct{}, len(participants))
	for _, p := range participants {
		present[p] = struct{}{}
	}
	var absent []domain.Person
	for _, p := range t.universe {
		if _, ok := present[p]; !ok {
			absent = append(absent, p)
		}
	}
	return absent
}
