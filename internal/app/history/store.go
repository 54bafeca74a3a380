// Package history holds the append-only log of everything the agent has ever
// observed, across all rooms. There is no deletion: provenance is preserved
// for audit, silence records included.
package history

import (
	"fmt"
	"iter"
	"sync"

	"github.com/Gelembjuk/ai-group-chats/internal/domain"
)

// RoomDirectory is the slice of the room tracker the store needs to validate
// provenance on append.
type RoomDirectory interface {
	Knows(id domain.RoomID) bool
	InUniverse(p domain.Person) bool
}

// Store is the single owner of all messages. Appends are atomic: either a
// fully valid message is stored or nothing is.
type Store struct {
	dir   RoomDirectory
	agent domain.Person

	mu   sync.RWMutex
	msgs []domain.Message
}

func NewStore(dir RoomDirectory, agent domain.Person) *Store {
	return &Store{dir: dir, agent: agent}
}

// Append validates the message's provenance, assigns the next global
// sequence index, and stores an isolated copy. The sequence index is the
// observation order across all rooms.
func (s *Store) Append(msg domain.Message) (int, error) {
	if len(msg.Participants) == 0 {
		return 0, fmt.Errorf("%w: empty participant set", domain.ErrInvalidProvenance)
	}
	if !s.dir.Knows(msg.RoomID) {
		return 0, fmt.Errorf("%w: room %q is not known", domain.ErrInvalidProvenance, msg.RoomID)
	}
	if msg.Speaker != s.agent && !s.dir.InUniverse(msg.Speaker) {
		return 0, fmt.Errorf("%w: speaker %q", domain.ErrUnknownPerson, msg.Speaker)
	}
	for _, p := range msg.Participants {
		if !s.dir.InUniverse(p) {
			return 0, fmt.Errorf("%w: participant %q", domain.ErrUnknownPerson, p)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg.Seq = len(s.msgs)
	msg.Participants = append([]domain.Person(nil), msg.Participants...)
	s.msgs = append(s.msgs, msg)
	return msg.Seq, nil
}

// Snapshot returns the full history in sequence order. The returned slice is
// a copy; appends after the call do not show up in it.
func (s *Store) Snapshot() []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Message(nil), s.msgs...)
}

// All returns a restartable iteration over a snapshot taken at call time.
func (s *Store) All() iter.Seq[domain.Message] {
	snap := s.Snapshot()
	return func(yield func(domain.Message) bool) {
		for _, m := range snap {
			if !yield(m) {
				return
			}
		}
	}
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.msgs)
}
