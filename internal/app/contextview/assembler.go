// Package contextview assembles the disclosure-aware context handed to each
// deliberation. The assembler is stateless: every view is a pure function of
// the message store and room tracker at the moment of the call.
package contextview

import (
	"github.com/Gelembjuk/ai-group-chats/internal/domain"
)

// HistorySource is the read side of the message store.
type HistorySource interface {
	Snapshot() []domain.Message
}

// RoomSource is the read side of the room tracker.
type RoomSource interface {
	CurrentRoom() (domain.Room, bool)
	Absent(participants []domain.Person) []domain.Person
}

// Build produces the context view for the currently open room. The history
// is deliberately the agent's full memory across all rooms, in strict
// sequence order: the disclosure boundary is enforced by the deliberation
// step reading the per-entry relations, not by withholding memory here.
func Build(store HistorySource, tracker RoomSource) (domain.ContextView, error) {
	room, ok := tracker.CurrentRoom()
	if !ok {
		return domain.ContextView{}, domain.ErrNoOpenRoom
	}

	msgs := store.Snapshot()
	entries := make([]domain.ContextEntry, 0, len(msgs))
	for _, m := range msgs {
		entries = append(entries, domain.ContextEntry{
			Message:  m,
			Relation: Classify(m.Participants, room.Participants),
		})
	}

	return domain.ContextView{
		RoomID:       room.ID,
		Participants: room.Participants,
		Absent:       tracker.Absent(room.Participants),
		History:      entries,
	}, nil
}

// Classify relates a message's recorded participant set ("then") to the
// current room's set ("now").
func Classify(then, now []domain.Person) domain.Relation {
	thenSet := toSet(then)
	nowSet := toSet(now)

	shared := 0
	for p := range thenSet {
		if _, ok := nowSet[p]; ok {
			shared++
		}
	}

	switch {
	case shared == 0:
		return domain.RelationDisjoint
	case shared == len(thenSet) && shared == len(nowSet):
		return domain.RelationSame
	case shared == len(thenSet):
		return domain.RelationSubset
	case shared == len(nowSet):
		return domain.RelationSuperset
	default:
		return domain.RelationOverlapping
	}
}

func toSet(ps []domain.Person) map[domain.Person]struct{} {
	set := make(map[domain.Person]struct{}, len(ps))
	for _, p := range ps {
		set[p] = struct{}{}
	}
	return set
}
