package rooms_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gelembjuk/ai-group-chats/internal/app/rooms"
	"github.com/Gelembjuk/ai-group-chats/internal/domain"
)

func universe() []domain.Person {
	return []domain.Person{"Jack", "Sarah", "Tom"}
}

func TestOpenRoomHappyPath(t *testing.T) {
	tr := rooms.NewTracker(universe())

	room, err := tr.OpenRoom("room-1", []domain.Person{"Jack", "Sarah"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoomID("room-1"), room.ID)
	assert.Equal(t, domain.RoomOpen, room.Status)

	current, ok := tr.CurrentRoom()
	require.True(t, ok)
	assert.Equal(t, []domain.Person{"Jack", "Sarah"}, current.Participants)
}

func TestOnlyOneRoomOpenAtATime(t *testing.T) {
	tr := rooms.NewTracker(universe())

	_, err := tr.OpenRoom("room-1", []domain.Person{"Jack", "Sarah"})
	require.NoError(t, err)

	_, err = tr.OpenRoom("room-2", []domain.Person{"Tom"})
	require.ErrorIs(t, err, domain.ErrRoomAlreadyOpen)

	// The failed open must not disturb the existing room.
	current, ok := tr.CurrentRoom()
	require.True(t, ok)
	assert.Equal(t, domain.RoomID("room-1"), current.ID)
	assert.Equal(t, []domain.Person{"Jack", "Sarah"}, current.Participants)
}

func TestCloseRoomWithoutOpenRoom(t *testing.T) {
	tr := rooms.NewTracker(universe())
	assert.ErrorIs(t, tr.CloseRoom(), domain.ErrNoOpenRoom)
}

func TestRoomIDNeverReopens(t *testing.T) {
	tr := rooms.NewTracker(universe())

	_, err := tr.OpenRoom("room-1", []domain.Person{"Jack"})
	require.NoError(t, err)
	require.NoError(t, tr.CloseRoom())

	_, err = tr.OpenRoom("room-1", []domain.Person{"Sarah"})
	assert.ErrorIs(t, err, domain.ErrRoomReused)
}

func TestOpenRoomRejectsUnknownPerson(t *testing.T) {
	tr := rooms.NewTracker(universe())

	_, err := tr.OpenRoom("room-1", []domain.Person{"Jack", "Eve"})
	assert.ErrorIs(t, err, domain.ErrUnknownPerson)

	_, ok := tr.CurrentRoom()
	assert.False(t, ok)
}

func TestOpenRoomRejectsEmptyParticipants(t *testing.T) {
	tr := rooms.NewTracker(universe())

	_, err := tr.OpenRoom("room-1", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidProvenance)
}

func TestOpenCloseSequenceKeepsInvariant(t *testing.T) {
	tr := rooms.NewTracker(universe())

	for i, participants := range [][]domain.Person{
		{"Jack", "Sarah"},
		{"Tom", "Jack"},
		{"Jack", "Sarah", "Tom"},
	} {
		id := domain.RoomID(fmt.Sprintf("segment-%d", i))
		_, err := tr.OpenRoom(id, participants)
		require.NoError(t, err)

		_, err = tr.OpenRoom("other", []domain.Person{"Tom"})
		require.ErrorIs(t, err, domain.ErrRoomAlreadyOpen)

		require.NoError(t, tr.CloseRoom())
		_, ok := tr.CurrentRoom()
		require.False(t, ok)
	}
}

func TestKnowsCoversOpenAndClosedRooms(t *testing.T) {
	tr := rooms.NewTracker(universe())

	assert.False(t, tr.Knows("room-1"))

	_, err := tr.OpenRoom("room-1", []domain.Person{"Jack"})
	require.NoError(t, err)
	assert.True(t, tr.Knows("room-1"))

	require.NoError(t, tr.CloseRoom())
	assert.True(t, tr.Knows("room-1"))
}

func TestAbsentPreservesUniverseOrder(t *testing.T) {
	tr := rooms.NewTracker(universe())

	assert.Equal(t, []domain.Person{"Jack", "Tom"}, tr.Absent([]domain.Person{"Sarah"}))
	assert.Nil(t, tr.Absent(universe()))
}
