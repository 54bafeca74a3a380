package domain

type RoomStatus string

const (
	RoomOpen   RoomStatus = "open"
	RoomClosed RoomStatus = "closed"
)

// Room is one conversation segment with a participant set that is fixed for
// its whole duration. A room id is never reused once the room is closed.
type Room struct {
	ID           RoomID
	Participants []Person
	Status       RoomStatus
}

// Has reports whether p is a participant of the room.
func (r Room) Has(p Person) bool {
	for _, q := range r.Participants {
		if q == p {
			return true
		}
	}
	return false
}
