package domain

// Message is an immutable record of something observed in a room: who said
// it, where, and exactly who was present at that moment. The participant set
// is the one in force when the message was recorded, not the room's current
// one, so provenance survives room transitions.
type Message struct {
	ID      MessageID
	RoomID  RoomID
	Speaker Person
	Kind    MessageKind
	Text    string

	// Participants present in the room when the message was recorded.
	Participants []Person

	// Seq is the global observation order across all rooms, assigned by the
	// message store on append.
	Seq int

	At Timestamp
}

// Heard reports whether p was present when the message was recorded.
func (m Message) Heard(p Person) bool {
	for _, q := range m.Participants {
		if q == p {
			return true
		}
	}
	return false
}

// DecisionOutcome is the closed decision space of the agent: either it spoke,
// or it explicitly stayed silent. Both are recorded, silence included.
type DecisionOutcome struct {
	DidSpeak bool
	Text     string
}

func Spoken(text string) DecisionOutcome {
	return DecisionOutcome{DidSpeak: true, Text: text}
}

func Silent() DecisionOutcome {
	return DecisionOutcome{}
}

// Deliberation is what the reasoning capability returns: private rationale
// plus the decision. The rationale is never written to the message store.
type Deliberation struct {
	Rationale string
	Outcome   DecisionOutcome
}
