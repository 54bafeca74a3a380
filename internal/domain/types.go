package domain

import "time"

// Person identifies a participant by name. Equality is exact string match;
// there are no attributes beyond identity.
type Person string

// RoomID identifies one bounded conversation segment.
type RoomID string

type MessageID string

type Timestamp = time.Time

// MessageKind distinguishes what was recorded: a participant's utterance,
// the agent's own utterance, or the agent's explicit decision to stay quiet.
type MessageKind string

const (
	KindUtterance      MessageKind = "utterance"
	KindAgentUtterance MessageKind = "agent_utterance"
	KindAgentSilence   MessageKind = "agent_silence"
)
