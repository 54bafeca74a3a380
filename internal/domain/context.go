package domain

// Relation classifies a past message's recorded participant set against the
// participants of the currently open room. It tells the deliberation step
// how much of that message's audience is present right now.
type Relation string

const (
	// RelationSame: recorded with exactly the current participant set.
	RelationSame Relation = "same"
	// RelationSubset: everyone who heard it is present, plus newcomers.
	RelationSubset Relation = "subset"
	// RelationSuperset: all current participants heard it, but so did others.
	RelationSuperset Relation = "superset"
	// RelationOverlapping: some current participants heard it, some did not.
	RelationOverlapping Relation = "overlapping"
	// RelationDisjoint: nobody in the current room heard it.
	RelationDisjoint Relation = "disjoint"
)

// ContextEntry is one history item as seen from the current room.
type ContextEntry struct {
	Message
	Relation Relation
}

// ContextView is the disclosure-aware context handed to the deliberation
// step. It is rebuilt for every decision, derived from the message store and
// room tracker, and discarded after use. History is the agent's full memory
// across all rooms, in strict observation order; the boundary is enforced by
// the deliberation step reading the per-entry relations, not by redaction.
type ContextView struct {
	RoomID       RoomID
	Participants []Person
	Absent       []Person
	History      []ContextEntry
}
