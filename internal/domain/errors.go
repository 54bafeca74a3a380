package domain

import "errors"

var (
	// ErrConfiguration: session setup is invalid; fatal before any room opens.
	ErrConfiguration = errors.New("invalid session configuration")

	// ErrRoomAlreadyOpen: only one room may be open at a time.
	ErrRoomAlreadyOpen = errors.New("a room is already open")

	// ErrNoOpenRoom: the operation needs a currently open room.
	ErrNoOpenRoom = errors.New("no open room")

	// ErrRoomReused: a room id never reopens once it has been used.
	ErrRoomReused = errors.New("room id already used")

	// ErrUnknownPerson: a name outside the configured person universe.
	ErrUnknownPerson = errors.New("person not in configured universe")

	// ErrInvalidProvenance: a message whose room/participant tagging cannot
	// be trusted; rejected at the boundary, never coerced.
	ErrInvalidProvenance = errors.New("invalid message provenance")

	// ErrReasoningUnavailable: the external reasoning capability failed or
	// timed out. Absorbed inside the decision engine as a Silent outcome.
	ErrReasoningUnavailable = errors.New("reasoning capability unavailable")

	// ErrEngineBusy: a new inbound message arrived while a deliberation was
	// still in flight. The engine is single-flight by design.
	ErrEngineBusy = errors.New("decision engine is deliberating")
)
