// Package session composes the message store, room tracker, context
// assembler and decision engine into one agent run.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Gelembjuk/ai-group-chats/internal/app/contextview"
	"github.com/Gelembjuk/ai-group-chats/internal/app/decision"
	"github.com/Gelembjuk/ai-group-chats/internal/app/history"
	"github.com/Gelembjuk/ai-group-chats/internal/app/rooms"
	"github.com/Gelembjuk/ai-group-chats/internal/domain"
	"github.com/Gelembjuk/ai-group-chats/internal/observability"
)

// Config is everything a session needs before the first room opens.
type Config struct {
	AgentIdentity domain.Person
	AllPersons    []domain.Person
	Instructions  string
	Deliberator   domain.Deliberator

	// DeliberationTimeout bounds each reasoning call. Zero means the caller's
	// context is the only deadline.
	DeliberationTimeout time.Duration

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

// Session drives one continuous run of the agent. It is strictly sequential:
// one goroutine opens rooms, feeds messages, and closes rooms, in order.
// Independent sessions own entirely disjoint stores and trackers.
type Session struct {
	identity     domain.Person
	instructions string

	tracker *rooms.Tracker
	store   *history.Store
	engine  *decision.Engine
	now     func() time.Time
}

// New validates the configuration and builds the session. Setup problems are
// fatal here, before any room opens, never mid-run.
func New(cfg Config) (*Session, error) {
	if len(cfg.AllPersons) == 0 {
		return nil, fmt.Errorf("%w: empty person universe", domain.ErrConfiguration)
	}
	if cfg.AgentIdentity == "" {
		return nil, fmt.Errorf("%w: empty agent identity", domain.ErrConfiguration)
	}
	for _, p := range cfg.AllPersons {
		if p == "" {
			return nil, fmt.Errorf("%w: empty person name in universe", domain.ErrConfiguration)
		}
		if p == cfg.AgentIdentity {
			return nil, fmt.Errorf("%w: agent identity %q collides with a universe member", domain.ErrConfiguration, p)
		}
	}
	if cfg.Deliberator == nil {
		return nil, fmt.Errorf("%w: nil deliberator", domain.ErrConfiguration)
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	tracker := rooms.NewTracker(cfg.AllPersons)
	return &Session{
		identity:     cfg.AgentIdentity,
		instructions: cfg.Instructions,
		tracker:      tracker,
		store:        history.NewStore(tracker, cfg.AgentIdentity),
		engine:       decision.NewEngine(cfg.Deliberator, cfg.DeliberationTimeout),
		now:          now,
	}, nil
}

func (s *Session) Identity() domain.Person { return s.identity }

// OpenRoom starts a new conversation segment with a fixed participant set.
func (s *Session) OpenRoom(id domain.RoomID, participants []domain.Person) error {
	_, err := s.tracker.OpenRoom(id, participants)
	return err
}

// CloseRoom ends the current conversation segment.
func (s *Session) CloseRoom() error {
	return s.tracker.CloseRoom()
}

// CurrentRoom exposes the open room, if any, for drivers and renderers.
func (s *Session) CurrentRoom() (domain.Room, bool) {
	return s.tracker.CurrentRoom()
}

// AbsentNow returns who is missing from the current room.
func (s *Session) AbsentNow() ([]domain.Person, error) {
	room, ok := s.tracker.CurrentRoom()
	if !ok {
		return nil, domain.ErrNoOpenRoom
	}
	return s.tracker.Absent(room.Participants), nil
}

// Decision is what one Observe call produced, for the external driver:
// the recorded inbound and reply messages, plus the private rationale for
// an observing operator.
type Decision struct {
	Outcome   domain.DecisionOutcome
	Rationale string

	// Fallback marks a silence that happened only because the reasoning
	// capability was unavailable.
	Fallback bool

	Inbound domain.Message
	Reply   domain.Message
}

// Observe is the single entry point for an inbound utterance: it appends the
// message with the current room's provenance, assembles the context view,
// runs one deliberation pass, and records the outcome — Spoken or Silent —
// as the agent's own message. Protocol and integrity violations are returned
// to the caller; a failing reasoning capability is absorbed as Silent.
func (s *Session) Observe(ctx context.Context, speaker domain.Person, text string) (Decision, error) {
	room, ok := s.tracker.CurrentRoom()
	if !ok {
		return Decision{}, domain.ErrNoOpenRoom
	}

	log := observability.LoggerFromContext(ctx).With(
		"room_id", room.ID,
		"speaker", speaker,
	)

	inbound := domain.Message{
		ID:           domain.MessageID(uuid.NewString()),
		RoomID:       room.ID,
		Speaker:      speaker,
		Kind:         domain.KindUtterance,
		Text:         text,
		Participants: room.Participants,
		At:           s.now(),
	}
	seq, err := s.store.Append(inbound)
	if err != nil {
		log.Error("rejected inbound message", "error", err)
		return Decision{}, err
	}
	inbound.Seq = seq

	view, err := contextview.Build(s.store, s.tracker)
	if err != nil {
		return Decision{}, err
	}

	result, err := s.engine.Decide(ctx, view, s.instructions, inbound)
	if err != nil {
		return Decision{}, err
	}

	reply := domain.Message{
		ID:           domain.MessageID(uuid.NewString()),
		RoomID:       room.ID,
		Speaker:      s.identity,
		Kind:         domain.KindAgentSilence,
		Participants: room.Participants,
		At:           s.now(),
	}
	if result.Outcome.DidSpeak {
		reply.Kind = domain.KindAgentUtterance
		reply.Text = result.Outcome.Text
	}
	seq, err = s.store.Append(reply)
	if err != nil {
		// The reply carries the same provenance as the inbound message that
		// was just accepted, so this indicates a bug, not bad input.
		log.Error("failed to record decision outcome", "error", err)
		return Decision{}, err
	}
	reply.Seq = seq

	log.Info("decision recorded", "spoke", result.Outcome.DidSpeak, "fallback", result.Fallback)

	return Decision{
		Outcome:   result.Outcome,
		Rationale: result.Rationale,
		Fallback:  result.Fallback,
		Inbound:   inbound,
		Reply:     reply,
	}, nil
}

// HistorySnapshot is the read-only export for logging and audit.
func (s *Session) HistorySnapshot() []domain.Message {
	return s.store.Snapshot()
}
