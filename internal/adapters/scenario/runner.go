package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/Gelembjuk/ai-group-chats/internal/app/session"
	"github.com/Gelembjuk/ai-group-chats/internal/domain"
	"github.com/Gelembjuk/ai-group-chats/internal/observability"
)

// Reporter receives the replay as it happens so rendering stays outside the
// core. Implementations must not mutate what they are handed.
type Reporter interface {
	ExperimentStarted(agent domain.Person, universe []domain.Person, conversations int)
	RoomOpened(id domain.RoomID, participants, absent []domain.Person)
	Inbound(speaker domain.Person, text string)
	Thoughts(rationale string)
	AgentSpoke(agent domain.Person, text string)
	AgentSilent(agent domain.Person)
	RoomClosed(id domain.RoomID)
	ExperimentFinished(history []domain.Message)
}

// Runner replays a scenario through a session, one conversation at a time,
// one message at a time, in file order.
type Runner struct {
	deliberator domain.Deliberator
	reporter    Reporter

	// ShowThoughts forwards the private rationale to the reporter.
	ShowThoughts bool

	// DeliberationTimeout is handed to the session; zero means none.
	DeliberationTimeout time.Duration
}

func NewRunner(deliberator domain.Deliberator, reporter Reporter) *Runner {
	return &Runner{deliberator: deliberator, reporter: reporter}
}

// Run builds a session from the scenario and replays every conversation.
// Malformed conversation entries are skipped with a warning, matching the
// forgiving behavior scenario authors expect while iterating on files;
// protocol and integrity errors from the session abort the run.
func (r *Runner) Run(ctx context.Context, sc *Scenario) error {
	sess, err := session.New(session.Config{
		AgentIdentity:       domain.Person(sc.AgentName),
		AllPersons:          sc.Universe(),
		Instructions:        sc.Instructions,
		Deliberator:         r.deliberator,
		DeliberationTimeout: r.DeliberationTimeout,
	})
	if err != nil {
		return fmt.Errorf("configuring session: %w", err)
	}

	log := observability.LoggerFromContext(ctx)
	r.reporter.ExperimentStarted(sess.Identity(), sc.Universe(), len(sc.Conversations))

	for i, conv := range sc.Conversations {
		if len(conv.Participants) == 0 || len(conv.Messages) == 0 {
			log.Warn("skipping invalid conversation", "index", i, "conversation_id", conv.ID)
			continue
		}

		roomID := conv.RoomID(i + 1)
		participants := make([]domain.Person, 0, len(conv.Participants))
		for _, p := range conv.Participants {
			participants = append(participants, domain.Person(p))
		}

		if err := sess.OpenRoom(roomID, participants); err != nil {
			return fmt.Errorf("opening room %s: %w", roomID, err)
		}
		absent, _ := sess.AbsentNow()
		r.reporter.RoomOpened(roomID, participants, absent)

		for _, line := range conv.Messages {
			if line.Member == "" || line.Message == "" {
				log.Warn("skipping invalid message", "room_id", roomID)
				continue
			}

			r.reporter.Inbound(domain.Person(line.Member), line.Message)

			decision, err := sess.Observe(ctx, domain.Person(line.Member), line.Message)
			if err != nil {
				return fmt.Errorf("observing message in room %s: %w", roomID, err)
			}

			if r.ShowThoughts && decision.Rationale != "" {
				r.reporter.Thoughts(decision.Rationale)
			}
			if decision.Outcome.DidSpeak {
				r.reporter.AgentSpoke(sess.Identity(), decision.Outcome.Text)
			} else {
				r.reporter.AgentSilent(sess.Identity())
			}
		}

		if err := sess.CloseRoom(); err != nil {
			return fmt.Errorf("closing room %s: %w", roomID, err)
		}
		r.reporter.RoomClosed(roomID)
	}

	r.reporter.ExperimentFinished(sess.HistorySnapshot())
	return nil
}
