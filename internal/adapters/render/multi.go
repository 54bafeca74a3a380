package render

import (
	"github.com/Gelembjuk/ai-group-chats/internal/adapters/scenario"
	"github.com/Gelembjuk/ai-group-chats/internal/domain"
)

// Multi fans replay events out to several reporters, e.g. console plus a
// markdown transcript.
type Multi []scenario.Reporter

func (m Multi) ExperimentStarted(agent domain.Person, universe []domain.Person, conversations int) {
	for _, r := range m {
		r.ExperimentStarted(agent, universe, conversations)
	}
}

func (m Multi) RoomOpened(id domain.RoomID, participants, absent []domain.Person) {
	for _, r := range m {
		r.RoomOpened(id, participants, absent)
	}
}

func (m Multi) Inbound(speaker domain.Person, text string) {
	for _, r := range m {
		r.Inbound(speaker, text)
	}
}

func (m Multi) Thoughts(rationale string) {
	for _, r := range m {
		r.Thoughts(rationale)
	}
}

func (m Multi) AgentSpoke(agent domain.Person, text string) {
	for _, r := range m {
		r.AgentSpoke(agent, text)
	}
}

func (m Multi) AgentSilent(agent domain.Person) {
	for _, r := range m {
		r.AgentSilent(agent)
	}
}

func (m Multi) RoomClosed(id domain.RoomID) {
	for _, r := range m {
		r.RoomClosed(id)
	}
}

func (m Multi) ExperimentFinished(history []domain.Message) {
	for _, r := range m {
		r.ExperimentFinished(history)
	}
}
