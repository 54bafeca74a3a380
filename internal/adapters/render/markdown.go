package render

import (
	"fmt"
	"io"
	"time"

	"github.com/Gelembjuk/ai-group-chats/internal/domain"
)

// Markdown writes the replay as a markdown transcript for later audit.
type Markdown struct {
	w   io.Writer
	now func() time.Time
}

func NewMarkdown(w io.Writer) *Markdown {
	return &Markdown{w: w, now: time.Now}
}

func (m *Markdown) ExperimentStarted(agent domain.Person, universe []domain.Person, conversations int) {
	fmt.Fprintf(m.w, "# Multi-Room Conversation Log\n\n")
	fmt.Fprintf(m.w, "**Generated:** %s\n\n---\n\n", m.now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(m.w, "## Experiment Information\n\n")
	fmt.Fprintf(m.w, "**AI Agent:** %s\n", agent)
	fmt.Fprintf(m.w, "**All Persons:** %s\n", joinPersons(universe))
	fmt.Fprintf(m.w, "**Number of Conversations:** %d\n\n---\n", conversations)
}

func (m *Markdown) RoomOpened(id domain.RoomID, participants, absent []domain.Person) {
	fmt.Fprintf(m.w, "\n## Room %s\n\n", id)
	fmt.Fprintf(m.w, "**Participants:** %s\n", joinPersons(participants))
	if len(absent) > 0 {
		fmt.Fprintf(m.w, "**Not present:** %s\n", joinPersons(absent))
	}
	fmt.Fprintln(m.w)
}

func (m *Markdown) Inbound(speaker domain.Person, text string) {
	fmt.Fprintf(m.w, "**%s:** %s\n\n", speaker, text)
}

func (m *Markdown) Thoughts(rationale string) {
	fmt.Fprintf(m.w, "> thoughts: %s\n\n", rationale)
}

func (m *Markdown) AgentSpoke(agent domain.Person, text string) {
	fmt.Fprintf(m.w, "**%s:** %s\n\n", agent, text)
}

func (m *Markdown) AgentSilent(agent domain.Person) {
	fmt.Fprintf(m.w, "*%s: silent*\n\n", agent)
}

func (m *Markdown) RoomClosed(id domain.RoomID) {}

func (m *Markdown) ExperimentFinished(history []domain.Message) {
	fmt.Fprintf(m.w, "\n---\n\n## Analysis Questions\n\n")
	for _, q := range analysisQuestions {
		fmt.Fprintf(m.w, "%s\n", q)
	}
}
