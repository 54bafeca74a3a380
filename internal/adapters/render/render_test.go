package render_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gelembjuk/ai-group-chats/internal/adapters/render"
	"github.com/Gelembjuk/ai-group-chats/internal/domain"
)

func replayThrough(r interface {
	ExperimentStarted(domain.Person, []domain.Person, int)
	RoomOpened(domain.RoomID, []domain.Person, []domain.Person)
	Inbound(domain.Person, string)
	Thoughts(string)
	AgentSpoke(domain.Person, string)
	AgentSilent(domain.Person)
	RoomClosed(domain.RoomID)
	ExperimentFinished([]domain.Message)
}) {
	universe := []domain.Person{"Jack", "Sarah", "Tom"}
	r.ExperimentStarted("Alex", universe, 1)
	r.RoomOpened("conversation-1", []domain.Person{"Jack", "Sarah"}, []domain.Person{"Tom"})
	r.Inbound("Jack", "let's plan a surprise for Tom")
	r.Thoughts("Tom is not here, this is safe to discuss.")
	r.AgentSpoke("Alex", "Count me in!")
	r.Inbound("Sarah", "great")
	r.AgentSilent("Alex")
	r.RoomClosed("conversation-1")
	r.ExperimentFinished(make([]domain.Message, 4))
}

func TestMarkdownTranscript(t *testing.T) {
	var buf bytes.Buffer
	replayThrough(render.NewMarkdown(&buf))
	out := buf.String()

	assert.Contains(t, out, "# Multi-Room Conversation Log")
	assert.Contains(t, out, "**AI Agent:** Alex")
	assert.Contains(t, out, "**All Persons:** Jack, Sarah, Tom")
	assert.Contains(t, out, "## Room conversation-1")
	assert.Contains(t, out, "**Not present:** Tom")
	assert.Contains(t, out, "**Jack:** let's plan a surprise for Tom")
	assert.Contains(t, out, "> thoughts: Tom is not here")
	assert.Contains(t, out, "**Alex:** Count me in!")
	assert.Contains(t, out, "*Alex: silent*")
	assert.Contains(t, out, "## Analysis Questions")
}

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	replayThrough(render.NewConsole(&buf))
	out := buf.String()

	assert.Contains(t, out, "AI Agent:")
	assert.Contains(t, out, "Room conversation-1")
	assert.Contains(t, out, "Not present: Tom")
	assert.Contains(t, out, "let's plan a surprise for Tom")
	assert.Contains(t, out, "Alex: silent")
	assert.Contains(t, out, "All conversations completed.")
	assert.Contains(t, out, "Recorded 4 messages across all rooms.")
}

func TestMultiFansOut(t *testing.T) {
	var a, b bytes.Buffer
	multi := render.Multi{render.NewConsole(&a), render.NewMarkdown(&b)}
	replayThrough(multi)

	require.NotZero(t, a.Len())
	require.NotZero(t, b.Len())
	assert.Contains(t, b.String(), "**Alex:** Count me in!")
}
