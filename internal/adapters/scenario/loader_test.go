package scenario_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gelembjuk/ai-group-chats/internal/adapters/scenario"
	"github.com/Gelembjuk/ai-group-chats/internal/domain"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validScenario = `{
  "agent_name": "Alex",
  "all_persons": ["Jack", "Sarah", "Tom"],
  "instructions": "Be discreet.",
  "conversations": [
    {
      "conversation_id": 1,
      "participants": ["Jack", "Sarah"],
      "messages": [{"member": "Jack", "message": "hello"}]
    }
  ]
}`

func TestLoadValidScenario(t *testing.T) {
	sc, err := scenario.Load(writeScenario(t, validScenario))
	require.NoError(t, err)

	assert.Equal(t, "Alex", sc.AgentName)
	assert.Equal(t, "Be discreet.", sc.Instructions)
	assert.Equal(t, []domain.Person{"Jack", "Sarah", "Tom"}, sc.Universe())
	require.Len(t, sc.Conversations, 1)
	assert.Equal(t, domain.RoomID("conversation-1"), sc.Conversations[0].RoomID(1))
}

func TestLoadDefaultsAgentName(t *testing.T) {
	sc, err := scenario.Load(writeScenario(t, `{
		"all_persons": ["Jack"],
		"conversations": [{"participants": ["Jack"], "messages": [{"member": "Jack", "message": "hi"}]}]
	}`))
	require.NoError(t, err)
	assert.Equal(t, "AI Assistant", sc.AgentName)
}

func TestLoadFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid json", `{"all_persons": [`},
		{"no conversations", `{"all_persons": ["Jack"], "conversations": []}`},
		{"no persons", `{"all_persons": [], "conversations": [{"participants": ["Jack"], "messages": [{"member": "Jack", "message": "hi"}]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scenario.Load(writeScenario(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := scenario.Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestRoomIDFallback(t *testing.T) {
	conv := scenario.Conversation{}
	assert.Equal(t, domain.RoomID("conversation-auto-3"), conv.RoomID(3))

	conv.ID = 7
	assert.Equal(t, domain.RoomID("conversation-7"), conv.RoomID(3))
}

func TestRoomIDFallbackNeverCollidesWithExplicitID(t *testing.T) {
	// First entry omits conversation_id, second declares id 1: both rooms
	// must still get distinct ids or the replay would abort on reuse.
	implicit := scenario.Conversation{}
	explicit := scenario.Conversation{ID: 1}

	assert.NotEqual(t, implicit.RoomID(1), explicit.RoomID(2))
}
