// Package scenario loads conversation scripts from JSON files and replays
// them through an agent session.
package scenario

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Gelembjuk/ai-group-chats/internal/domain"
)

// Scenario is one experiment file: the person universe, the agent's
// behavioral instructions, and the scripted conversations.
type Scenario struct {
	AgentName     string         `json:"agent_name"`
	AllPersons    []string       `json:"all_persons"`
	Instructions  string         `json:"instructions"`
	Conversations []Conversation `json:"conversations"`
}

// Conversation is one scripted room: who is in it and what gets said.
type Conversation struct {
	ID           int      `json:"conversation_id"`
	Participants []string `json:"participants"`
	Messages     []Line   `json:"messages"`
}

// Line is one scripted utterance.
type Line struct {
	Member  string `json:"member"`
	Message string `json:"message"`
}

// RoomID derives the room identifier for this conversation. A conversation
// without an explicit conversation_id gets a position-based id in a separate
// "auto" namespace, so it can never collide with an explicit id declared
// elsewhere in the file.
func (c Conversation) RoomID(fallbackIndex int) domain.RoomID {
	if c.ID == 0 {
		return domain.RoomID(fmt.Sprintf("conversation-auto-%d", fallbackIndex))
	}
	return domain.RoomID(fmt.Sprintf("conversation-%d", c.ID))
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}

	var sc Scenario
	if err := json.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario file %s: %w", path, err)
	}

	if len(sc.Conversations) == 0 {
		return nil, fmt.Errorf("scenario file %s: no conversations", path)
	}
	if len(sc.AllPersons) == 0 {
		return nil, fmt.Errorf("scenario file %s: all_persons is empty", path)
	}
	if sc.AgentName == "" {
		sc.AgentName = "AI Assistant"
	}

	return &sc, nil
}

// Universe converts the person list to domain types.
func (s *Scenario) Universe() []domain.Person {
	persons := make([]domain.Person, 0, len(s.AllPersons))
	for _, p := range s.AllPersons {
		persons = append(persons, domain.Person(p))
	}
	return persons
}
