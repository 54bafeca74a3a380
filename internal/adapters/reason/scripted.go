package reason

import (
	"context"
	"strings"

	"github.com/Gelembjuk/ai-group-chats/internal/domain"
)

// Rule matches an inbound message and scripts the agent's reaction. Zero
// valued fields match anything; an empty Respond means "stay silent".
type Rule struct {
	WhenSpeaker  domain.Person
	WhenContains string
	Respond      string
	Rationale    string
}

func (r Rule) matches(inbound domain.Message) bool {
	if r.WhenSpeaker != "" && r.WhenSpeaker != inbound.Speaker {
		return false
	}
	if r.WhenContains != "" && !strings.Contains(strings.ToLower(inbound.Text), strings.ToLower(r.WhenContains)) {
		return false
	}
	return true
}

// ScriptedDeliberator is the offline reasoning capability: first matching
// rule wins, no rule means silence. It keeps local runs and tests free of
// any model dependency.
type ScriptedDeliberator struct {
	rules []Rule
}

func NewScriptedDeliberator(rules ...Rule) *ScriptedDeliberator {
	return &ScriptedDeliberator{rules: rules}
}

func (s *ScriptedDeliberator) Deliberate(
	ctx context.Context,
	view domain.ContextView,
	instructions string,
	inbound domain.Message,
) (domain.Deliberation, error) {
	if err := ctx.Err(); err != nil {
		return domain.Deliberation{}, err
	}

	for _, r := range s.rules {
		if !r.matches(inbound) {
			continue
		}
		rationale := r.Rationale
		if rationale == "" {
			rationale = "Scripted rule matched this message."
		}
		if r.Respond == "" {
			return domain.Deliberation{Rationale: rationale, Outcome: domain.Silent()}, nil
		}
		return domain.Deliberation{Rationale: rationale, Outcome: domain.Spoken(r.Respond)}, nil
	}

	return domain.Deliberation{
		Rationale: "No scripted rule matched; nothing to add.",
		Outcome:   domain.Silent(),
	}, nil
}

// UnavailableDeliberator always fails, standing in for a dead or timing-out
// reasoning capability.
type UnavailableDeliberator struct {
	Err error
}

func (u UnavailableDeliberator) Deliberate(
	ctx context.Context,
	view domain.ContextView,
	instructions string,
	inbound domain.Message,
) (domain.Deliberation, error) {
	err := u.Err
	if err == nil {
		err = domain.ErrReasoningUnavailable
	}
	return domain.Deliberation{}, err
}
