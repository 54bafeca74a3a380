package reason

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Gelembjuk/ai-group-chats/internal/domain"
)

const baseSystemPrompt = `You are %s, a regular member of this group, participating in several separate
group chats with different combinations of people.

HOW CONVERSATIONS WORK:
- People sometimes talk to specific individuals and sometimes to the whole chat.
- You are a full participant: respond naturally when it makes sense, but you do
  not need to comment on everything.
- Think of this like being in a friend group with multiple group chat threads.

CRITICAL PRIVACY RULES:
- You remember EVERYTHING from ALL conversations, because you are in all the chats.
- You may ONLY share information with people who were present when it was discussed.
- Every history line below is tagged with the room it came from and how much of
  that room's audience is present right now. Treat "overlapping", "disjoint" and
  "subset" tags as warnings: someone here did NOT hear that conversation.
- If someone asks about a topic discussed when they were not present, be very
  careful. When unsure, err on the side of discretion.

TWO-PHASE PROTOCOL:
PHASE 1 - THINK (private, talk to yourself): write a few sentences of natural
first-person self-talk. Who is here? Who is not? Where did I learn what I am
about to say, and was everyone here present for it? Would sharing violate
someone's privacy or trust? Should I speak at all?

PHASE 2 - ACT: after your thinking, end your reply with exactly one final line:
SAY: <one to three short, casual sentences>
or, if you decide not to contribute:
PASS

Never put anything after that final line.`

// BuildSystemPrompt renders the behavioral contract for one deliberation:
// identity, the person universe, who is present and absent right now, the
// privacy rules, and the operator's scenario instructions.
func BuildSystemPrompt(identity domain.Person, view domain.ContextView, instructions string) string {
	var b strings.Builder
	fmt.Fprintf(&b, baseSystemPrompt, identity)

	b.WriteString("\n\nAll persons across all conversations:\n")
	writeNames(&b, append(append([]domain.Person(nil), view.Participants...), view.Absent...))

	b.WriteString("\nCurrent conversation participants (they see everything you say):\n")
	writeNames(&b, view.Participants)

	if len(view.Absent) > 0 {
		b.WriteString("\nNOT in this conversation (they cannot see or hear your messages):\n")
		writeNames(&b, view.Absent)
	}

	if instructions != "" {
		b.WriteString("\nADDITIONAL INSTRUCTIONS:\n")
		b.WriteString(instructions)
		b.WriteString("\n")
	}

	return b.String()
}

func writeNames(b *strings.Builder, persons []domain.Person) {
	for _, p := range persons {
		b.WriteString("- ")
		b.WriteString(string(p))
		b.WriteString("\n")
	}
}

// RenderEntry formats one history line with its provenance tags the way the
// system prompt promises them.
func RenderEntry(e domain.ContextEntry) string {
	audience := make([]string, 0, len(e.Participants))
	for _, p := range e.Participants {
		audience = append(audience, string(p))
	}

	var line string
	switch e.Kind {
	case domain.KindAgentSilence:
		line = "(you chose to stay silent)"
	default:
		line = fmt.Sprintf("%s: %s", e.Speaker, e.Text)
	}

	return fmt.Sprintf("[room %s | heard by: %s | audience now: %s] %s",
		e.RoomID, strings.Join(audience, ", "), relationLabel(e.Relation), line)
}

func relationLabel(r domain.Relation) string {
	switch r {
	case domain.RelationSame:
		return "identical"
	case domain.RelationSubset:
		return "all present, plus newcomers"
	case domain.RelationSuperset:
		return "all present"
	case domain.RelationOverlapping:
		return "overlapping - some here did not hear this"
	case domain.RelationDisjoint:
		return "disjoint - nobody here heard this"
	default:
		return string(r)
	}
}

var (
	sayLineRe    = regexp.MustCompile(`(?m)^\s*SAY:\s*(.+)\s*$`)
	passLineRe   = regexp.MustCompile(`(?m)^\s*PASS\s*\.?\s*$`)
	phaseMarkRe  = regexp.MustCompile(`(?i)phase\s*2[:\s\-]*`)
	phaseOneMark = regexp.MustCompile(`(?i)^phase\s*1[:\s\-]*`)
)

// ParseReply extracts the deliberation from a raw model reply. The action is
// the LAST SAY:/PASS line: a model may draft a SAY line mid-reasoning and
// then retract it, and emitting the discarded draft would turn a rejected
// disclosure into an utterance. Everything before the action line is the
// private rationale. A reply with no recognizable action line resolves to
// Silent with the whole text as rationale: an unparseable reply must never
// turn into an utterance.
func ParseReply(raw string) domain.Deliberation {
	raw = strings.TrimSpace(raw)

	sayLocs := sayLineRe.FindAllStringSubmatchIndex(raw, -1)
	passLocs := passLineRe.FindAllStringIndex(raw, -1)

	var lastSay, lastPass []int
	if len(sayLocs) > 0 {
		lastSay = sayLocs[len(sayLocs)-1]
	}
	if len(passLocs) > 0 {
		lastPass = passLocs[len(passLocs)-1]
	}

	switch {
	case lastSay != nil && (lastPass == nil || lastSay[0] > lastPass[0]):
		return domain.Deliberation{
			Rationale: cleanRationale(raw[:lastSay[0]]),
			Outcome:   domain.Spoken(strings.TrimSpace(raw[lastSay[2]:lastSay[3]])),
		}
	case lastPass != nil:
		return domain.Deliberation{
			Rationale: cleanRationale(raw[:lastPass[0]]),
			Outcome:   domain.Silent(),
		}
	default:
		return domain.Deliberation{
			Rationale: cleanRationale(raw),
			Outcome:   domain.Silent(),
		}
	}
}

// cleanRationale strips the phase scaffolding the model sometimes echoes back
// so the operator sees only the self-talk.
func cleanRationale(s string) string {
	if loc := phaseMarkRe.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	s = phaseOneMark.ReplaceAllString(strings.TrimSpace(s), "")
	return strings.TrimSpace(s)
}
