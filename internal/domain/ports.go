package domain

import "context"

// Deliberator is the opaque reasoning capability. Given the disclosure-aware
// context, the behavioral instructions, and one inbound message, it produces
// a private rationale and a speak-or-silent decision.
//
// The core never depends on how deliberation happens, only on this contract:
// the call may block, it must honor ctx cancellation, and any error it
// returns is treated as a transient ReasoningUnavailable condition.
type Deliberator interface {
	Deliberate(ctx context.Context, view ContextView, instructions string, inbound Message) (Deliberation, error)
}
