// Package decision implements the two-phase think-then-act protocol as a
// small state machine: Idle -> Deliberating -> {Emitting, Silent} -> Idle.
package decision

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Gelembjuk/ai-group-chats/internal/domain"
	"github.com/Gelembjuk/ai-group-chats/internal/observability"
)

type State string

const (
	StateIdle         State = "idle"
	StateDeliberating State = "deliberating"
	StateEmitting     State = "emitting"
	StateSilent       State = "silent"
)

// Engine consumes exactly one inbound message per deliberation pass. It is
// single-flight: a second inbound message while a deliberation is pending is
// a protocol violation, never queued.
type Engine struct {
	deliberator domain.Deliberator
	timeout     time.Duration

	mu       sync.Mutex
	state    State
	terminal State
}

// NewEngine wraps the reasoning capability. A non-zero timeout becomes the
// deadline on every deliberation; zero leaves cancellation entirely to the
// caller's context.
func NewEngine(deliberator domain.Deliberator, timeout time.Duration) *Engine {
	return &Engine{
		deliberator: deliberator,
		timeout:     timeout,
		state:       StateIdle,
	}
}

// Result is the outcome of one deliberation pass. Rationale is private
// reasoning for the observing operator; it never reaches the message store.
// Fallback is set when the outcome is Silent only because the reasoning
// capability failed or timed out.
type Result struct {
	Outcome   domain.DecisionOutcome
	Rationale string
	Fallback  bool
}

// Decide runs one full pass of the protocol. The deliberation step has no
// side effects; recording the outcome is the caller's job. A reasoning
// failure never escapes as an error: the engine resolves it to Silent and
// returns to Idle.
func (e *Engine) Decide(ctx context.Context, view domain.ContextView, instructions string, inbound domain.Message) (Result, error) {
	if err := e.transition(StateIdle, StateDeliberating); err != nil {
		return Result{}, err
	}

	log := observability.LoggerFromContext(ctx).With(
		"room_id", view.RoomID,
		"speaker", inbound.Speaker,
	)
	log.Info("deliberation started", "history_len", len(view.History))

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	delib, err := e.deliberator.Deliberate(ctx, view, instructions, inbound)
	if err != nil {
		// Fail-safe default: withholding speech beats surfacing a garbled
		// or absent reply as a hard failure.
		log.Warn("deliberation failed, staying silent",
			"error", errors.Join(domain.ErrReasoningUnavailable, err))
		e.settle(StateSilent)
		return Result{Outcome: domain.Silent(), Fallback: true}, nil
	}

	if delib.Outcome.DidSpeak {
		log.Info("deliberation concluded: speak")
		e.settle(StateEmitting)
	} else {
		log.Info("deliberation concluded: silent")
		e.settle(StateSilent)
	}

	return Result{Outcome: delib.Outcome, Rationale: delib.Rationale}, nil
}

// State returns the current protocol state. Outside of a Decide call this is
// always Idle: the terminal Emitting/Silent states resolve back to Idle
// before Decide returns.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// LastTerminal reports which terminal state the most recent pass settled
// through, or the zero value before the first pass.
func (e *Engine) LastTerminal() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.terminal
}

func (e *Engine) transition(from, to State) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != from {
		return domain.ErrEngineBusy
	}
	e.state = to
	return nil
}

func (e *Engine) settle(terminal State) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.terminal = terminal
	e.state = StateIdle
}
