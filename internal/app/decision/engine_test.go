package decision_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gelembjuk/ai-group-chats/internal/adapters/reason"
	"github.com/Gelembjuk/ai-group-chats/internal/app/decision"
	"github.com/Gelembjuk/ai-group-chats/internal/domain"
)

func view() domain.ContextView {
	return domain.ContextView{
		RoomID:       "room-1",
		Participants: []domain.Person{"Jack"},
	}
}

func inbound(text string) domain.Message {
	return domain.Message{
		RoomID:       "room-1",
		Speaker:      "Jack",
		Kind:         domain.KindUtterance,
		Text:         text,
		Participants: []domain.Person{"Jack"},
	}
}

func TestDecideSpoken(t *testing.T) {
	engine := decision.NewEngine(reason.NewScriptedDeliberator(reason.Rule{
		Respond:   "hello Jack",
		Rationale: "greeting back is harmless",
	}), 0)

	result, err := engine.Decide(context.Background(), view(), "", inbound("hi"))
	require.NoError(t, err)

	assert.True(t, result.Outcome.DidSpeak)
	assert.Equal(t, "hello Jack", result.Outcome.Text)
	assert.Equal(t, "greeting back is harmless", result.Rationale)
	assert.False(t, result.Fallback)
	assert.Equal(t, decision.StateIdle, engine.State())
	assert.Equal(t, decision.StateEmitting, engine.LastTerminal())
}

func TestDecideSilent(t *testing.T) {
	engine := decision.NewEngine(reason.NewScriptedDeliberator(), 0)

	result, err := engine.Decide(context.Background(), view(), "", inbound("hi"))
	require.NoError(t, err)

	assert.False(t, result.Outcome.DidSpeak)
	assert.False(t, result.Fallback)
	assert.Equal(t, decision.StateIdle, engine.State())
	assert.Equal(t, decision.StateSilent, engine.LastTerminal())
}

func TestDeliberatorFailureResolvesToSilent(t *testing.T) {
	engine := decision.NewEngine(reason.UnavailableDeliberator{
		Err: errors.New("model endpoint down"),
	}, 0)

	for i := 0; i < 3; i++ {
		result, err := engine.Decide(context.Background(), view(), "", inbound("hi"))
		require.NoError(t, err, "reasoning failures must never escape Decide")

		assert.False(t, result.Outcome.DidSpeak)
		assert.True(t, result.Fallback)
		assert.Equal(t, decision.StateIdle, engine.State(), "engine must not stay stuck in Deliberating")
	}
}

func TestCancelledContextResolvesToSilent(t *testing.T) {
	engine := decision.NewEngine(reason.NewScriptedDeliberator(reason.Rule{Respond: "hi"}), 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := engine.Decide(ctx, view(), "", inbound("hi"))
	require.NoError(t, err)
	assert.False(t, result.Outcome.DidSpeak)
	assert.True(t, result.Fallback)
}

func TestTimeoutResolvesToSilent(t *testing.T) {
	slow := deliberatorFunc(func(ctx context.Context, _ domain.ContextView, _ string, _ domain.Message) (domain.Deliberation, error) {
		select {
		case <-ctx.Done():
			return domain.Deliberation{}, ctx.Err()
		case <-time.After(5 * time.Second):
			return domain.Deliberation{Outcome: domain.Spoken("too late")}, nil
		}
	})

	engine := decision.NewEngine(slow, 10*time.Millisecond)

	start := time.Now()
	result, err := engine.Decide(context.Background(), view(), "", inbound("hi"))
	require.NoError(t, err)

	assert.False(t, result.Outcome.DidSpeak)
	assert.True(t, result.Fallback)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRejectsReentrantDecide(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	blocking := deliberatorFunc(func(ctx context.Context, _ domain.ContextView, _ string, _ domain.Message) (domain.Deliberation, error) {
		close(started)
		<-release
		return domain.Deliberation{Outcome: domain.Silent()}, nil
	})

	engine := decision.NewEngine(blocking, 0)

	done := make(chan error, 1)
	go func() {
		_, err := engine.Decide(context.Background(), view(), "", inbound("first"))
		done <- err
	}()

	<-started
	assert.Equal(t, decision.StateDeliberating, engine.State())

	_, err := engine.Decide(context.Background(), view(), "", inbound("second"))
	assert.ErrorIs(t, err, domain.ErrEngineBusy)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, decision.StateIdle, engine.State())
}

type deliberatorFunc func(context.Context, domain.ContextView, string, domain.Message) (domain.Deliberation, error)

func (f deliberatorFunc) Deliberate(ctx context.Context, v domain.ContextView, instr string, m domain.Message) (domain.Deliberation, error) {
	return f(ctx, v, instr, m)
}
