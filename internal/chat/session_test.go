package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echo(ctx context.Context, message string) (string, error) {
	return "echo: " + message, nil
}

func TestSession_SendAppendsTurn(t *testing.T) {
	s := NewSession(echo, "Hello!", "Sorry")

	reply, err := s.Send(context.Background(), "  hi there ")
	require.NoError(t, err)
	assert.Equal(t, "echo: hi there", reply)

	turns := s.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, "", turns[0].User)
	assert.Equal(t, "Hello!", turns[0].Bot)
	assert.Equal(t, "hi there", turns[1].User)
	assert.Equal(t, TurnAnswered, turns[1].Status)

	messages := s.Messages()
	require.Len(t, messages, 3)
	assert.Equal(t, RoleAssistant, messages[0].Role)
	assert.Equal(t, RoleUser, messages[1].Role)
	assert.Equal(t, "echo: hi there", messages[2].Text)
}

func TestSession_EmptyMessage(t *testing.T) {
	s := NewSession(echo, "", "Sorry")
	_, err := s.Send(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Empty(t, s.Turns())
}

func TestSession_FailureFillsFallback(t *testing.T) {
	boom := errors.New("connection refused")
	s := NewSession(func(ctx context.Context, message string) (string, error) {
		return "", boom
	}, "Hello!", "Sorry, try again.")

	reply, err := s.Send(context.Background(), "hi")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "Sorry, try again.", reply)

	turns := s.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, "hi", turns[1].User)
	assert.Equal(t, "Sorry, try again.", turns[1].Bot)
	assert.Equal(t, TurnFailed, turns[1].Status)
	assert.False(t, s.Pending())
}

func TestSession_OneTurnInFlight(t *testing.T) {
	s := NewSession(echo, "", "Sorry")

	first, err := s.Reserve("first")
	require.NoError(t, err)
	assert.True(t, s.Pending())

	_, err = s.Reserve("second")
	assert.ErrorIs(t, err, ErrTurnInFlight)
	_, err = s.Send(context.Background(), "second")
	assert.ErrorIs(t, err, ErrTurnInFlight)

	// Pending turns show only the user side.
	assert.Len(t, s.Messages(), 1)

	require.True(t, s.Fill(first, "reply"))
	assert.False(t, s.Fill(first, "again"), "a ticket fills once")
	assert.False(t, s.Fail(first))

	_, err = s.Reserve("second")
	require.NoError(t, err)
}

func TestSession_ResetMakesTicketsStale(t *testing.T) {
	s := NewSession(echo, "Hello!", "Sorry")
	ticket, err := s.Reserve("question")
	require.NoError(t, err)

	s.Reset("Fresh start")
	assert.False(t, s.Fill(ticket, "late reply"))

	turns := s.Turns()
	require.Len(t, turns, 1)
	assert.Equal(t, "Fresh start", turns[0].Bot)

	assert.False(t, s.Fill(Ticket{}, "unknown"))
}

func TestSession_RepliesInRequestOrder(t *testing.T) {
	s := NewSession(echo, "", "Sorry")
	for _, msg := range []string{"a", "b", "c"} {
		_, err := s.Send(context.Background(), msg)
		require.NoError(t, err)
	}

	var users []string
	for _, turn := range s.Turns() {
		users = append(users, turn.User)
		assert.Equal(t, "echo: "+turn.User, turn.Bot)
	}
	assert.Equal(t, []string{"a", "b", "c"}, users)
}

func TestTurnStatus_String(t *testing.T) {
	assert.Equal(t, "pending", TurnPending.String())
	assert.Equal(t, "failed", TurnFailed.String())
}
