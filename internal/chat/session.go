// Package chat implements chat transcripts driven by request/response exchanges
// with the backend. Each user message reserves a turn whose reply is filled in
// when the exchange completes; at most one turn is pending at a time, so replies
// always appear in request order.
package chat

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors.
var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrTurnInFlight = errors.New("previous message is still awaiting a reply")
)

// Role tags a flattened transcript message.
type Role string

// Message roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// TurnStatus is the lifecycle of a turn.
type TurnStatus int

// Turn statuses.
const (
	TurnPending TurnStatus = iota
	TurnAnswered
	TurnFailed
)

func (s TurnStatus) String() string {
	switch s {
	case TurnPending:
		return "pending"
	case TurnAnswered:
		return "answered"
	case TurnFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Ticket identifies a reserved turn.
type Ticket uuid.UUID

// Turn pairs a user message with its reply. Greetings have an empty User.
type Turn struct {
	ID     uuid.UUID
	User   string
	Bot    string
	Status TurnStatus
	At     time.Time
}

// Message is one side of a turn.
type Message struct {
	Role Role
	Text string
	At   time.Time
}

// Exchanger sends one message to the backend and returns the reply.
type Exchanger func(ctx context.Context, message string) (string, error)

// Session is safe for concurrent use.
type Session struct {
	exchange Exchanger
	fallback string
	now      func() time.Time

	mu    sync.Mutex
	turns []Turn
}

// NewSession creates a session seeded with greeting (skipped when empty).
// fallback replaces the reply of a failed exchange.
func NewSession(exchange Exchanger, greeting, fallback string) *Session {
	s := &Session{exchange: exchange, fallback: fallback, now: time.Now}
	s.Reset(greeting)
	return s
}

// Send reserves a turn for text, performs the exchange and fills the turn.
// On failure the turn carries the fallback text and the error is returned
// together with that text.
func (s *Session) Send(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	ticket, err := s.Reserve(text)
	if err != nil {
		return "", err
	}

	reply, err := s.exchange(ctx, text)
	if err != nil {
		log.Printf("[chat] exchange failed: %v", err)
		s.Fail(ticket)
		return s.fallback, err
	}

	s.Fill(ticket, reply)
	return reply, nil
}

// Reserve appends a pending turn for text and returns its ticket.
func (s *Session) Reserve(text string) (Ticket, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Ticket{}, ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pendingLocked() {
		return Ticket{}, ErrTurnInFlight
	}
	id := uuid.New()
	s.turns = append(s.turns, Turn{ID: id, User: text, Status: TurnPending, At: s.now()})
	return Ticket(id), nil
}

// Fill completes the turn reserved under t. It reports false when the ticket
// is unknown, already completed, or was dropped by Reset.
func (s *Session) Fill(t Ticket, reply string) bool {
	return s.complete(t, reply, TurnAnswered)
}

// Fail completes the turn reserved under t with the fallback text.
func (s *Session) Fail(t Ticket) bool {
	return s.complete(t, s.fallback, TurnFailed)
}

func (s *Session) complete(t Ticket, reply string, status TurnStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.turns) - 1; i >= 0; i-- {
		turn := &s.turns[i]
		if turn.ID != uuid.UUID(t) {
			continue
		}
		if turn.Status != TurnPending {
			return false
		}
		turn.Bot = reply
		turn.Status = status
		turn.At = s.now()
		return true
	}
	return false
}

// Reset replaces the transcript with a single greeting turn, or nothing when
// greeting is empty. Outstanding tickets become stale.
func (s *Session) Reset(greeting string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns = nil
	if greeting != "" {
		s.turns = append(s.turns, Turn{ID: uuid.New(), Bot: greeting, Status: TurnAnswered, At: s.now()})
	}
}

// Pending reports whether a turn is awaiting its reply.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingLocked()
}

// Turns returns a copy of the transcript.
func (s *Session) Turns() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Turn(nil), s.turns...)
}

// Messages flattens the transcript into role-tagged messages. A pending turn
// contributes only its user message.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	var messages []Message
	for _, turn := range s.turns {
		if turn.User != "" {
			messages = append(messages, Message{Role: RoleUser, Text: turn.User, At: turn.At})
		}
		if turn.Status != TurnPending && turn.Bot != "" {
			messages = append(messages, Message{Role: RoleAssistant, Text: turn.Bot, At: turn.At})
		}
	}
	return messages
}

// Fallback returns the text used for failed turns.
func (s *Session) Fallback() string {
	return s.fallback
}

func (s *Session) pendingLocked() bool {
	return len(s.turns) > 0 && s.turns[len(s.turns)-1].Status == TurnPending
}
