package chat

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/jonathan/career-counsellor/internal/prompts"
	"github.com/jonathan/career-counsellor/internal/types"
)

// ErrNoSession is returned when an interview operation needs a started session.
var ErrNoSession = errors.New("no interview session in progress")

// ErrStarting is returned while a session start is in flight.
var ErrStarting = errors.New("interview session is starting")

// InterviewBackend is the part of the API client used by mock interviews.
type InterviewBackend interface {
	StartInterview(ctx context.Context, req types.InterviewStartRequest) (*types.InterviewStartResponse, error)
	InterviewChat(ctx context.Context, sessionID, message string) (string, error)
	InterviewHistory(ctx context.Context, sessionID string) (*types.InterviewHistory, error)
	DeleteInterviewSession(ctx context.Context, sessionID string) error
}

// Interview is a mock interview: a chat session bound to a backend session id.
type Interview struct {
	backend InterviewBackend

	mu        sync.Mutex
	starting  bool
	sessionID string
	role      string
	session   *Session
}

// NewInterview returns an interview with no session.
func NewInterview(backend InterviewBackend) *Interview {
	return &Interview{backend: backend}
}

// Start opens a new backend session, discarding any local one.
// The opening question becomes the first turn.
func (iv *Interview) Start(ctx context.Context, req types.InterviewStartRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	iv.mu.Lock()
	if iv.starting {
		iv.mu.Unlock()
		return "", ErrStarting
	}
	iv.starting = true
	iv.sessionID, iv.role, iv.session = "", "", nil
	iv.mu.Unlock()

	resp, err := iv.backend.StartInterview(ctx, req)

	iv.mu.Lock()
	defer iv.mu.Unlock()
	iv.starting = false
	if err != nil {
		log.Printf("[chat] failed to start interview: %v", err)
		return "", err
	}

	sessionID := resp.SessionID
	exchange := func(ctx context.Context, message string) (string, error) {
		return iv.backend.InterviewChat(ctx, sessionID, message)
	}
	iv.sessionID = sessionID
	iv.role = req.Role
	iv.session = NewSession(exchange, resp.Message, prompts.MustGet(chatFile, "interview.fallback"))
	log.Printf("[chat] interview session %s started for %q", sessionID, req.Role)
	return resp.Message, nil
}

// Send answers the current question and returns the interviewer's reply.
func (iv *Interview) Send(ctx context.Context, answer string) (string, error) {
	session, _, err := iv.current()
	if err != nil {
		return "", err
	}
	return session.Send(ctx, answer)
}

// History fetches the backend's record of the current session.
func (iv *Interview) History(ctx context.Context) (*types.InterviewHistory, error) {
	_, id, err := iv.current()
	if err != nil {
		return nil, err
	}
	return iv.backend.InterviewHistory(ctx, id)
}

// End discards the session id and transcript locally. The backend session is
// left alone; use Terminate to delete it as well.
func (iv *Interview) End() {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	iv.sessionID, iv.role, iv.session = "", "", nil
}

// Terminate deletes the backend session, then ends it locally.
func (iv *Interview) Terminate(ctx context.Context) error {
	_, id, err := iv.current()
	if err != nil {
		return err
	}
	if err := iv.backend.DeleteInterviewSession(ctx, id); err != nil {
		log.Printf("[chat] failed to delete interview session %s: %v", id, err)
		return err
	}
	iv.End()
	return nil
}

// SessionID returns the active session id, or "" when none.
func (iv *Interview) SessionID() string {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	return iv.sessionID
}

// Role returns the role of the active session.
func (iv *Interview) Role() string {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	return iv.role
}

// Messages returns the local transcript, or nil when no session is active.
func (iv *Interview) Messages() []Message {
	session, _, err := iv.current()
	if err != nil {
		return nil
	}
	return session.Messages()
}

func (iv *Interview) current() (*Session, string, error) {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	if iv.starting {
		return nil, "", ErrStarting
	}
	if iv.session == nil {
		return nil, "", ErrNoSession
	}
	return iv.session, iv.sessionID, nil
}
