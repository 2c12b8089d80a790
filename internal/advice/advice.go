// Package advice runs the post-submission advice request: one request per
// submitted profile, with a visible loading/ready/failed state and manual retry.
package advice

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/jonathan/career-counsellor/internal/api"
	"github.com/jonathan/career-counsellor/internal/prompts"
	"github.com/jonathan/career-counsellor/internal/store"
	"github.com/jonathan/career-counsellor/internal/types"
)

// Sentinel errors.
var (
	ErrInFlight  = errors.New("an advice request is already in progress")
	ErrNoProfile = errors.New("no profile has been submitted")
)

// State is the visible phase of the flow.
type State int

// Flow states.
const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Fetcher obtains advice for a profile. *api.Client implements it.
type Fetcher interface {
	Advice(ctx context.Context, profile types.Profile) (string, error)
}

// Status is a snapshot of the flow.
type Status struct {
	State   State
	Profile types.Profile
	Advice  string
	Error   string
}

// Flow is safe for concurrent use.
type Flow struct {
	fetcher Fetcher
	store   *store.Store

	mu      sync.Mutex
	state   State
	profile types.Profile
	advice  string
	errMsg  string
}

// New creates a flow that writes successful results to st.
func New(fetcher Fetcher, st *store.Store) *Flow {
	return &Flow{fetcher: fetcher, store: st}
}

// Start requests advice for profile. On success the profile and advice are
// written to the store; on failure the store is left untouched.
func (f *Flow) Start(ctx context.Context, profile types.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	return f.run(ctx, profile.Clone())
}

// Retry re-issues the last request with the identical profile.
func (f *Flow) Retry(ctx context.Context) error {
	f.mu.Lock()
	profile := f.profile
	f.mu.Unlock()

	if profile.IsZero() {
		return ErrNoProfile
	}
	return f.run(ctx, profile)
}

// Status returns the current state.
func (f *Flow) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Status{
		State:   f.state,
		Profile: f.profile.Clone(),
		Advice:  f.advice,
		Error:   f.errMsg,
	}
}

func (f *Flow) run(ctx context.Context, profile types.Profile) error {
	f.mu.Lock()
	if f.state == StateLoading {
		f.mu.Unlock()
		return ErrInFlight
	}
	f.state = StateLoading
	f.profile = profile
	f.advice = ""
	f.errMsg = ""
	f.mu.Unlock()

	ticket := f.store.BeginAdvice()
	log.Printf("[advice] requesting %s advice", profile.Kind())
	text, err := f.fetcher.Advice(ctx, profile)

	f.mu.Lock()
	if err != nil {
		f.state = StateFailed
		f.errMsg = displayMessage(err)
		f.mu.Unlock()
		log.Printf("[advice] request failed: %v", err)
		return err
	}
	f.state = StateReady
	f.advice = text
	f.mu.Unlock()

	// Subscribers may read the flow, so the store is written outside f.mu.
	if !f.store.CommitProfileAdvice(ticket, profile, text) {
		log.Printf("[advice] discarded result of superseded request")
	}
	return nil
}

// displayMessage mirrors how the advice page reports failures: an application
// failure shows the backend's message, anything thrown is a connection failure.
func displayMessage(err error) string {
	if api.IsAppError(err) {
		return api.UserMessage(err)
	}
	if httpErr, ok := api.IsHTTPError(err); ok {
		return prompts.Format(prompts.MustGet("chat.json", "advice.connect-failed"), map[string]string{
			"Error": httpErr.Error(),
		})
	}
	return api.UserMessage(err)
}
