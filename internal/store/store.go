// Package store holds the application-wide read model: the submitted profile,
// its AI advice, the user type and job matches. Writers replace values
// wholesale; readers get copies and may subscribe to changes.
package store

import (
	"slices"
	"sync"

	"github.com/jonathan/career-counsellor/internal/types"
)

// Snapshot is a point-in-time copy of the store's contents. Version increases
// by one with every applied mutation.
type Snapshot struct {
	Version    uint64
	Profile    types.Profile
	AIAdvice   string
	UserType   types.UserType
	JobMatches []types.JobMatch
}

// Ticket identifies one issued request whose result will be committed later.
// Only the most recently issued ticket of a kind may commit.
type Ticket uint64

// Store is safe for concurrent use. The zero value is not usable; call New.
type Store struct {
	mu         sync.RWMutex
	snap       Snapshot
	adviceSeq  Ticket
	matchesSeq Ticket

	// notifyMu guards everything below. It is never held while a callback runs.
	notifyMu    sync.Mutex
	subscribers []subscriber
	nextSubID   int
	pending     Snapshot
	delivered   uint64
	delivering  bool
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

// New returns an empty store.
func New() *Store {
	return &Store{
		snap: Snapshot{JobMatches: []types.JobMatch{}},
	}
}

// UpdateProfile replaces the profile and sets the user type to its kind.
func (s *Store) UpdateProfile(profile types.Profile) {
	s.mutate(func(snap *Snapshot) {
		snap.Profile = profile.Clone()
		snap.UserType = profile.Kind()
	})
}

// UpdateAIAdvice replaces the advice text.
func (s *Store) UpdateAIAdvice(text string) {
	s.mutate(func(snap *Snapshot) {
		snap.AIAdvice = text
	})
}

// UpdateJobMatches replaces the job matches. A nil list stores an empty one.
func (s *Store) UpdateJobMatches(matches []types.JobMatch) {
	s.mutate(func(snap *Snapshot) {
		snap.JobMatches = cloneMatches(matches)
	})
}

// Clear resets profile, advice and user type. Job matches are kept.
// Outstanding advice tickets are invalidated.
func (s *Store) Clear() {
	s.mutate(func(snap *Snapshot) {
		s.adviceSeq++
		snap.Profile = types.Profile{}
		snap.AIAdvice = ""
		snap.UserType = ""
	})
}

// ClearAll resets everything, job matches included, and invalidates all tickets.
func (s *Store) ClearAll() {
	s.mutate(func(snap *Snapshot) {
		s.adviceSeq++
		s.matchesSeq++
		*snap = Snapshot{Version: snap.Version, JobMatches: []types.JobMatch{}}
	})
}

// BeginAdvice issues a ticket for an advice request about to be sent.
func (s *Store) BeginAdvice() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adviceSeq++
	return s.adviceSeq
}

// CommitAdvice stores text if t is still the latest advice ticket.
// It reports whether the write was applied.
func (s *Store) CommitAdvice(t Ticket, text string) bool {
	return s.mutateIf(func() bool { return t == s.adviceSeq }, func(snap *Snapshot) {
		snap.AIAdvice = text
	})
}

// CommitProfileAdvice stores profile and its advice together if t is still the
// latest advice ticket.
func (s *Store) CommitProfileAdvice(t Ticket, profile types.Profile, text string) bool {
	return s.mutateIf(func() bool { return t == s.adviceSeq }, func(snap *Snapshot) {
		snap.Profile = profile.Clone()
		snap.UserType = profile.Kind()
		snap.AIAdvice = text
	})
}

// BeginJobMatches issues a ticket for a job-match request about to be sent.
func (s *Store) BeginJobMatches() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matchesSeq++
	return s.matchesSeq
}

// CommitJobMatches stores matches if t is still the latest job-match ticket.
func (s *Store) CommitJobMatches(t Ticket, matches []types.JobMatch) bool {
	return s.mutateIf(func() bool { return t == s.matchesSeq }, func(snap *Snapshot) {
		snap.JobMatches = cloneMatches(matches)
	})
}

// Snapshot returns a copy of the current contents.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.clone()
}

// Profile returns the stored profile; it is zero when none was submitted.
func (s *Store) Profile() types.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Profile.Clone()
}

// AIAdvice returns the stored advice text.
func (s *Store) AIAdvice() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.AIAdvice
}

// UserType returns the stored user type.
func (s *Store) UserType() types.UserType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.UserType
}

// JobMatches returns a copy of the stored job matches.
func (s *Store) JobMatches() []types.JobMatch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneMatches(s.snap.JobMatches)
}

// Subscribe registers fn to be called with a fresh snapshot after every mutation.
// Subscribers are called in registration order, one notification at a time, and
// never see a snapshot older than one they were already given. When mutations
// overlap a notification, only the newest pending snapshot is delivered next.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.notifyMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})
	s.notifyMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.notifyMu.Lock()
			s.subscribers = slices.DeleteFunc(s.subscribers, func(sub subscriber) bool {
				return sub.id == id
			})
			s.notifyMu.Unlock()
		})
	}
}

func (s *Store) mutate(fn func(*Snapshot)) {
	s.mutateIf(nil, fn)
}

// mutateIf applies fn when cond (evaluated under the lock) holds, then notifies subscribers.
func (s *Store) mutateIf(cond func() bool, fn func(*Snapshot)) bool {
	s.mu.Lock()
	if cond != nil && !cond() {
		s.mu.Unlock()
		return false
	}
	fn(&s.snap)
	s.snap.Version++
	snap := s.snap.clone()
	s.mu.Unlock()

	s.publish(snap)
	return true
}

// publish queues snap and, unless another goroutine is already delivering,
// delivers queued snapshots until none newer than the last delivered remain.
// A mutation made from inside a callback is delivered by the same loop.
func (s *Store) publish(snap Snapshot) {
	s.notifyMu.Lock()
	if snap.Version > s.pending.Version {
		s.pending = snap
	}
	if s.delivering {
		s.notifyMu.Unlock()
		return
	}
	s.delivering = true
	for s.pending.Version > s.delivered {
		next := s.pending
		s.delivered = next.Version
		subs := slices.Clone(s.subscribers)
		s.notifyMu.Unlock()

		for _, sub := range subs {
			sub.fn(next.clone())
		}

		s.notifyMu.Lock()
	}
	s.delivering = false
	s.notifyMu.Unlock()
}

func (snap Snapshot) clone() Snapshot {
	return Snapshot{
		Version:    snap.Version,
		Profile:    snap.Profile.Clone(),
		AIAdvice:   snap.AIAdvice,
		UserType:   snap.UserType,
		JobMatches: cloneMatches(snap.JobMatches),
	}
}

func cloneMatches(matches []types.JobMatch) []types.JobMatch {
	if matches == nil {
		return []types.JobMatch{}
	}
	return slices.Clone(matches)
}
