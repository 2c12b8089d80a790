package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-counsellor/internal/types"
)

func studentProfile() types.Profile {
	return types.NewStudentProfile(types.StudentProfile{
		ClassLevel: "Undergraduate",
		Interests:  []string{"coding"},
	})
}

func TestNew_Empty(t *testing.T) {
	s := New()
	snap := s.Snapshot()
	assert.True(t, snap.Profile.IsZero())
	assert.Empty(t, snap.AIAdvice)
	assert.Empty(t, snap.UserType)
	assert.NotNil(t, snap.JobMatches)
	assert.Empty(t, snap.JobMatches)
}

func TestUpdateProfile_SetsUserType(t *testing.T) {
	s := New()
	s.UpdateProfile(studentProfile())
	assert.Equal(t, types.UserTypeStudent, s.UserType())

	s.UpdateProfile(types.NewProfessionalProfile(types.ProfessionalProfile{CareerGoals: "CTO"}))
	assert.Equal(t, types.UserTypeProfessional, s.UserType())
	_, ok := s.Profile().Student()
	assert.False(t, ok)
}

func TestClear_KeepsJobMatches(t *testing.T) {
	s := New()
	s.UpdateProfile(studentProfile())
	s.UpdateAIAdvice("# Advice")
	s.UpdateJobMatches([]types.JobMatch{{JobTitle: "Analyst", MatchScore: 0.5}})

	s.Clear()

	assert.True(t, s.Profile().IsZero())
	assert.Empty(t, s.AIAdvice())
	assert.Empty(t, s.UserType())
	assert.Len(t, s.JobMatches(), 1)

	s.ClearAll()
	assert.Empty(t, s.JobMatches())
}

func TestUpdateJobMatches_NilBecomesEmpty(t *testing.T) {
	s := New()
	s.UpdateJobMatches(nil)
	assert.NotNil(t, s.JobMatches())
	assert.Empty(t, s.JobMatches())
}

func TestReads_ReturnCopies(t *testing.T) {
	s := New()
	s.UpdateJobMatches([]types.JobMatch{{JobTitle: "Analyst"}})

	matches := s.JobMatches()
	matches[0].JobTitle = "changed"
	assert.Equal(t, "Analyst", s.JobMatches()[0].JobTitle)
}

func TestSubscribe(t *testing.T) {
	s := New()
	var seen []string
	unsubscribe := s.Subscribe(func(snap Snapshot) {
		seen = append(seen, snap.AIAdvice)
	})

	s.UpdateAIAdvice("one")
	s.UpdateAIAdvice("two")
	unsubscribe()
	unsubscribe()
	s.UpdateAIAdvice("three")

	assert.Equal(t, []string{"one", "two"}, seen)
}

func TestTickets_LatestIssuedWins(t *testing.T) {
	s := New()

	first := s.BeginAdvice()
	second := s.BeginAdvice()

	// The later request resolves first; the earlier one must not overwrite it.
	assert.True(t, s.CommitAdvice(second, "new"))
	assert.False(t, s.CommitAdvice(first, "old"))
	assert.Equal(t, "new", s.AIAdvice())

	m1 := s.BeginJobMatches()
	m2 := s.BeginJobMatches()
	assert.False(t, s.CommitJobMatches(m1, []types.JobMatch{{JobTitle: "old"}}))
	assert.True(t, s.CommitJobMatches(m2, []types.JobMatch{{JobTitle: "new"}}))
	assert.Equal(t, "new", s.JobMatches()[0].JobTitle)
}

func TestClear_InvalidatesAdviceTickets(t *testing.T) {
	s := New()
	ticket := s.BeginAdvice()
	s.Clear()
	assert.False(t, s.CommitAdvice(ticket, "late"))
	assert.Empty(t, s.AIAdvice())
}

func TestConcurrentUse(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			ticket := s.BeginAdvice()
			s.CommitAdvice(ticket, "advice")
		}()
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
		}()
	}
	wg.Wait()

	latest := s.BeginAdvice()
	require.True(t, s.CommitAdvice(latest, "final"))
	assert.Equal(t, "final", s.AIAdvice())
}

func TestCommitProfileAdvice_SingleNotification(t *testing.T) {
	s := New()
	var snaps []Snapshot
	defer s.Subscribe(func(snap Snapshot) { snaps = append(snaps, snap) })()

	ticket := s.BeginAdvice()
	require.True(t, s.CommitProfileAdvice(ticket, studentProfile(), "# Advice"))

	require.Len(t, snaps, 1)
	assert.Equal(t, types.UserTypeStudent, snaps[0].UserType)
	assert.Equal(t, "# Advice", snaps[0].AIAdvice)

	stale := ticket
	s.BeginAdvice()
	assert.False(t, s.CommitProfileAdvice(stale, types.Profile{}, "old"))
	assert.Len(t, snaps, 1)
}

func TestSubscribe_OverlappingNotificationsEndOnLatest(t *testing.T) {
	s := New()
	entered := make(chan struct{})
	release := make(chan struct{})

	var mu sync.Mutex
	var seen []string
	s.Subscribe(func(snap Snapshot) {
		if snap.AIAdvice == "A" {
			close(entered)
			<-release
		}
		mu.Lock()
		seen = append(seen, snap.AIAdvice)
		mu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.UpdateAIAdvice("A")
	}()
	<-entered

	// B lands while A is still being delivered.
	s.UpdateAIAdvice("B")
	close(release)
	<-done

	assert.Equal(t, "B", s.AIAdvice())
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"A", "B"}, seen)
}

func TestSubscribe_RegistrationOrder(t *testing.T) {
	s := New()
	var order []int
	for i := 0; i < 5; i++ {
		s.Subscribe(func(Snapshot) { order = append(order, i) })
	}

	s.UpdateAIAdvice("x")
	s.UpdateAIAdvice("y")

	assert.Equal(t, []int{0, 1, 2, 3, 4, 0, 1, 2, 3, 4}, order)
}

func TestSubscribe_VersionIncreases(t *testing.T) {
	s := New()
	var versions []uint64
	s.Subscribe(func(snap Snapshot) {
		versions = append(versions, snap.Version)
		if snap.AIAdvice == "first" {
			s.UpdateAIAdvice("from callback")
		}
	})

	s.UpdateAIAdvice("first")

	assert.Equal(t, []uint64{1, 2}, versions)
	assert.Equal(t, "from callback", s.AIAdvice())
	assert.Equal(t, uint64(2), s.Snapshot().Version)
}
