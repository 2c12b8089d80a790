package advice

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-counsellor/internal/api"
	"github.com/jonathan/career-counsellor/internal/store"
	"github.com/jonathan/career-counsellor/internal/types"
)

type fakeFetcher struct {
	mu      sync.Mutex
	calls   []types.Profile
	replies []reply
	block   chan struct{}
}

type reply struct {
	text string
	err  error
}

func (f *fakeFetcher) Advice(ctx context.Context, profile types.Profile) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, profile)
	r := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	return r.text, r.err
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func student() types.Profile {
	return types.NewStudentProfile(types.StudentProfile{ClassLevel: "12th Grade", AcademicPerformance: 80})
}

func TestStart_Success(t *testing.T) {
	st := store.New()
	fetcher := &fakeFetcher{replies: []reply{{text: "# Your plan"}}}
	flow := New(fetcher, st)

	require.NoError(t, flow.Start(context.Background(), student()))

	status := flow.Status()
	assert.Equal(t, StateReady, status.State)
	assert.Equal(t, "# Your plan", status.Advice)
	assert.Empty(t, status.Error)

	assert.Equal(t, "# Your plan", st.AIAdvice())
	assert.Equal(t, types.UserTypeStudent, st.UserType())
	assert.Equal(t, 1, fetcher.callCount())
}

func TestStart_FailureLeavesStoreUntouched(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"application failure", &api.AppError{Message: "Failed to generate advice"}, "Failed to generate advice"},
		{"http failure", &api.HTTPError{Status: http.StatusInternalServerError, Message: "Internal error"}, "Failed to connect to AI service: Internal error"},
		{"network failure", &api.NetworkError{Cause: errors.New("connection refused")}, "Failed to connect to AI service: connection refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := store.New()
			st.UpdateAIAdvice("previous")
			flow := New(&fakeFetcher{replies: []reply{{err: tt.err}}}, st)

			err := flow.Start(context.Background(), student())
			require.Error(t, err)

			status := flow.Status()
			assert.Equal(t, StateFailed, status.State)
			assert.Equal(t, tt.want, status.Error)
			assert.Equal(t, "previous", st.AIAdvice())
			assert.True(t, st.Profile().IsZero())
		})
	}
}

func TestRetry_ReissuesIdenticalRequest(t *testing.T) {
	st := store.New()
	fetcher := &fakeFetcher{replies: []reply{
		{err: &api.NetworkError{Cause: errors.New("down")}},
		{text: "advice"},
	}}
	flow := New(fetcher, st)

	assert.ErrorIs(t, flow.Retry(context.Background()), ErrNoProfile)

	require.Error(t, flow.Start(context.Background(), student()))
	require.NoError(t, flow.Retry(context.Background()))

	require.Equal(t, 2, fetcher.callCount())
	assert.Equal(t, fetcher.calls[0], fetcher.calls[1])
	assert.Equal(t, StateReady, flow.Status().State)
	assert.Equal(t, "advice", st.AIAdvice())
}

func TestStart_RejectsReentry(t *testing.T) {
	fetcher := &fakeFetcher{replies: []reply{{text: "advice"}}, block: make(chan struct{})}
	flow := New(fetcher, store.New())

	done := make(chan error, 1)
	go func() { done <- flow.Start(context.Background(), student()) }()

	require.Eventually(t, func() bool { return fetcher.callCount() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, StateLoading, flow.Status().State)
	assert.ErrorIs(t, flow.Start(context.Background(), student()), ErrInFlight)

	close(fetcher.block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, fetcher.callCount())
}

func TestStart_RejectsInvalidProfile(t *testing.T) {
	fetcher := &fakeFetcher{replies: []reply{{text: "advice"}}}
	flow := New(fetcher, store.New())

	assert.ErrorIs(t, flow.Start(context.Background(), types.Profile{}), types.ErrProfileVariant)
	assert.Equal(t, 0, fetcher.callCount())
	assert.Equal(t, StateIdle, flow.Status().State)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "unknown", State(42).String())
}
