package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-counsellor/internal/types"
)

type fakeBackend struct {
	chatErr    error
	clearErr   error
	cleared    int
	skillCtx   *types.SkillAnalysis
	sessionErr error
	started    []types.InterviewStartRequest
	answers    []string
	deleted    []string
}

func (f *fakeBackend) Chat(ctx context.Context, message string) (*types.ChatResponse, error) {
	if f.chatErr != nil {
		return nil, f.chatErr
	}
	return &types.ChatResponse{Response: "Consider " + message}, nil
}

func (f *fakeBackend) ClearChatHistory(ctx context.Context) error {
	f.cleared++
	return f.clearErr
}

func (f *fakeBackend) BaseURL() string { return "http://backend.test" }

func (f *fakeBackend) SkillChat(ctx context.Context, message string, analysis *types.SkillAnalysis) (string, error) {
	f.skillCtx = analysis
	return "Focus on " + analysis.MissingSkills[0], nil
}

func (f *fakeBackend) StartInterview(ctx context.Context, req types.InterviewStartRequest) (*types.InterviewStartResponse, error) {
	if f.sessionErr != nil {
		return nil, f.sessionErr
	}
	f.started = append(f.started, req)
	return &types.InterviewStartResponse{SessionID: "sess-1", Message: "Tell me about yourself."}, nil
}

func (f *fakeBackend) InterviewChat(ctx context.Context, sessionID, message string) (string, error) {
	f.answers = append(f.answers, sessionID+":"+message)
	return "Next question", nil
}

func (f *fakeBackend) InterviewHistory(ctx context.Context, sessionID string) (*types.InterviewHistory, error) {
	return &types.InterviewHistory{SessionID: sessionID}, nil
}

func (f *fakeBackend) DeleteInterviewSession(ctx context.Context, sessionID string) error {
	f.deleted = append(f.deleted, sessionID)
	return nil
}

func TestCareerChat_Greeting(t *testing.T) {
	c := NewCareerChat(&fakeBackend{})
	turns := c.Turns()
	require.Len(t, turns, 1)
	assert.Contains(t, turns[0].Bot, "AI career guidance assistant")
}

func TestCareerChat_FallbackNamesBackend(t *testing.T) {
	c := NewCareerChat(&fakeBackend{chatErr: errors.New("down")})
	reply, err := c.Send(context.Background(), "jobs?")
	require.Error(t, err)
	assert.Contains(t, reply, "running on http://backend.test and try again")
}

func TestCareerChat_Clear(t *testing.T) {
	backend := &fakeBackend{}
	c := NewCareerChat(backend)
	_, err := c.Send(context.Background(), "data science")
	require.NoError(t, err)

	require.NoError(t, c.Clear(context.Background()))
	assert.Equal(t, 1, backend.cleared)
	turns := c.Turns()
	require.Len(t, turns, 1)
	assert.Equal(t, "Chat history cleared! How can I help you with your career today?", turns[0].Bot)
}

func TestCareerChat_ClearFailureKeepsTranscript(t *testing.T) {
	backend := &fakeBackend{clearErr: errors.New("down")}
	c := NewCareerChat(backend)
	_, err := c.Send(context.Background(), "data science")
	require.NoError(t, err)

	assert.Error(t, c.Clear(context.Background()))
	assert.Len(t, c.Turns(), 2)
}

func TestSkillChat_CarriesAnalysis(t *testing.T) {
	backend := &fakeBackend{}
	analysis := &types.SkillAnalysis{MissingSkills: []string{"Kubernetes"}}
	s := NewSkillChat(backend, analysis)

	assert.Contains(t, s.Turns()[0].Bot, "I've analyzed your skills")

	reply, err := s.Send(context.Background(), "what next?")
	require.NoError(t, err)
	assert.Equal(t, "Focus on Kubernetes", reply)
	require.NotNil(t, backend.skillCtx)
	assert.Equal(t, []string{"Kubernetes"}, backend.skillCtx.MissingSkills)
}
