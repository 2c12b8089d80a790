package stubserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-counsellor/internal/api"
	"github.com/jonathan/career-counsellor/internal/types"
)

func newStubClient(t *testing.T, opts Options) (*Server, *api.Client) {
	t.Helper()
	stub := New(opts)
	server := httptest.NewServer(stub.Handler())
	t.Cleanup(server.Close)

	client, err := api.New(&api.Options{BaseURL: server.URL, Strict: true})
	require.NoError(t, err)
	return stub, client
}

func TestHealth(t *testing.T) {
	_, client := newStubClient(t, Options{})

	status, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Healthy())
	assert.Equal(t, "career_advisory", status.Data.Service)
}

func TestCORS_Preflight(t *testing.T) {
	stub := New(Options{})

	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	stub.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/chat", nil)
	req.Header.Set("Origin", "http://evil.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	stub.Handler().ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestAdvice_RoundTripsSamples(t *testing.T) {
	_, client := newStubClient(t, Options{})
	ctx := context.Background()

	for _, kind := range []types.UserType{types.UserTypeStudent, types.UserTypeProfessional} {
		t.Run(string(kind), func(t *testing.T) {
			profile, err := client.Sample(ctx, kind)
			require.NoError(t, err)
			require.NoError(t, profile.Validate())
			assert.Equal(t, kind, profile.Kind())

			advice, err := client.Advice(ctx, profile)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(advice, "# "))
		})
	}
}

func TestAdvice_FailureReported(t *testing.T) {
	_, client := newStubClient(t, Options{AdviceFailure: "model unavailable"})

	profile, err := client.StudentSample(context.Background())
	require.NoError(t, err)

	_, err = client.Advice(context.Background(), profile)
	require.Error(t, err)
	assert.True(t, api.IsAppError(err))
	assert.Equal(t, "model unavailable", err.Error())
}

func TestAdvice_FailsFirstRequestsOnly(t *testing.T) {
	_, client := newStubClient(t, Options{AdviceFailure: "model unavailable", AdviceFailures: 1})

	profile, err := client.StudentSample(context.Background())
	require.NoError(t, err)

	_, err = client.Advice(context.Background(), profile)
	require.Error(t, err)

	advice, err := client.Advice(context.Background(), profile)
	require.NoError(t, err)
	assert.Contains(t, advice, "Career Guidance Report")
}

func TestRecommendJobs_RankedAndBounded(t *testing.T) {
	_, client := newStubClient(t, Options{})

	matches, err := client.RecommendJobs(context.Background(), "python, sql, data analysis, statistics", 3)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, "Data Analyst", matches[0].JobTitle)
	for i, m := range matches {
		assert.GreaterOrEqual(t, m.MatchScore, 0.0)
		assert.LessOrEqual(t, m.MatchScore, 1.0)
		if i > 0 {
			assert.LessOrEqual(t, m.MatchScore, matches[i-1].MatchScore)
		}
	}
}

func TestJobDetails(t *testing.T) {
	_, client := newStubClient(t, Options{})

	details, err := client.JobDetails(context.Background(), "Data Analyst")
	require.NoError(t, err)
	assert.Contains(t, details.JobDescription, "Data Analyst")
	assert.Len(t, details.DayInLife, 5)
}

func TestAnalyzeSkills(t *testing.T) {
	_, client := newStubClient(t, Options{})
	ctx := context.Background()

	analysis, err := client.AnalyzeSkills(ctx, "Python, SQL", "python, Docker, Kubernetes")
	require.NoError(t, err)
	assert.Equal(t, []string{"python"}, analysis.ExistingSkills)
	assert.Equal(t, []string{"Docker", "Kubernetes"}, analysis.MissingSkills)
	assert.Equal(t, 0.33, analysis.ConfidenceScore)
	assert.Len(t, analysis.LearningPath, 2)

	reply, err := client.SkillChat(ctx, "Where do I start?", analysis)
	require.NoError(t, err)
	assert.Contains(t, reply, "Docker")

	_, err = client.SkillChat(ctx, "  ", nil)
	httpErr, ok := api.IsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Message cannot be empty", httpErr.Message)
}

func TestChat_HistoryCappedAndCleared(t *testing.T) {
	stub, client := newStubClient(t, Options{})
	ctx := context.Background()

	var last *types.ChatResponse
	for i := 0; i < maxChatHistory+5; i++ {
		resp, err := client.Chat(ctx, "how do I improve my resume")
		require.NoError(t, err)
		last = resp
	}
	assert.Len(t, last.History, maxChatHistory)

	require.NoError(t, client.ClearChatHistory(ctx))
	stub.mu.Lock()
	assert.Empty(t, stub.chatHistory)
	stub.mu.Unlock()

	_, err := client.Chat(ctx, "")
	httpErr, ok := api.IsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestReviewCV(t *testing.T) {
	_, client := newStubClient(t, Options{})
	ctx := context.Background()

	review, err := client.ReviewCV(ctx, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "sample.pdf", review.Filename)
	assert.Equal(t, len(sampleResumeText), review.TextLength)
	assert.Contains(t, review.Review, "CV Review")

	_, err = client.ReviewCV(ctx, "notes.pdf", strings.NewReader("not a pdf"))
	httpErr, ok := api.IsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Contains(t, httpErr.Message, "Unexpected error")
}

func TestInterview_Flow(t *testing.T) {
	_, client := newStubClient(t, Options{})
	ctx := context.Background()

	start, err := client.StartInterview(ctx, types.InterviewStartRequest{Role: "Data Analyst", NumQuestions: 2, Difficulty: "easy"})
	require.NoError(t, err)
	assert.NotEmpty(t, start.SessionID)
	assert.Contains(t, start.Message, "Question 1 of 2")

	reply, err := client.InterviewChat(ctx, start.SessionID, "I like data.")
	require.NoError(t, err)
	assert.Contains(t, reply, "Question 2 of 2")

	reply, err = client.InterviewChat(ctx, start.SessionID, "Coding.")
	require.NoError(t, err)
	assert.Equal(t, closingMessage, reply)

	history, err := client.InterviewHistory(ctx, start.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "Data Analyst", history.Role)
	assert.Len(t, history.History, 5)

	require.NoError(t, client.DeleteInterviewSession(ctx, start.SessionID))

	_, err = client.InterviewHistory(ctx, start.SessionID)
	httpErr, ok := api.IsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Session not found", httpErr.Message)
}

func TestValidationErrorsAre422(t *testing.T) {
	_, client := newStubClient(t, Options{})

	var out types.AdviceResponse
	err := client.Request(context.Background(), http.MethodPost, api.PathStudentAdvice,
		map[string]any{"academic_performance": []int{1}}, &out)
	httpErr, ok := api.IsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Status)
	assert.NotEmpty(t, httpErr.Message)
}
