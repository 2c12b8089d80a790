package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/jonathan/career-counsellor/internal/types"
	contracts "github.com/jonathan/career-counsellor/schemas"
)

// Backend paths.
const (
	PathHealth                = "/health"
	PathStudentAdvice         = "/api/student/career-advice"
	PathProfessionalAdvice    = "/api/professional/career-advice"
	PathStudentSample         = "/api/student/career-advice/sample"
	PathProfessionalSample    = "/api/professional/career-advice/sample"
	PathRecommendJobs         = "/api/jobs/recommend"
	PathJobDetails            = "/api/job-details"
	PathReviewCV              = "/api/review-cv"
	PathInterviewStart        = "/api/interview/start"
	PathInterviewChat         = "/api/interview/chat"
	PathInterviewHistory      = "/api/interview/history/"
	PathInterviewSession      = "/api/interview/session/"
	PathAnalyzeSkills         = "/api/analyze-skills"
	PathSkillChat             = "/api/skill-chat"
	PathChat                  = "/chat"
	PathChatHistory           = "/chat/history"
	defaultAdviceFailure      = "Failed to generate advice"
	defaultRecommendationFail = "Failed to get recommendations"
)

// Health checks that the backend is up.
func (c *Client) Health(ctx context.Context) (*types.HealthStatus, error) {
	var status types.HealthStatus
	if err := c.requestJSON(ctx, http.MethodGet, PathHealth, nil, &status, ""); err != nil {
		return nil, err
	}
	return &status, nil
}

// StudentAdvice requests career advice for a student profile.
func (c *Client) StudentAdvice(ctx context.Context, profile types.StudentProfile) (string, error) {
	return c.advice(ctx, PathStudentAdvice, types.NewStudentProfile(profile))
}

// ProfessionalAdvice requests career advice for a working professional.
func (c *Client) ProfessionalAdvice(ctx context.Context, profile types.ProfessionalProfile) (string, error) {
	return c.advice(ctx, PathProfessionalAdvice, types.NewProfessionalProfile(profile))
}

// Advice dispatches to the advice endpoint matching the profile's kind.
func (c *Client) Advice(ctx context.Context, profile types.Profile) (string, error) {
	switch profile.Kind() {
	case types.UserTypeStudent:
		return c.advice(ctx, PathStudentAdvice, profile)
	case types.UserTypeProfessional:
		return c.advice(ctx, PathProfessionalAdvice, profile)
	default:
		return "", types.ErrProfileVariant
	}
}

func (c *Client) advice(ctx context.Context, path string, profile types.Profile) (string, error) {
	body, err := profile.Body()
	if err != nil {
		return "", err
	}

	var resp types.AdviceResponse
	if err := c.requestJSON(ctx, http.MethodPost, path, body, &resp, contracts.AdviceResponse); err != nil {
		return "", err
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = defaultAdviceFailure
		}
		return "", &AppError{Endpoint: path, Message: msg}
	}
	return resp.Advice, nil
}

// Sample fetches the backend's example request for the given user type.
func (c *Client) Sample(ctx context.Context, kind types.UserType) (types.Profile, error) {
	var path string
	switch kind {
	case types.UserTypeStudent:
		path = PathStudentSample
	case types.UserTypeProfessional:
		path = PathProfessionalSample
	default:
		return types.Profile{}, fmt.Errorf("unknown user type %q", kind)
	}

	var resp types.SampleResponse
	if err := c.requestJSON(ctx, http.MethodGet, path, nil, &resp, ""); err != nil {
		return types.Profile{}, err
	}
	profile, err := types.DecodeProfile(kind, resp.SampleRequest)
	if err != nil {
		return types.Profile{}, &ContractError{Endpoint: path, Cause: err}
	}
	return profile, nil
}

// StudentSample fetches the example student profile.
func (c *Client) StudentSample(ctx context.Context) (types.Profile, error) {
	return c.Sample(ctx, types.UserTypeStudent)
}

// ProfessionalSample fetches the example professional profile.
func (c *Client) ProfessionalSample(ctx context.Context) (types.Profile, error) {
	return c.Sample(ctx, types.UserTypeProfessional)
}

// RecommendJobs returns up to topN jobs matching text, in the backend's order.
// A topN of 0 selects types.DefaultTopN.
func (c *Client) RecommendJobs(ctx context.Context, text string, topN int) ([]types.JobMatch, error) {
	if topN == 0 {
		topN = types.DefaultTopN
	}
	req := &types.JobRecommendationRequest{Text: strings.TrimSpace(text), TopN: topN}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid job recommendation request: %w", err)
	}

	var resp types.JobRecommendationResponse
	if err := c.requestJSON(ctx, http.MethodPost, PathRecommendJobs, req, &resp, contracts.JobRecommendationResponse); err != nil {
		return nil, err
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = defaultRecommendationFail
		}
		return nil, &AppError{Endpoint: PathRecommendJobs, Message: msg}
	}
	if resp.Matches == nil {
		return []types.JobMatch{}, nil
	}
	return resp.Matches, nil
}

// JobDetails describes a job title.
func (c *Client) JobDetails(ctx context.Context, title string) (*types.JobDetails, error) {
	req := &types.JobDetailsRequest{JobTitle: strings.TrimSpace(title)}
	if err := types.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("invalid job details request: %w", err)
	}

	var details types.JobDetails
	if err := c.requestJSON(ctx, http.MethodPost, PathJobDetails, req, &details, contracts.JobDetails); err != nil {
		return nil, err
	}
	return &details, nil
}

// StartInterview opens a mock interview session.
func (c *Client) StartInterview(ctx context.Context, req types.InterviewStartRequest) (*types.InterviewStartResponse, error) {
	req.Role = strings.TrimSpace(req.Role)
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid interview request: %w", err)
	}

	var resp types.InterviewStartResponse
	if err := c.requestJSON(ctx, http.MethodPost, PathInterviewStart, &req, &resp, contracts.InterviewStart); err != nil {
		return nil, err
	}
	return &resp, nil
}

// InterviewChat sends one answer within a session and returns the interviewer's reply.
func (c *Client) InterviewChat(ctx context.Context, sessionID, message string) (string, error) {
	req := &types.InterviewChatRequest{SessionID: sessionID, Message: message}
	if err := types.ValidateStruct(req); err != nil {
		return "", fmt.Errorf("invalid interview message: %w", err)
	}

	var resp types.InterviewChatResponse
	if err := c.requestJSON(ctx, http.MethodPost, PathInterviewChat, req, &resp, contracts.Reply); err != nil {
		return "", err
	}
	return resp.Response, nil
}

// InterviewHistory fetches the backend's record of a session.
func (c *Client) InterviewHistory(ctx context.Context, sessionID string) (*types.InterviewHistory, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}

	var history types.InterviewHistory
	path := PathInterviewHistory + url.PathEscape(sessionID)
	if err := c.requestJSON(ctx, http.MethodGet, path, nil, &history, contracts.InterviewHistory); err != nil {
		return nil, err
	}
	return &history, nil
}

// DeleteInterviewSession discards a session on the backend.
func (c *Client) DeleteInterviewSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}
	return c.requestJSON(ctx, http.MethodDelete, PathInterviewSession+url.PathEscape(sessionID), nil, nil, "")
}

// AnalyzeSkills compares current and target skills.
func (c *Client) AnalyzeSkills(ctx context.Context, current, target string) (*types.SkillAnalysis, error) {
	req := &types.SkillAnalysisRequest{CurrentSkills: strings.TrimSpace(current), TargetSkills: strings.TrimSpace(target)}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid skill analysis request: %w", err)
	}

	var analysis types.SkillAnalysis
	if err := c.requestJSON(ctx, http.MethodPost, PathAnalyzeSkills, req, &analysis, contracts.SkillAnalysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// SkillChat asks a follow-up question about an analysis. analysis may be nil.
func (c *Client) SkillChat(ctx context.Context, message string, analysis *types.SkillAnalysis) (string, error) {
	var resp types.SkillChatResponse
	req := &types.SkillChatRequest{Message: message, Context: analysis}
	if err := c.requestJSON(ctx, http.MethodPost, PathSkillChat, req, &resp, contracts.Reply); err != nil {
		return "", err
	}
	return resp.Response, nil
}

// Chat sends one general career-chat message.
func (c *Client) Chat(ctx context.Context, message string) (*types.ChatResponse, error) {
	var resp types.ChatResponse
	if err := c.requestJSON(ctx, http.MethodPost, PathChat, &types.ChatRequest{Message: message}, &resp, contracts.Reply); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ClearChatHistory asks the backend to forget the general chat history.
func (c *Client) ClearChatHistory(ctx context.Context) error {
	return c.requestJSON(ctx, http.MethodDelete, PathChatHistory, nil, nil, "")
}
