package stubserver

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jonathan/career-counsellor/internal/resume"
	"github.com/jonathan/career-counsellor/internal/types"
)

func (s *Server) studentAdvice(c *gin.Context) {
	var profile types.StudentProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		validationDetail(c, err)
		return
	}
	s.writeAdvice(c, adviceForStudent(profile))
}

func (s *Server) professionalAdvice(c *gin.Context) {
	var profile types.ProfessionalProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		validationDetail(c, err)
		return
	}
	s.writeAdvice(c, adviceForProfessional(profile))
}

func (s *Server) writeAdvice(c *gin.Context, advice string) {
	if s.failAdvice() {
		c.JSON(http.StatusOK, types.AdviceResponse{
			Success: false,
			Message: "Failed to generate career advice",
			Error:   s.opts.AdviceFailure,
		})
		return
	}
	c.JSON(http.StatusOK, types.AdviceResponse{
		Success: true,
		Message: "Career advice generated successfully",
		Advice:  advice,
	})
}

func (s *Server) failAdvice() bool {
	if s.opts.AdviceFailure == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adviceRequested++
	return s.opts.AdviceFailures == 0 || s.adviceRequested <= s.opts.AdviceFailures
}

func (s *Server) studentSample(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sample_request": sampleStudent})
}

func (s *Server) professionalSample(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sample_request": sampleProfessional})
}

func (s *Server) recommendJobs(c *gin.Context) {
	req := types.JobRecommendationRequest{TopN: types.DefaultTopN}
	if err := c.ShouldBindJSON(&req); err != nil {
		validationDetail(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		validationDetail(c, err)
		return
	}

	c.JSON(http.StatusOK, types.JobRecommendationResponse{
		Success: true,
		Message: "Job recommendations generated successfully",
		Matches: recommend(req.Text, req.TopN),
	})
}

func (s *Server) jobDetails(c *gin.Context) {
	var req types.JobDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationDetail(c, err)
		return
	}
	title := strings.TrimSpace(req.JobTitle)
	if title == "" {
		detail(c, http.StatusBadRequest, "Job title cannot be empty")
		return
	}
	c.JSON(http.StatusOK, describeJob(title))
}

func (s *Server) analyzeSkills(c *gin.Context) {
	var req types.SkillAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationDetail(c, err)
		return
	}
	current, target := strings.TrimSpace(req.CurrentSkills), strings.TrimSpace(req.TargetSkills)
	if current == "" || target == "" {
		detail(c, http.StatusBadRequest, "Both current skills and target skills are required")
		return
	}
	c.JSON(http.StatusOK, analyzeGap(current, target))
}

func (s *Server) skillChat(c *gin.Context) {
	var req types.SkillChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationDetail(c, err)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		detail(c, http.StatusBadRequest, "Message cannot be empty")
		return
	}

	reply := "Keep building on your strengths and practise regularly."
	if req.Context != nil && len(req.Context.MissingSkills) > 0 {
		reply = fmt.Sprintf("Based on your analysis, start with %s. %s",
			req.Context.MissingSkills[0], firstOr(req.Context.LearningPath, "Set aside a few hours each week."))
	}
	c.JSON(http.StatusOK, types.SkillChatResponse{Response: reply})
}

func (s *Server) chat(c *gin.Context) {
	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationDetail(c, err)
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		detail(c, http.StatusBadRequest, "Message cannot be empty")
		return
	}

	reply := chatReply(message)

	s.mu.Lock()
	s.chatHistory = append(s.chatHistory, types.ChatHistoryEntry{User: message, Bot: reply})
	if len(s.chatHistory) > maxChatHistory {
		s.chatHistory = s.chatHistory[len(s.chatHistory)-maxChatHistory:]
	}
	history := append([]types.ChatHistoryEntry(nil), s.chatHistory...)
	s.mu.Unlock()

	c.JSON(http.StatusOK, types.ChatResponse{Response: reply, History: history})
}

func (s *Server) clearChatHistory(c *gin.Context) {
	s.mu.Lock()
	s.chatHistory = nil
	s.mu.Unlock()
	c.JSON(http.StatusOK, types.MessageResponse{Message: "Chat history cleared"})
}

func (s *Server) reviewCV(c *gin.Context) {
	header, err := c.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		c.JSON(http.StatusOK, gin.H{
			"review":      reviewText(samplePages, sampleResumeText),
			"filename":    "sample.pdf",
			"status":      "success",
			"text_length": len(sampleResumeText),
		})
		return
	}
	if err != nil {
		detail(c, http.StatusBadRequest, fmt.Sprintf("Invalid upload: %v", err))
		return
	}

	file, err := header.Open()
	if err != nil {
		detail(c, http.StatusInternalServerError, fmt.Sprintf("Unexpected error: %v", err))
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, resume.MaxSize+1))
	if err != nil {
		detail(c, http.StatusInternalServerError, fmt.Sprintf("Unexpected error: %v", err))
		return
	}
	pages, text, err := resume.Inspect(data)
	if err != nil {
		detail(c, http.StatusInternalServerError, fmt.Sprintf("Unexpected error: %v", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"review":      reviewText(pages, text),
		"filename":    header.Filename,
		"status":      "success",
		"text_length": len(text),
	})
}

func firstOr(values []string, fallback string) string {
	if len(values) > 0 {
		return values[0]
	}
	return fallback
}
