package stubserver

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jonathan/career-counsellor/internal/types"
)

const closingMessage = "That concludes our interview. Thank you for your time, you will receive feedback shortly."

var interviewQuestions = map[string][]string{
	"easy": {
		"Tell me about yourself.",
		"Why are you interested in this role?",
		"What is one skill you are proud of?",
		"Describe a project you enjoyed working on.",
		"Where do you see yourself in two years?",
	},
	"medium": {
		"Walk me through a difficult problem you solved recently.",
		"How do you prioritise competing deadlines?",
		"Describe a time you disagreed with a teammate.",
		"How do you keep your skills current?",
		"What would your first ninety days in this role look like?",
	},
	"hard": {
		"Describe a decision you made with incomplete information and its outcome.",
		"How would you design a system to serve this role's core workload at scale?",
		"Tell me about a failure and what you changed afterwards.",
		"How do you influence stakeholders who outrank you?",
		"What trade-offs would you make to ship under a fixed deadline?",
	},
}

type interviewSession struct {
	role         string
	difficulty   string
	numQuestions int
	asked        int
	history      []types.InterviewMessage
}

func (is *interviewSession) nextQuestion() string {
	questions := interviewQuestions[is.difficulty]
	q := questions[is.asked%len(questions)]
	is.asked++
	return fmt.Sprintf("Question %d of %d: %s", is.asked, is.numQuestions, q)
}

func (s *Server) startInterview(c *gin.Context) {
	var req types.InterviewStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationDetail(c, err)
		return
	}
	req.Role = strings.TrimSpace(req.Role)
	if err := req.Validate(); err != nil {
		validationDetail(c, err)
		return
	}

	session := &interviewSession{
		role:         req.Role,
		difficulty:   req.Difficulty,
		numQuestions: req.NumQuestions,
	}
	opening := fmt.Sprintf("Welcome to your %s interview for the %s role. %s",
		req.Difficulty, req.Role, session.nextQuestion())
	session.history = append(session.history, types.InterviewMessage{Role: "interviewer", Content: opening})

	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	c.JSON(http.StatusOK, types.InterviewStartResponse{SessionID: id, Message: opening})
}

func (s *Server) interviewChat(c *gin.Context) {
	var req types.InterviewChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationDetail(c, err)
		return
	}
	answer := strings.TrimSpace(req.Message)
	if answer == "" {
		detail(c, http.StatusBadRequest, "Message cannot be empty")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[req.SessionID]
	if !ok {
		detail(c, http.StatusNotFound, "Session not found")
		return
	}

	session.history = append(session.history, types.InterviewMessage{Role: "candidate", Content: answer})
	reply := closingMessage
	if session.asked < session.numQuestions {
		reply = "Thank you. " + session.nextQuestion()
	}
	session.history = append(session.history, types.InterviewMessage{Role: "interviewer", Content: reply})

	c.JSON(http.StatusOK, types.InterviewChatResponse{Response: reply})
}

func (s *Server) interviewHistory(c *gin.Context) {
	id := c.Param("sessionId")

	s.mu.Lock()
	session, ok := s.sessions[id]
	var history []types.InterviewMessage
	if ok {
		history = append([]types.InterviewMessage{}, session.history...)
	}
	s.mu.Unlock()

	if !ok {
		detail(c, http.StatusNotFound, "Session not found")
		return
	}
	c.JSON(http.StatusOK, types.InterviewHistory{SessionID: id, Role: session.role, History: history})
}

func (s *Server) deleteInterviewSession(c *gin.Context) {
	id := c.Param("sessionId")

	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		detail(c, http.StatusNotFound, "Session not found")
		return
	}
	c.JSON(http.StatusOK, types.MessageResponse{Message: "Session deleted"})
}
