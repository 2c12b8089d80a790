// Package stubserver is a deterministic, in-memory stand-in for the career-advice
// backend. It serves the same routes and response shapes without any AI model,
// for tests and offline demos.
package stubserver

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jonathan/career-counsellor/internal/types"
)

// DefaultOrigins are the front-end origins allowed by CORS.
var DefaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://localhost:5174",
}

// maxChatHistory bounds the remembered general-chat exchanges.
const maxChatHistory = 50

// Options configures the stub.
type Options struct {
	// AdviceFailure, when set, makes the advice endpoints answer success=false with this error.
	AdviceFailure string
	// AdviceFailures limits AdviceFailure to the first n advice requests. Zero fails every request.
	AdviceFailures int
	// Origins overrides DefaultOrigins.
	Origins []string
}

// Server holds the stub's in-memory state.
type Server struct {
	opts   Options
	engine *gin.Engine

	mu              sync.Mutex
	chatHistory     []types.ChatHistoryEntry
	sessions        map[string]*interviewSession
	adviceRequested int
}

// New builds a stub with all routes registered.
func New(opts Options) *Server {
	if len(opts.Origins) == 0 {
		opts.Origins = DefaultOrigins
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     opts.Origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	s := &Server{
		opts:     opts,
		engine:   engine,
		sessions: make(map[string]*interviewSession),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := s.engine
	r.GET("/", s.root)
	r.GET("/health", s.health)
	r.POST("/chat", s.chat)
	r.DELETE("/chat/history", s.clearChatHistory)

	api := r.Group("/api")
	{
		api.POST("/student/career-advice", s.studentAdvice)
		api.POST("/professional/career-advice", s.professionalAdvice)
		api.GET("/student/career-advice/sample", s.studentSample)
		api.GET("/professional/career-advice/sample", s.professionalSample)

		api.POST("/jobs/recommend", s.recommendJobs)
		api.POST("/job-details", s.jobDetails)

		api.POST("/analyze-skills", s.analyzeSkills)
		api.POST("/skill-chat", s.skillChat)
		api.POST("/review-cv", s.reviewCV)

		api.POST("/interview/start", s.startInterview)
		api.POST("/interview/chat", s.interviewChat)
		api.GET("/interview/history/:sessionId", s.interviewHistory)
		api.DELETE("/interview/session/:sessionId", s.deleteInterviewSession)
	}
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[stub] listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Printf("[stub] shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("[stub] %s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Microsecond))
	}
}

// detail writes a FastAPI-style error body.
func detail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"detail": message})
}

// validationDetail writes a FastAPI-style 422 body.
func validationDetail(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"detail": []gin.H{{"msg": err.Error(), "type": "value_error"}},
	})
}

func (s *Server) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "AI Career Counsellor API", "status": "running"})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, types.HealthStatus{
		Success: true,
		Message: "Career Advisory API is running",
		Data:    &types.HealthData{Status: "healthy", Service: "career_advisory"},
	})
}
