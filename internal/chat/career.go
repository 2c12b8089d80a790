package chat

import (
	"context"
	"log"

	"github.com/jonathan/career-counsellor/internal/prompts"
	"github.com/jonathan/career-counsellor/internal/types"
)

const chatFile = "chat.json"

// CareerBackend is the part of the API client used by the general career chat.
type CareerBackend interface {
	Chat(ctx context.Context, message string) (*types.ChatResponse, error)
	ClearChatHistory(ctx context.Context) error
	BaseURL() string
}

// CareerChat is the general career-guidance chat.
type CareerChat struct {
	*Session
	backend CareerBackend
}

// NewCareerChat returns a chat seeded with the welcome message.
func NewCareerChat(backend CareerBackend) *CareerChat {
	fallback := prompts.Format(prompts.MustGet(chatFile, "career.fallback"), map[string]string{
		"BaseURL": backend.BaseURL(),
	})
	exchange := func(ctx context.Context, message string) (string, error) {
		resp, err := backend.Chat(ctx, message)
		if err != nil {
			return "", err
		}
		return resp.Response, nil
	}
	return &CareerChat{
		Session: NewSession(exchange, prompts.MustGet(chatFile, "career.greeting"), fallback),
		backend: backend,
	}
}

// Clear asks the backend to forget the conversation, then restarts the local
// transcript with the "cleared" greeting. On failure the transcript is kept.
func (c *CareerChat) Clear(ctx context.Context) error {
	if err := c.backend.ClearChatHistory(ctx); err != nil {
		log.Printf("[chat] failed to clear history: %v", err)
		return err
	}
	c.Reset(prompts.MustGet(chatFile, "career.cleared"))
	return nil
}

// SkillBackend is the part of the API client used by the skill-gap chat.
type SkillBackend interface {
	SkillChat(ctx context.Context, message string, analysis *types.SkillAnalysis) (string, error)
}

// NewSkillChat returns a chat whose every message carries analysis as context.
func NewSkillChat(backend SkillBackend, analysis *types.SkillAnalysis) *Session {
	var snapshot *types.SkillAnalysis
	if analysis != nil {
		copied := *analysis
		snapshot = &copied
	}
	exchange := func(ctx context.Context, message string) (string, error) {
		return backend.SkillChat(ctx, message, snapshot)
	}
	return NewSession(exchange, prompts.MustGet(chatFile, "skill.greeting"), prompts.MustGet(chatFile, "skill.fallback"))
}
