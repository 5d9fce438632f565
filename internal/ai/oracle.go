// Package ai declares the capability interface of the generative-AI
// collaborator. The sync subsystem treats it as black-box and fallible:
// calls are not retried and failures never crash the caller.
package ai

import (
	"context"

	"github.com/salespro-app/salespro/internal/common"
	"github.com/salespro-app/salespro/internal/models"
)

// GradeResult is the oracle's verdict on a homework submission.
type GradeResult struct {
	Passed   bool
	Feedback string
}

// Oracle is the declared capability surface of the AI backend.
type Oracle interface {
	// SendChat continues a coaching conversation and returns the model reply.
	SendChat(ctx context.Context, history []models.ChatMessage, message string) (string, error)

	// GradeSubmission grades homework content against a rubric.
	GradeSubmission(ctx context.Context, content, kind, rubric string) (GradeResult, error)

	// GenerateAvatar produces a stylized avatar from a user photo and
	// returns its URL.
	GenerateAvatar(ctx context.Context, photo []byte, style string) (string, error)
}

// Unavailable is the null oracle used when no provider is configured.
type Unavailable struct{}

func (Unavailable) SendChat(ctx context.Context, history []models.ChatMessage, message string) (string, error) {
	return "", common.ErrAIUnavailable
}

func (Unavailable) GradeSubmission(ctx context.Context, content, kind, rubric string) (GradeResult, error) {
	return GradeResult{}, common.ErrAIUnavailable
}

func (Unavailable) GenerateAvatar(ctx context.Context, photo []byte, style string) (string, error) {
	return "", common.ErrAIUnavailable
}
