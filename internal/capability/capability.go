// Package capability abstracts the optional external text-generation
// provider. A Generator either returns a structured reply or fails; it is
// never assumed reliable, and callers must always have a local fallback.
package capability

import (
	"context"

	"ai-listener/backend/internal/emotion"
)

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one prior message in the conversation.
type Turn struct {
	Role    Role
	Content string
}

// Reply is the normalized structured output of a generation call. Fields
// are already validated: Emotion is a member of the closed set and the
// numeric fields are clamped to their documented ranges.
type Reply struct {
	Emotion        emotion.Emotion
	Confidence     float64
	SentimentScore float64
	Response       string
	CopingTip      string
	IsCrisis       bool
}

// Generator produces an empathetic reply for a message with bounded prior
// context, or fails.
type Generator interface {
	// Name identifies the provider for logging.
	Name() string
	// Generate returns a normalized reply or an error. Any error means
	// "capability unavailable for this call"; callers fall back.
	Generate(ctx context.Context, message string, history []Turn) (*Reply, error)
}
