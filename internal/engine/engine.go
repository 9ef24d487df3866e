// Package engine orchestrates response generation: a deterministic crisis
// check first, then the external generator when one is configured, then
// the rule-based classifier and selector as the always-available fallback.
package engine

import (
	"context"
	"log"
	"time"

	"ai-listener/backend/internal/capability"
	"ai-listener/backend/internal/emotion"
	"ai-listener/backend/internal/responder"
)

const (
	// HistoryLimit is the number of most recent turns passed to the
	// generator as context.
	HistoryLimit = 10
	// DefaultTimeout bounds a single generation attempt.
	DefaultTimeout = 30 * time.Second
)

// Turn is one prior message in a conversation, as supplied by callers.
type Turn struct {
	Content      string `json:"content"`
	IsAIResponse bool   `json:"is_ai_response"`
}

// Result is the unified output shape. Callers cannot tell which path
// produced it.
type Result struct {
	Emotion        emotion.Emotion `json:"emotion"`
	Confidence     float64         `json:"confidence"`
	SentimentScore float64         `json:"sentiment_score"`
	Response       string          `json:"response"`
	CopingTip      string          `json:"coping_tip"`
	IsCrisis       bool            `json:"is_crisis"`
}

// Options configures an Engine.
type Options struct {
	// Generator is the external generation capability; nil means not
	// configured, which behaves like a permanent capability failure.
	Generator capability.Generator
	// Timeout bounds each generation attempt. Zero means DefaultTimeout.
	Timeout time.Duration
}

// Engine combines the classifier, the response selector, and the optional
// external generator. All state is immutable after construction, so one
// Engine serves concurrent sessions.
type Engine struct {
	registry   *emotion.Registry
	classifier *emotion.Classifier
	selector   *responder.Selector
	generator  capability.Generator
	timeout    time.Duration
}

// New creates an Engine over the given pattern registry and selector.
func New(registry *emotion.Registry, selector *responder.Selector, opts Options) *Engine {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Engine{
		registry:   registry,
		classifier: emotion.NewClassifier(registry),
		selector:   selector,
		generator:  opts.Generator,
		timeout:    timeout,
	}
}

// HasGenerator reports whether an external generator is configured.
func (e *Engine) HasGenerator() bool {
	return e.generator != nil
}

// Generate produces a reply for the message. It never fails: any generator
// problem (timeout, malformed output, missing credentials) is absorbed by
// the deterministic fallback path.
//
// The crisis check always runs locally first. The generator is never
// consulted for a crisis message, so the safety path cannot be overridden
// by non-deterministic output.
func (e *Engine) Generate(ctx context.Context, text string, history []Turn) Result {
	if e.registry.CrisisMatch(text) {
		crisis := emotion.CrisisResult()
		response, tip := e.selector.Select(crisis)
		return resultFrom(crisis, response, tip)
	}

	if e.generator != nil {
		reply, err := e.callGenerator(ctx, text, history)
		if err == nil {
			return Result{
				Emotion:        reply.Emotion,
				Confidence:     reply.Confidence,
				SentimentScore: reply.SentimentScore,
				Response:       reply.Response,
				CopingTip:      reply.CopingTip,
				IsCrisis:       reply.IsCrisis,
			}
		}
		if capability.IsRateLimited(err) {
			log.Printf("[QUOTA] %s rate limited, using rule-based fallback: %v", e.generator.Name(), err)
		} else {
			log.Printf("[FALLBACK] %s generation failed, using rule-based fallback: %v", e.generator.Name(), err)
		}
	}

	classified := e.classifier.Classify(text)
	response, tip := e.selector.Select(classified)
	return resultFrom(classified, response, tip)
}

// callGenerator invokes the external capability once, with bounded history
// and a bounded timeout. No retries: one attempt, then fall back.
func (e *Engine) callGenerator(ctx context.Context, text string, history []Turn) (*capability.Reply, error) {
	if len(history) > HistoryLimit {
		history = history[len(history)-HistoryLimit:]
	}
	turns := make([]capability.Turn, 0, len(history))
	for _, t := range history {
		role := capability.RoleUser
		if t.IsAIResponse {
			role = capability.RoleAssistant
		}
		turns = append(turns, capability.Turn{Role: role, Content: t.Content})
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	return e.generator.Generate(ctx, text, turns)
}

func resultFrom(res emotion.Result, response, tip string) Result {
	return Result{
		Emotion:        res.Emotion,
		Confidence:     res.Confidence,
		SentimentScore: res.SentimentScore,
		Response:       response,
		CopingTip:      tip,
		IsCrisis:       res.IsCrisis,
	}
}
