package engine_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"ai-listener/backend/internal/capability"
	"ai-listener/backend/internal/emotion"
	"ai-listener/backend/internal/engine"
	"ai-listener/backend/internal/responder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator records calls and returns a canned reply or error.
type fakeGenerator struct {
	reply   *capability.Reply
	err     error
	calls   int
	message string
	history []capability.Turn
}

func (f *fakeGenerator) Name() string { return "fake" }

func (f *fakeGenerator) Generate(ctx context.Context, message string, history []capability.Turn) (*capability.Reply, error) {
	f.calls++
	f.message = message
	f.history = history
	if f.err != nil {
		return nil, f.err
	}
	return f.reply, nil
}

func newEngine(t *testing.T, gen capability.Generator) *engine.Engine {
	t.Helper()
	selector, err := responder.NewSelector(responder.DefaultCorpus())
	require.NoError(t, err)
	return engine.New(emotion.NewRegistry(), selector, engine.Options{Generator: gen})
}

func TestGenerateUsesGeneratorReply(t *testing.T) {
	gen := &fakeGenerator{
		reply: &capability.Reply{
			Emotion:        emotion.Anxious,
			Confidence:     0.92,
			SentimentScore: -0.5,
			Response:       "Let's slow down together.",
			CopingTip:      "Try box breathing.",
		},
	}
	eng := newEngine(t, gen)

	result := eng.Generate(context.Background(), "I'm worried about tomorrow", nil)

	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, "I'm worried about tomorrow", gen.message)
	assert.Equal(t, emotion.Anxious, result.Emotion)
	assert.Equal(t, 0.92, result.Confidence)
	assert.Equal(t, "Let's slow down together.", result.Response)
	assert.Equal(t, "Try box breathing.", result.CopingTip)
	assert.False(t, result.IsCrisis)
}

func TestGenerateFallsBackOnGeneratorError(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"generic failure", errors.New("connection refused")},
		{"rate limited", fmt.Errorf("request failed: 429 rate limit exceeded")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{err: tt.err}
			eng := newEngine(t, gen)

			result := eng.Generate(context.Background(), "I'm feeling really sad today", nil)

			assert.Equal(t, 1, gen.calls)
			assert.Equal(t, emotion.Sad, result.Emotion)
			assert.NotEmpty(t, result.Response)
			assert.NotEmpty(t, result.CopingTip)
			assert.False(t, result.IsCrisis)
			assert.True(t, result.Emotion.Valid())
		})
	}
}

func TestGenerateWithoutGenerator(t *testing.T) {
	eng := newEngine(t, nil)
	assert.False(t, eng.HasGenerator())

	result := eng.Generate(context.Background(), "I am exhausted", nil)

	assert.Equal(t, emotion.Tired, result.Emotion)
	assert.Equal(t, 0.7, result.Confidence)
	assert.NotEmpty(t, result.Response)
	assert.NotEmpty(t, result.CopingTip)
}

func TestGenerateCrisisSkipsGenerator(t *testing.T) {
	gen := &fakeGenerator{
		reply: &capability.Reply{Emotion: emotion.Happy, Response: "must never be used"},
	}
	eng := newEngine(t, gen)

	result := eng.Generate(context.Background(), "I want to die", nil)

	assert.Equal(t, 0, gen.calls)
	assert.Equal(t, emotion.Crisis, result.Emotion)
	assert.Equal(t, 1.0, result.Confidence)
	assert.Equal(t, -1.0, result.SentimentScore)
	assert.True(t, result.IsCrisis)
	assert.Contains(t, result.Response, "988")
	assert.Contains(t, result.Response, "741741")
}

func TestGenerateTruncatesHistory(t *testing.T) {
	gen := &fakeGenerator{
		reply: &capability.Reply{Emotion: emotion.Neutral, Response: "ok", CopingTip: "ok"},
	}
	eng := newEngine(t, gen)

	var history []engine.Turn
	for i := 0; i < 25; i++ {
		history = append(history, engine.Turn{
			Content:      fmt.Sprintf("turn %d", i),
			IsAIResponse: i%2 == 1,
		})
	}

	eng.Generate(context.Background(), "hello", history)

	require.Len(t, gen.history, engine.HistoryLimit)
	// Only the most recent turns survive, with roles mapped.
	assert.Equal(t, "turn 15", gen.history[0].Content)
	assert.Equal(t, "turn 24", gen.history[len(gen.history)-1].Content)
	for i, turn := range gen.history {
		want := capability.RoleUser
		if (15+i)%2 == 1 {
			want = capability.RoleAssistant
		}
		assert.Equal(t, want, turn.Role)
	}
}

func TestGenerateNeverFails(t *testing.T) {
	eng := newEngine(t, &fakeGenerator{err: errors.New("boom")})

	inputs := []string{
		"",
		"    ",
		"lets play a game",
		"my dog died and I can't stop crying",
		"😢😢😢",
		"I'm not okay",
	}
	for _, input := range inputs {
		result := eng.Generate(context.Background(), input, nil)
		assert.True(t, result.Emotion.Valid(), input)
		assert.NotEmpty(t, result.Response, input)
		assert.NotEmpty(t, result.CopingTip, input)
	}
}
