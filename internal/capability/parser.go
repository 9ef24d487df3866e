package capability

import (
	"encoding/json"
	"fmt"
	"strings"

	"ai-listener/backend/internal/emotion"
)

// DefaultCopingTip is used when the model omits a tip.
const DefaultCopingTip = "Take a deep breath."

const defaultConfidence = 0.5

// rawReply mirrors the JSON object the model is instructed to return.
// Pointer fields distinguish "absent" from zero.
type rawReply struct {
	Emotion        string   `json:"emotion"`
	Confidence     *float64 `json:"confidence"`
	SentimentScore *float64 `json:"sentiment_score"`
	Response       string   `json:"response"`
	CopingTip      string   `json:"coping_tip"`
}

// ParseReply decodes raw model output into a normalized Reply. Models
// sometimes wrap JSON in code fences or prepend chatter, so the payload is
// located before decoding. An unusable payload is an error (the caller
// falls back); a merely sloppy one (unknown emotion, missing fields) is
// repaired without failing the call.
func ParseReply(text string) (*Reply, error) {
	payload := extractJSONPayload(text)
	if payload == "" {
		return nil, fmt.Errorf("model output contains no JSON object")
	}

	var raw rawReply
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, fmt.Errorf("failed to decode model output: %w", err)
	}
	if strings.TrimSpace(raw.Response) == "" {
		return nil, fmt.Errorf("model output has no response text")
	}

	detected := emotion.Emotion(strings.ToLower(strings.TrimSpace(raw.Emotion)))
	if !detected.Valid() {
		detected = emotion.Neutral
	}

	confidence := defaultConfidence
	if raw.Confidence != nil {
		confidence = clamp(*raw.Confidence, 0, 1)
	}
	sentiment := 0.0
	if raw.SentimentScore != nil {
		sentiment = clamp(*raw.SentimentScore, -1, 1)
	}
	tip := strings.TrimSpace(raw.CopingTip)
	if tip == "" {
		tip = DefaultCopingTip
	}

	return &Reply{
		Emotion:        detected,
		Confidence:     confidence,
		SentimentScore: sentiment,
		Response:       strings.TrimSpace(raw.Response),
		CopingTip:      tip,
		IsCrisis:       detected == emotion.Crisis,
	}, nil
}

// extractJSONPayload strips markdown code fences and surrounding chatter,
// returning the JSON object portion of the text or "".
func extractJSONPayload(text string) string {
	cleaned := strings.TrimSpace(text)

	if idx := strings.Index(cleaned, "```json"); idx != -1 {
		cleaned = cleaned[idx+len("```json"):]
		if end := strings.Index(cleaned, "```"); end != -1 {
			cleaned = cleaned[:end]
		}
	} else if idx := strings.Index(cleaned, "```"); idx != -1 {
		cleaned = cleaned[idx+len("```"):]
		if end := strings.Index(cleaned, "```"); end != -1 {
			cleaned = cleaned[:end]
		}
	}
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return cleaned[start : end+1]
}

func clamp(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
