package handler

import (
	"log"
	"net/http"
	"strings"
	"time"

	"ai-listener/backend/internal/engine"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// MaxMessageLength is the maximum allowed message length in bytes.
const MaxMessageLength = 2000

type ChatRequest struct {
	Message   string  `json:"message" binding:"required,max=2000"`
	SessionID *string `json:"sessionId,omitempty"`
}

type ChatResponseDTO struct {
	Response       string  `json:"response"`
	Emotion        string  `json:"emotion"`
	Confidence     float64 `json:"confidence"`
	SentimentScore float64 `json:"sentiment_score"`
	CopingTip      string  `json:"coping_tip"`
	IsCrisis       bool    `json:"is_crisis"`
	SessionID      string  `json:"sessionId"`
}

// ChatHandler serves the chat endpoint over an injected engine.
type ChatHandler struct {
	engine   *engine.Engine
	sessions *SessionStore
}

// NewChatHandler creates a chat handler.
func NewChatHandler(eng *engine.Engine) *ChatHandler {
	return &ChatHandler{
		engine:   eng,
		sessions: NewSessionStore(),
	}
}

// HandleChat processes one chat message. Generation-path failures never
// surface here: the engine always returns a usable result.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	start := time.Now()

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if strings.Contains(err.Error(), "max") {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Message is too long (max 2000 characters)",
				"code":  "MESSAGE_TOO_LONG",
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: message is required",
			"code":  "INVALID_REQUEST",
		})
		return
	}

	// Normalize to NFC so emoji and pattern matching see canonical forms
	req.Message = norm.NFC.String(req.Message)

	sessionID := ""
	if req.SessionID != nil && *req.SessionID != "" {
		sessionID = *req.SessionID
	} else {
		sessionID = uuid.New().String()
	}

	history := h.sessions.History(sessionID)
	result := h.engine.Generate(c.Request.Context(), req.Message, history)

	h.sessions.Append(sessionID,
		engine.Turn{Content: req.Message, IsAIResponse: false},
		engine.Turn{Content: result.Response, IsAIResponse: true},
	)

	log.Printf("[PERF] Chat completed in %v emotion=%s confidence=%.2f crisis=%t",
		time.Since(start), result.Emotion, result.Confidence, result.IsCrisis)

	c.JSON(http.StatusOK, ChatResponseDTO{
		Response:       result.Response,
		Emotion:        string(result.Emotion),
		Confidence:     result.Confidence,
		SentimentScore: result.SentimentScore,
		CopingTip:      result.CopingTip,
		IsCrisis:       result.IsCrisis,
		SessionID:      sessionID,
	})
}
