package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ai-listener/backend/internal/emotion"
	"ai-listener/backend/internal/engine"
	"ai-listener/backend/internal/handler"
	"ai-listener/backend/internal/responder"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	selector, err := responder.NewSelector(responder.DefaultCorpus())
	require.NoError(t, err)
	eng := engine.New(emotion.NewRegistry(), selector, engine.Options{})

	r := gin.New()
	r.POST("/api/chat", handler.NewChatHandler(eng).HandleChat)
	return r
}

func postChat(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleChat(t *testing.T) {
	router := newChatRouter(t)

	w := postChat(t, router, `{"message": "I am exhausted"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp handler.ChatResponseDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "tired", resp.Emotion)
	assert.Equal(t, 0.7, resp.Confidence)
	assert.NotEmpty(t, resp.Response)
	assert.NotEmpty(t, resp.CopingTip)
	assert.False(t, resp.IsCrisis)
	assert.NotEmpty(t, resp.SessionID)
}

func TestHandleChatCrisis(t *testing.T) {
	router := newChatRouter(t)

	w := postChat(t, router, `{"message": "I want to die"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp handler.ChatResponseDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "crisis", resp.Emotion)
	assert.True(t, resp.IsCrisis)
	assert.Contains(t, resp.Response, "988")
	assert.Contains(t, resp.Response, "741741")
}

func TestHandleChatKeepsSessionID(t *testing.T) {
	router := newChatRouter(t)

	w := postChat(t, router, `{"message": "hello"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var first handler.ChatResponseDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	require.NotEmpty(t, first.SessionID)

	w = postChat(t, router, `{"message": "hello again", "sessionId": "`+first.SessionID+`"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var second handler.ChatResponseDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.Equal(t, first.SessionID, second.SessionID)
}

func TestHandleChatValidation(t *testing.T) {
	router := newChatRouter(t)

	t.Run("missing message", func(t *testing.T) {
		w := postChat(t, router, `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
	})

	t.Run("empty message", func(t *testing.T) {
		w := postChat(t, router, `{"message": ""}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
	})

	t.Run("message too long", func(t *testing.T) {
		long := strings.Repeat("a", handler.MaxMessageLength+1)
		w := postChat(t, router, `{"message": "`+long+`"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "MESSAGE_TOO_LONG")
	})

	t.Run("malformed body", func(t *testing.T) {
		w := postChat(t, router, `{"message": `)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
