package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-listener/backend/internal/emotion"
	"ai-listener/backend/internal/engine"
	"ai-listener/backend/internal/handler"
	"ai-listener/backend/internal/responder"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	selector, err := responder.NewSelector(responder.DefaultCorpus())
	require.NoError(t, err)
	eng := engine.New(emotion.NewRegistry(), selector, engine.Options{})

	r := gin.New()
	h := handler.NewHealthHandler(eng)
	r.GET("/health", h.HandleHealth)
	r.GET("/ready", h.HandleReadiness)

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp handler.HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "fallback-only", resp.Generator)
		assert.NotEmpty(t, resp.Timestamp)
	})

	t.Run("ready", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
