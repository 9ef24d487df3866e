package main

import (
	"context"
	"log"
	"time"

	"ai-listener/backend/internal/capability"
	"ai-listener/backend/internal/config"
	"ai-listener/backend/internal/emotion"
	"ai-listener/backend/internal/engine"
	"ai-listener/backend/internal/handler"
	"ai-listener/backend/internal/middleware"
	"ai-listener/backend/internal/responder"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func main() {
	cfg := config.Load()
	log.Printf("[INFO] Starting AI Listener env=%s", cfg.Env)

	registry := emotion.NewRegistry()

	corpus := responder.DefaultCorpus()
	if cfg.CorpusPath != "" {
		loaded, err := responder.LoadCorpus(cfg.CorpusPath)
		if err != nil {
			log.Fatalf("[FATAL] Failed to load corpus %s: %v", cfg.CorpusPath, err)
		}
		corpus = loaded
		log.Printf("[INFO] Corpus loaded from %s", cfg.CorpusPath)
	}

	selector, err := responder.NewSelector(corpus)
	if err != nil {
		log.Fatalf("[FATAL] Invalid response corpus: %v", err)
	}

	generator := buildGenerator(cfg)
	if generator != nil {
		log.Printf("[INFO] Generator initialized: %s", generator.Name())
	} else {
		log.Println("[WARN] No generator configured, running rule-based only")
	}

	eng := engine.New(registry, selector, engine.Options{
		Generator: generator,
		Timeout:   time.Duration(cfg.AITimeoutSeconds) * time.Second,
	})

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// Security headers (before CORS)
	r.Use(middleware.SecurityHeaders())

	allowedOrigins := []string{}
	if gin.Mode() != gin.ReleaseMode {
		allowedOrigins = append(allowedOrigins, "http://localhost:5173")
	}
	allowedOrigins = append(allowedOrigins, cfg.AllowedOrigins...)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Accept-Language"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	ipLimiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)
	dailyQuota := middleware.NewDailyQuota(cfg.DailyQuota)

	log.Printf("[INFO] Rate limiting enabled per_sec=%.1f burst=%d daily=%d",
		cfg.RateLimitPerSec, cfg.RateLimitBurst, cfg.DailyQuota)

	chatHandler := handler.NewChatHandler(eng)
	healthHandler := handler.NewHealthHandler(eng)

	// Health check endpoints (outside /api group, no rate limiting)
	r.GET("/health", healthHandler.HandleHealth)
	r.GET("/ready", healthHandler.HandleReadiness)

	api := r.Group("/api")
	{
		api.POST("/chat", middleware.RateLimitMiddleware(ipLimiter, dailyQuota), chatHandler.HandleChat)
	}

	log.Printf("[INFO] Server ready port=%s allowed_origins=%v", cfg.Port, allowedOrigins)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("[FATAL] Failed to start server: %v", err)
	}
}

// buildGenerator picks the first configured provider. Gemini wins when both
// keys are present.
func buildGenerator(cfg config.Config) capability.Generator {
	if cfg.GeminiAPIKey != "" {
		model := cfg.GeminiModel
		if model == "" {
			model = capability.DefaultGeminiModel
		}
		gen, err := capability.NewGeminiGenerator(context.Background(), cfg.GeminiAPIKey, model)
		if err != nil {
			log.Printf("[WARN] Failed to initialize Gemini generator: %v", err)
			return nil
		}
		return gen
	}

	if cfg.OpenAIAPIKey != "" {
		model := cfg.OpenAIModel
		if model == "" {
			model = capability.DefaultOpenAIModel
		}
		gen, err := capability.NewOpenAIGenerator(cfg.OpenAIAPIKey, model)
		if err != nil {
			log.Printf("[WARN] Failed to initialize OpenAI generator: %v", err)
			return nil
		}
		return gen
	}

	return nil
}
