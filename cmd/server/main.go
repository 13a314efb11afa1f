package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/sujalvaghasiya12/Edu-Pulse---Student-Success-Analytics/internal/analysis"
	"github.com/sujalvaghasiya12/Edu-Pulse---Student-Success-Analytics/internal/cache"
	"github.com/sujalvaghasiya12/Edu-Pulse---Student-Success-Analytics/internal/config"
	"github.com/sujalvaghasiya12/Edu-Pulse---Student-Success-Analytics/internal/database"
	apperrors "github.com/sujalvaghasiya12/Edu-Pulse---Student-Success-Analytics/internal/errors"
	"github.com/sujalvaghasiya12/Edu-Pulse---Student-Success-Analytics/internal/export"
	"github.com/sujalvaghasiya12/Edu-Pulse---Student-Success-Analytics/internal/history"
	"github.com/sujalvaghasiya12/Edu-Pulse---Student-Success-Analytics/internal/monitoring"
	"github.com/sujalvaghasiya12/Edu-Pulse---Student-Success-Analytics/internal/ratelimit"
	"github.com/sujalvaghasiya12/Edu-Pulse---Student-Success-Analytics/internal/security"
	"github.com/sujalvaghasiya12/Edu-Pulse---Student-Success-Analytics/internal/types"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Configuration from environment with defaults
	dataDir := getEnvOrDefault("DATA_DIR", "./data")
	port := getEnvOrDefault("PORT", "8080")
	redisAddr := os.Getenv("REDIS_ADDR")
	redisPassword := os.Getenv("REDIS_PASSWORD")
	historyLimit := getEnvIntOrDefault("HISTORY_LIMIT", config.DefaultHistoryLimit)
	retentionDays := getEnvIntOrDefault("RETENTION_DAYS", 365)

	// Initialize database and repository
	db, err := database.NewDB(dataDir)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer apperrors.SafeClose(db, "database")

	repo := database.NewRepository(db)

	// Schedule retention cleanup (runs daily)
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if _, err := repo.DeleteOlderThan(retentionDays); err != nil {
				slog.Error("Failed to clean up old predictions", "error", err)
			}
		}
	}()

	// Core services
	predictor := analysis.NewPredictor()
	historyStore := history.NewStore(historyLimit)

	r := gin.New()

	// Monitoring
	appMetrics := monitoring.NewMetrics()
	appLogger := monitoring.NewLogger()
	r.Use(monitoring.MonitoringMiddleware(appMetrics, appLogger))

	// Error handling
	r.Use(apperrors.ErrorHandler())
	r.Use(apperrors.RecoveryHandler())

	// Security
	r.Use(security.SecurityHeadersMiddleware())
	r.Use(security.ValidateContentTypeMiddleware())

	// CORS for the dashboard
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{getEnvOrDefault("DASHBOARD_ORIGIN", "http://localhost:3000")}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	r.Use(cors.New(corsConfig))

	// Rate limiting (Redis with in-memory fallback)
	redisClient, err := ratelimit.NewRedisClient(redisAddr, redisPassword, 0)
	if err != nil {
		slog.Warn("Redis unavailable, continuing with in-memory rate limiting", "error", err)
	}
	defer apperrors.SafeClose(redisClient, "redis")

	rateLimiter := ratelimit.NewRateLimiter(redisClient, ratelimit.DefaultConfig(), appMetrics)
	r.Use(rateLimiter.IPRateLimitMiddleware())

	// Response cache for deterministic predictions (15 minutes TTL)
	appCache := cache.NewCache(15 * time.Minute)
	r.Use(appCache.Middleware("/api/v1/predict", appMetrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   "1.0.0",
			"metrics":   appMetrics.GetStats(),
		})
	})

	r.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, appMetrics.GetStats())
	})

	r.GET("/cache/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, appCache.Stats())
	})

	r.GET("/ratelimit/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, rateLimiter.GetStats())
	})

	r.GET("/pools/database", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"pool":  "database",
			"stats": db.GetPoolStats(),
		})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	api.POST("/predict", func(c *gin.Context) {
		start := time.Now()

		var req types.PredictRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			appErr := apperrors.NewValidationError("request body must contain a profile object")
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		profile, err := analysis.ValidateAndSanitize(req.Profile)
		if err != nil {
			appMetrics.IncrementValidationFailure()
			appErr := apperrors.ToAppError(err)
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		result := predictor.Predict(profile)
		warnings := analysis.CheckAnomalies(profile)

		appMetrics.IncrementPrediction()

		entry := historyStore.Append(result)

		// Persist asynchronously; a failed write never fails the prediction
		go func(res analysis.PredictionResult, ip string) {
			if _, err := repo.SavePrediction(res, ip); err != nil {
				slog.Error("Failed to persist prediction", "error", err)
			}
		}(result, c.ClientIP())

		cacheHit := c.GetBool("cache_hit")
		appLogger.PredictionLogger(result.SuccessProbability, result.RiskAssessment.Level, len(warnings), time.Since(start), cacheHit)

		c.JSON(http.StatusOK, gin.H{
			"prediction": result,
			"warnings":   warnings,
			"breakdown":  analysis.ScoreBreakdown(result.FactorScores),
			"history_id": entry.ID,
		})
	})

	api.POST("/simulate", func(c *gin.Context) {
		var req types.SimulateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			appErr := apperrors.NewValidationError("request body must contain factor_scores")
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		current := analysis.AggregateScore(req.FactorScores)
		projected := analysis.SimulateIntervention(req.FactorScores, req.Improvements)

		appMetrics.IncrementSimulation()

		c.JSON(http.StatusOK, gin.H{
			"current_probability":   current,
			"projected_probability": projected,
			"improvement":           analysis.ImprovementNeeded(projected, config.SuccessTarget),
			"risk_assessment":       analysis.ClassifyRisk(projected),
		})
	})

	api.POST("/recommend", func(c *gin.Context) {
		var req types.RecommendRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			appErr := apperrors.NewValidationError("request body must contain factor_scores")
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		threshold := analysis.DefaultRecommendThreshold
		if req.Threshold != nil {
			threshold = *req.Threshold
		}
		limit := analysis.TopFactorCount
		if req.Limit != nil && *req.Limit > 0 {
			limit = *req.Limit
		}

		appMetrics.IncrementRecommendation()

		c.JSON(http.StatusOK, analysis.RecommendWithOptions(req.FactorScores, threshold, limit))
	})

	api.POST("/anomalies", func(c *gin.Context) {
		var req types.AnomalyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			appErr := apperrors.NewValidationError("request body must contain a profile object")
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		profile, err := analysis.ValidateAndSanitize(req.Profile)
		if err != nil {
			appMetrics.IncrementValidationFailure()
			appErr := apperrors.ToAppError(err)
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		c.JSON(http.StatusOK, gin.H{"warnings": analysis.CheckAnomalies(profile)})
	})

	// Read-only scoring configuration for the dashboard's input forms
	api.GET("/config", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"weights":             config.Weights,
			"categorical_options": config.CategoricalOptions,
			"score_mappings":      config.ScoreMappings,
			"valid_ranges":        config.ValidRanges,
			"risk_bands":          config.RiskBands,
			"success_target":      config.SuccessTarget,
		})
	})

	api.GET("/history", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"entries": historyStore.All(),
			"limit":   historyLimit,
		})
	})

	api.DELETE("/history", func(c *gin.Context) {
		historyStore.Clear()
		c.JSON(http.StatusOK, gin.H{"message": "history cleared"})
	})

	api.GET("/export", func(c *gin.Context) {
		entry, ok := historyStore.Latest()
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "no prediction to export"})
			return
		}

		switch c.DefaultQuery("format", "json") {
		case "csv":
			data, err := export.CSV(entry.Result)
			if err != nil {
				appErr := apperrors.NewInternalError("failed to export prediction", err)
				apperrors.LogError(c, appErr)
				c.JSON(appErr.HTTPStatus, appErr)
				return
			}
			c.Header("Content-Disposition", "attachment; filename=prediction.csv")
			c.Data(http.StatusOK, "text/csv", []byte(data))
		case "json":
			data, err := export.JSON(entry.Result)
			if err != nil {
				appErr := apperrors.NewInternalError("failed to export prediction", err)
				apperrors.LogError(c, appErr)
				c.JSON(appErr.HTTPStatus, appErr)
				return
			}
			c.Header("Content-Disposition", "attachment; filename=prediction.json")
			c.Data(http.StatusOK, "application/json", data)
		default:
			appErr := apperrors.NewValidationError("format must be json or csv")
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
		}
	})

	// Persisted predictions (survives restarts, unlike session history)
	api.GET("/predictions", func(c *gin.Context) {
		limit := 50
		if limitStr := c.Query("limit"); limitStr != "" {
			if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
				limit = l
			}
		}

		records, err := repo.ListRecent(limit)
		if err != nil {
			appLogger.APIErrorLogger(err, "GET", "/api/v1/predictions", c.ClientIP(), http.StatusInternalServerError)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve predictions"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"predictions": records})
	})

	api.GET("/predictions/stats", func(c *gin.Context) {
		counts, err := repo.CountByRiskLevel()
		if err != nil {
			appLogger.APIErrorLogger(err, "GET", "/api/v1/predictions/stats", c.ClientIP(), http.StatusInternalServerError)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve prediction stats"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"by_risk_level": counts})
	})

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		slog.Info("Starting server", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
