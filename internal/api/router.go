package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NetLive5/weblarek/internal/api/handlers"
	"github.com/NetLive5/weblarek/internal/api/middleware"
	"github.com/NetLive5/weblarek/internal/config"
	"github.com/NetLive5/weblarek/internal/session"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, store *session.Store, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))

	// Root: friendly response so GET / returns 200 instead of 404
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Web-larek storefront",
			"endpoints": []string{
				"GET /health",
				"POST /v1/sessions",
				"DELETE /v1/sessions/current",
				"GET /v1/screen",
				"POST /v1/catalog",
				"POST /v1/catalog/:id/select",
				"POST /v1/preview/basket",
				"POST /v1/basket/open",
				"DELETE /v1/basket/:id",
				"POST /v1/basket/order",
				"POST /v1/forms/:form/fields",
				"POST /v1/forms/:form/payment",
				"POST /v1/forms/:form/submit",
				"POST /v1/modal/close",
				"POST /v1/success/close",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "sessions": store.Len()})
	})

	idempotency := middleware.NewIdempotencyStore()

	v1 := router.Group("/v1")
	{
		v1.POST("/sessions", handlers.HandleCreateSession(store, logger))

		// Storefront routes (require a session)
		storefront := v1.Group("")
		storefront.Use(middleware.SessionMiddleware(store, logger))
		{
			storefront.DELETE("/sessions/current", handlers.HandleDeleteSession(store))
			storefront.GET("/screen", handlers.HandleGetScreen(logger))

			storefront.POST("/catalog", handlers.HandleReloadCatalog(logger))
			storefront.POST("/catalog/:id/select", handlers.HandleSelectCard(logger))
			storefront.POST("/preview/basket", handlers.HandleBuyPreview(logger))

			storefront.POST("/basket/open", handlers.HandleOpenBasket(logger))
			storefront.DELETE("/basket/:id", handlers.HandleRemoveFromBasket(logger))
			storefront.POST("/basket/order", handlers.HandleCheckout(logger))

			storefront.POST("/forms/:form/fields", handlers.HandleFieldInput(logger))
			storefront.POST("/forms/:form/payment", handlers.HandleSelectPayment(logger))
			storefront.POST("/forms/:form/submit",
				middleware.IdempotencyMiddleware(idempotency, logger),
				handlers.HandleSubmitForm(logger),
			)

			storefront.POST("/modal/close", handlers.HandleCloseModal(logger))
			storefront.POST("/success/close", handlers.HandleCloseSuccess(logger))
		}
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.String("session_id", sessionID(c)),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs storefront requests with the session they acted on
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		fields := []zap.Field{
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if id := sessionID(c); id != "" {
			fields = append(fields, zap.String("session_id", id))
		}
		if c.Writer.Header().Get(middleware.IdempotentReplayHeader) != "" {
			fields = append(fields, zap.Bool("replayed", true))
		}
		logger.Info("HTTP request", fields...)
	}
}

// sessionID returns the id of the session resolved for this request, or ""
func sessionID(c *gin.Context) string {
	if sess, ok := middleware.GetSessionFromContext(c); ok {
		return sess.ID
	}
	return ""
}
