package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"mentor-collab/internal/service"
)

// HealthCheck verifica las dependencias de almacenamiento.
type HealthCheck func(ctx context.Context) error

// NewRouter configura el router de Gin con middlewares y rutas. Con jwtSvc
// habilitado las rutas de negocio exigen bearer token.
func NewRouter(
	logger *zap.Logger,
	mentorshipH *MentorshipHandler,
	requestH *RequestHandler,
	collaborationH *CollaborationHandler,
	jwtSvc *service.JWTService,
	health HealthCheck,
) *gin.Engine {
	r := gin.New()
	r.Use(zapLoggerMiddleware(logger), gin.Recovery())

	r.GET("/healthz", healthHandler(health))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/", jsonContentTypeMiddleware())
	if jwtSvc.Enabled() {
		api.Use(JWTAuthMiddleware(jwtSvc))
	}

	mentorships := api.Group("/mentorships/:id")
	mentorships.GET("/suggestions", mentorshipH.GetSuggestions)
	mentorships.GET("/traits", mentorshipH.GetTraits)
	mentorships.GET("/requests", mentorshipH.ListRequests)
	mentorships.GET("/collaborations", mentorshipH.ListCollaborations)

	requests := api.Group("/collaboration-requests")
	requests.POST("", requestH.SubmitRequest)
	requests.GET("/:id", requestH.GetRequest)
	requests.POST("/:id/respond", requestH.RespondToRequest)

	api.POST("/collaborations/:id/end", collaborationH.EndCollaboration)

	return r
}

func healthHandler(check HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
