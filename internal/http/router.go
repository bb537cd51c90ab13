package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gita-wellness/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	jwtServ *service.JWTService,
	userH *UserHandler,
	assessH *AssessmentHandler,
	faceH *FaceHandler,
	ecgH *ECGHandler,
	recH *RecommendationHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	users := r.Group("/users")
	users.POST("", userH.CreateUser)

	auth := r.Group("/auth")
	auth.POST("/login", userH.Login)
	auth.POST("/refresh", userH.RefreshToken)
	auth.POST("/logout", userH.Logout)

	// Recomendaciones por categoria: lectura publica, sin datos de usuario.
	r.GET("/recommendations/:emotion", recH.GetByEmotion)

	// Rutas con datos del usuario: requieren access token.
	protected := r.Group("/", JWTAuthMiddleware(jwtServ))

	assessRoutes := protected.Group("assessment")
	assessRoutes.GET("/questions", assessH.GetQuestions)
	assessRoutes.POST("/start", assessH.StartSession)
	assessRoutes.POST("/answers", assessH.RecordAnswer)
	assessRoutes.POST("/submit", assessH.Submit)

	protected.POST("face/analyze", faceH.Analyze)
	protected.POST("ecg/upload", ecgH.Upload)
	protected.GET("history", recH.GetHistory)

	return r
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
