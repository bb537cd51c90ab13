package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gita-wellness/internal/domain"
	"gita-wellness/internal/recommend"
	"gita-wellness/internal/repository"
)

// RecommendationHandler expone recomendaciones por categoria y el historial.
type RecommendationHandler struct {
	logger   *zap.Logger
	resolver *recommend.Resolver
	history  repository.HistoryRepository
}

func NewRecommendationHandler(logger *zap.Logger, resolver *recommend.Resolver, history repository.HistoryRepository) *RecommendationHandler {
	return &RecommendationHandler{
		logger:   logger,
		resolver: resolver,
		history:  history,
	}
}

// GetByEmotion maneja GET /recommendations/:emotion. Categorias desconocidas
// degradan a neutral, nunca devuelven error.
func (h *RecommendationHandler) GetByEmotion(c *gin.Context) {
	emotionType := domain.EmotionType(c.Param("emotion"))
	bundle := h.resolver.Resolve(c.Request.Context(), emotionType)
	c.JSON(http.StatusOK, bundle)
}

// GetHistory maneja GET /history.
func (h *RecommendationHandler) GetHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	entries, err := h.history.ListRecentByUser(c.Request.Context(), userID, limit)
	if err != nil {
		h.logger.Error("list history failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load history"})
		return
	}
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}

	c.JSON(http.StatusOK, gin.H{"history": entries})
}
