package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gita-wellness/internal/emotion"
	"gita-wellness/internal/facepp"
	"gita-wellness/internal/service"
)

// FaceHandler mantiene dependencias para el analisis de emocion facial.
type FaceHandler struct {
	logger *zap.Logger
	serv   *service.FaceService
}

func NewFaceHandler(logger *zap.Logger, serv *service.FaceService) *FaceHandler {
	return &FaceHandler{
		logger: logger,
		serv:   serv,
	}
}

// Analyze maneja POST /face/analyze.
func (h *FaceHandler) Analyze(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid face analyze request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	outcome, err := h.serv.Analyze(c.Request.Context(), userID, req.ImageBase64)
	if err != nil {
		switch {
		case errors.Is(err, facepp.ErrNoFace):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no face detected in the image"})
			return
		case errors.Is(err, emotion.ErrNoSignal):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "could not read an emotion from the face"})
			return
		default:
			h.logger.Error("face analyze failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "emotion detection unavailable"})
			return
		}
	}

	c.JSON(http.StatusOK, outcome)
}
