package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gita-wellness/internal/service"
)

// Limite de tamano para archivos de ECG subidos.
const maxECGFileBytes = 10 << 20

// ECGHandler mantiene dependencias para la subida y analisis de ECG.
type ECGHandler struct {
	logger *zap.Logger
	serv   *service.ECGService
}

func NewECGHandler(logger *zap.Logger, serv *service.ECGService) *ECGHandler {
	return &ECGHandler{
		logger: logger,
		serv:   serv,
	}
}

// Upload maneja POST /ecg/upload con multipart form (campo "file").
func (h *ECGHandler) Upload(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.logger.Warn("invalid ecg upload request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fileHeader.Size > maxECGFileBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("open uploaded file failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxECGFileBytes+1))
	if err != nil {
		h.logger.Error("read uploaded file failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read file"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	outcome, err := h.serv.Upload(c.Request.Context(), userID, fileHeader.Filename, contentType, data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyECGFile), errors.Is(err, service.ErrUnsupportedECGType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		default:
			h.logger.Error("ecg upload failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not process ecg"})
			return
		}
	}

	c.JSON(http.StatusOK, outcome)
}
