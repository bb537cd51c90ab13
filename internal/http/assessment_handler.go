package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gita-wellness/internal/assessment"
	"gita-wellness/internal/domain"
	"gita-wellness/internal/service"
)

// AssessmentHandler mantiene dependencias para el cuestionario psicometrico.
type AssessmentHandler struct {
	logger *zap.Logger
	serv   *service.AssessmentService
}

func NewAssessmentHandler(logger *zap.Logger, serv *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{
		logger: logger,
		serv:   serv,
	}
}

// GetQuestions maneja GET /assessment/questions. Devuelve el sorteo vigente
// si hay sesion en curso; si no, sortea una sesion nueva.
func (h *AssessmentHandler) GetQuestions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	questions, err := h.serv.SessionQuestions(c.Request.Context(), userID)
	if errors.Is(err, assessment.ErrNoSession) {
		questions, err = h.serv.StartSession(c.Request.Context(), userID)
	}
	if err != nil {
		if errors.Is(err, assessment.ErrNoQuestions) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "question bank unavailable"})
			return
		}
		h.logger.Error("get questions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load questions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

// StartSession maneja POST /assessment/start. Descarta cualquier sesion
// anterior y sortea preguntas nuevas.
func (h *AssessmentHandler) StartSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	questions, err := h.serv.StartSession(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, assessment.ErrNoQuestions) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "question bank unavailable"})
			return
		}
		h.logger.Error("start session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"questions": questions})
}

// RecordAnswer maneja POST /assessment/answers.
func (h *AssessmentHandler) RecordAnswer(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		QuestionID int `json:"question_id" binding:"required"`
		Option     struct {
			ID    int    `json:"id" binding:"required"`
			Text  string `json:"text"`
			Value int    `json:"value" binding:"required,min=1,max=5"`
		} `json:"option" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid answer request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.serv.RecordAnswer(c.Request.Context(), userID, req.QuestionID, domain.QuestionOption{
		ID:    req.Option.ID,
		Text:  req.Option.Text,
		Value: req.Option.Value,
	})
	if err != nil {
		switch {
		case errors.Is(err, assessment.ErrNoSession):
			c.JSON(http.StatusConflict, gin.H{"error": "no session in progress"})
			return
		case errors.Is(err, assessment.ErrUnknownQuestion):
			c.JSON(http.StatusBadRequest, gin.H{"error": "question not part of current session"})
			return
		default:
			h.logger.Error("record answer failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record answer"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}

// Submit maneja POST /assessment/submit.
func (h *AssessmentHandler) Submit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	outcome, err := h.serv.Submit(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, assessment.ErrNoSession):
			c.JSON(http.StatusConflict, gin.H{"error": "no session in progress"})
			return
		case errors.Is(err, service.ErrIncompleteSession):
			c.JSON(http.StatusConflict, gin.H{"error": "answer all questions before submitting"})
			return
		default:
			h.logger.Error("submit failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not submit assessment"})
			return
		}
	}

	c.JSON(http.StatusOK, outcome)
}

// currentUserID saca el user id de los claims del middleware JWT.
func currentUserID(c *gin.Context) (string, bool) {
	claims, ok := GetAuthClaims(c)
	if !ok || claims.UserID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		c.Abort()
		return "", false
	}
	return claims.UserID, true
}
