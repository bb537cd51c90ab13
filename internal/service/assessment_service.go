package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gita-wellness/internal/assessment"
	"gita-wellness/internal/domain"
	"gita-wellness/internal/email"
	"gita-wellness/internal/emotion"
	"gita-wellness/internal/recommend"
	"gita-wellness/internal/repository"
)

// AssessmentService coordina el cuestionario psicometrico completo: sesion,
// respuestas, clasificacion y recomendaciones.
type AssessmentService struct {
	logger   *zap.Logger
	sessions *assessment.Store
	resolver *recommend.Resolver
	history  repository.HistoryRepository
	users    repository.UserRepository
	sender   email.Sender
}

var ErrIncompleteSession = errors.New("assessment session incomplete")

func NewAssessmentService(
	logger *zap.Logger,
	sessions *assessment.Store,
	resolver *recommend.Resolver,
	history repository.HistoryRepository,
	users repository.UserRepository,
	sender email.Sender,
) *AssessmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssessmentService{
		logger:   logger,
		sessions: sessions,
		resolver: resolver,
		history:  history,
		users:    users,
		sender:   sender,
	}
}

type AssessmentOutcome struct {
	Score       float64                     `json:"score"`
	EmotionType domain.EmotionType          `json:"emotion_type"`
	Bundle      domain.RecommendationBundle `json:"recommendations"`
}

// StartSession sortea las preguntas de la sesion. Una sesion anterior sin
// enviar queda descartada.
func (s *AssessmentService) StartSession(ctx context.Context, userID string) ([]domain.Question, error) {
	return s.sessions.Start(ctx, userID, assessment.MaxQuestions)
}

// SessionQuestions devuelve las preguntas ya sorteadas sin volver a sortear.
func (s *AssessmentService) SessionQuestions(ctx context.Context, userID string) ([]domain.Question, error) {
	return s.sessions.Questions(ctx, userID)
}

func (s *AssessmentService) RecordAnswer(ctx context.Context, userID string, questionID int, option domain.QuestionOption) error {
	return s.sessions.RecordAnswer(ctx, userID, questionID, option)
}

// Submit promedia las respuestas, clasifica la emocion y resuelve las
// recomendaciones. El guardado en historial y el correo son best-effort:
// un fallo ahi nunca bloquea el resultado.
func (s *AssessmentService) Submit(ctx context.Context, userID string) (AssessmentOutcome, error) {
	avg, complete, err := s.sessions.CurrentAverage(ctx, userID)
	if err != nil {
		return AssessmentOutcome{}, err
	}
	if !complete {
		return AssessmentOutcome{}, ErrIncompleteSession
	}

	score := emotion.RoundScore(avg)
	emotionType := emotion.FromScore(score)
	bundle := s.resolver.Resolve(ctx, emotionType)

	responses, err := s.sessions.Responses(ctx, userID)
	if err != nil {
		s.logger.Warn("leer respuestas de sesion fallo", zap.Error(err), zap.String("user_id", userID))
		responses = map[string]domain.QuestionOption{}
	}

	if s.history != nil {
		result := domain.AssessmentResult{
			ID:                uuid.NewString(),
			UserID:            userID,
			Responses:         responses,
			EmotionalScore:    score,
			RecommendedMantra: bundle.Mantra.Text,
			CreatedAt:         time.Now().UTC(),
		}
		if err := s.history.InsertAssessmentResult(ctx, result); err != nil {
			s.logger.Warn("guardar resultado de cuestionario fallo", zap.Error(err), zap.String("user_id", userID))
		}
	}

	if err := s.sessions.Clear(ctx, userID); err != nil {
		s.logger.Warn("limpiar sesion fallo", zap.Error(err), zap.String("user_id", userID))
	}

	s.sendResultEmail(ctx, userID, email.ResultMessage{
		Title:    fmt.Sprintf("Your emotional score is %.1f/5", score),
		Subtitle: fmt.Sprintf("Emotional state: %s", emotionType),
		Bundle:   bundle,
	})

	return AssessmentOutcome{
		Score:       score,
		EmotionType: emotionType,
		Bundle:      bundle,
	}, nil
}

func (s *AssessmentService) sendResultEmail(ctx context.Context, userID string, msg email.ResultMessage) {
	if s.sender == nil || s.users == nil {
		return
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.logger.Warn("buscar usuario para correo fallo", zap.Error(err), zap.String("user_id", userID))
		return
	}
	if user.Email == "" {
		return
	}
	if err := s.sender.SendResult(ctx, user.Email, user.DisplayName, msg); err != nil {
		s.logger.Warn("enviar correo de resultado fallo", zap.Error(err), zap.String("user_id", userID))
	}
}
