package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gita-wellness/internal/domain"
	"gita-wellness/internal/email"
	"gita-wellness/internal/emotion"
	"gita-wellness/internal/facepp"
	"gita-wellness/internal/recommend"
	"gita-wellness/internal/repository"
)

// FaceService analiza una selfie y resuelve recomendaciones por la emocion
// dominante detectada.
type FaceService struct {
	logger   *zap.Logger
	detector facepp.Detector
	resolver *recommend.Resolver
	history  repository.HistoryRepository
	users    repository.UserRepository
	sender   email.Sender
}

func NewFaceService(
	logger *zap.Logger,
	detector facepp.Detector,
	resolver *recommend.Resolver,
	history repository.HistoryRepository,
	users repository.UserRepository,
	sender email.Sender,
) *FaceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FaceService{
		logger:   logger,
		detector: detector,
		resolver: resolver,
		history:  history,
		users:    users,
		sender:   sender,
	}
}

type FaceOutcome struct {
	Emotion    string                      `json:"emotion"`
	Confidence float64                     `json:"confidence"`
	Bundle     domain.RecommendationBundle `json:"recommendations"`
}

// Analyze detecta la emocion dominante en la imagen. Errores de deteccion
// (sin cara, sin senal util) se propagan; el historial y el correo son
// best-effort.
func (s *FaceService) Analyze(ctx context.Context, userID, imageBase64 string) (FaceOutcome, error) {
	confidences, err := s.detector.DetectEmotions(ctx, imageBase64)
	if err != nil {
		return FaceOutcome{}, err
	}

	reading, err := emotion.FromFaceAttributes(confidences)
	if err != nil {
		return FaceOutcome{}, err
	}

	if s.history != nil {
		analysis := domain.FaceAnalysis{
			ID:              uuid.NewString(),
			UserID:          userID,
			DetectedEmotion: reading.Emotion,
			Confidence:      reading.Confidence,
			CreatedAt:       time.Now().UTC(),
		}
		if err := s.history.InsertFaceAnalysis(ctx, analysis); err != nil {
			s.logger.Warn("guardar analisis facial fallo", zap.Error(err), zap.String("user_id", userID))
		}
	}

	bundle := s.resolver.ResolveForLabel(ctx, reading.Emotion)

	s.sendFaceEmail(ctx, userID, reading, bundle)

	return FaceOutcome{
		Emotion:    reading.Emotion,
		Confidence: reading.Confidence,
		Bundle:     bundle,
	}, nil
}

func (s *FaceService) sendFaceEmail(ctx context.Context, userID string, reading emotion.FaceReading, bundle domain.RecommendationBundle) {
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
	msg := email.ResultMessage{
		Title:    fmt.Sprintf("You look %s today", reading.Emotion),
		Subtitle: fmt.Sprintf("Detected with %.0f%% confidence", reading.Confidence*100),
		Bundle:   bundle,
	}
	if err := s.sender.SendResult(ctx, user.Email, user.DisplayName, msg); err != nil {
		s.logger.Warn("enviar correo de resultado fallo", zap.Error(err), zap.String("user_id", userID))
	}
}
