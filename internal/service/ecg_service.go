package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gita-wellness/internal/domain"
	"gita-wellness/internal/email"
	"gita-wellness/internal/emotion"
	"gita-wellness/internal/recommend"
	"gita-wellness/internal/repository"
	"gita-wellness/internal/storage"
)

// ECGAnalysis es el resultado crudo del analizador de senal.
type ECGAnalysis struct {
	HeartRate   int
	QRSInterval int
	StressLevel string
}

// ECGService recibe un archivo de ECG, lo sube a storage, lo analiza y
// resuelve recomendaciones por el nivel de estres.
type ECGService struct {
	logger   *zap.Logger
	uploader storage.Uploader
	resolver *recommend.Resolver
	history  repository.HistoryRepository
	users    repository.UserRepository
	sender   email.Sender

	// analyzeFn permite inyectar el analizador en tests.
	analyzeFn func(data []byte) ECGAnalysis
}

var (
	ErrEmptyECGFile       = errors.New("ecg file is empty")
	ErrUnsupportedECGType = errors.New("unsupported ecg file type")
)

func NewECGService(
	logger *zap.Logger,
	uploader storage.Uploader,
	resolver *recommend.Resolver,
	history repository.HistoryRepository,
	users repository.UserRepository,
	sender email.Sender,
) *ECGService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ECGService{
		logger:    logger,
		uploader:  uploader,
		resolver:  resolver,
		history:   history,
		users:     users,
		sender:    sender,
		analyzeFn: analyzeECG,
	}
}

// analyzeECG simula la extraccion de metricas de la senal. Los rangos
// corresponden a lecturas plausibles en reposo.
func analyzeECG(_ []byte) ECGAnalysis {
	levels := []string{"Low", "Moderate", "High"}
	return ECGAnalysis{
		HeartRate:   65 + rand.Intn(31),
		QRSInterval: 80 + rand.Intn(41),
		StressLevel: levels[rand.Intn(len(levels))],
	}
}

type ECGOutcome struct {
	FileURL     string                      `json:"file_url"`
	FileType    string                      `json:"file_type"`
	HeartRate   int                         `json:"heart_rate"`
	QRSInterval int                         `json:"qrs_interval"`
	StressLevel string                      `json:"stress_level"`
	EmotionType domain.EmotionType          `json:"emotion_type"`
	Bundle      domain.RecommendationBundle `json:"recommendations"`
}

// Upload procesa un archivo de ECG de punta a punta. La subida a storage,
// el historial y el correo son best-effort: un fallo ahi se registra y el
// analisis continua.
func (s *ECGService) Upload(ctx context.Context, userID, filename, contentType string, data []byte) (ECGOutcome, error) {
	if len(data) == 0 {
		return ECGOutcome{}, ErrEmptyECGFile
	}
	fileType, err := classifyECGFile(filename, contentType)
	if err != nil {
		return ECGOutcome{}, err
	}

	fileURL := ""
	if s.uploader != nil {
		objectPath := fmt.Sprintf("%s/%s%s", userID, uuid.NewString(), path.Ext(filename))
		url, upErr := s.uploader.Upload(ctx, objectPath, contentType, data)
		if upErr != nil {
			s.logger.Warn("subir archivo ecg fallo", zap.Error(upErr), zap.String("user_id", userID))
		} else {
			fileURL = url
		}
	}

	analysis := s.analyzeFn(data)
	emotionType := emotion.FromStressLevel(analysis.StressLevel)
	bundle := s.resolver.Resolve(ctx, emotionType)

	if s.history != nil {
		report := domain.ECGReport{
			ID:          uuid.NewString(),
			UserID:      userID,
			FileURL:     fileURL,
			FileType:    fileType,
			HeartRate:   analysis.HeartRate,
			QRSInterval: analysis.QRSInterval,
			StressLevel: analysis.StressLevel,
			CreatedAt:   time.Now().UTC(),
		}
		if err := s.history.InsertECGReport(ctx, report); err != nil {
			s.logger.Warn("guardar reporte ecg fallo", zap.Error(err), zap.String("user_id", userID))
		}
	}

	s.sendECGEmail(ctx, userID, analysis, emotionType, bundle)

	return ECGOutcome{
		FileURL:     fileURL,
		FileType:    fileType,
		HeartRate:   analysis.HeartRate,
		QRSInterval: analysis.QRSInterval,
		StressLevel: analysis.StressLevel,
		EmotionType: emotionType,
		Bundle:      bundle,
	}, nil
}

func classifyECGFile(filename, contentType string) (string, error) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	ext := strings.ToLower(path.Ext(filename))
	switch {
	case ct == "application/pdf" || ext == ".pdf":
		return "pdf", nil
	case strings.HasPrefix(ct, "image/") || ext == ".png" || ext == ".jpg" || ext == ".jpeg":
		return "image", nil
	default:
		return "", ErrUnsupportedECGType
	}
}

func (s *ECGService) sendECGEmail(ctx context.Context, userID string, analysis ECGAnalysis, emotionType domain.EmotionType, bundle domain.RecommendationBundle) {
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
		Title:    fmt.Sprintf("Heart Rate: %d BPM", analysis.HeartRate),
		Subtitle: fmt.Sprintf("Stress level: %s (%s)", analysis.StressLevel, emotionType),
		Bundle:   bundle,
	}
	if err := s.sender.SendResult(ctx, user.Email, user.DisplayName, msg); err != nil {
		s.logger.Warn("enviar correo de resultado fallo", zap.Error(err), zap.String("user_id", userID))
	}
}
