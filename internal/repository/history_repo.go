package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"gita-wellness/internal/domain"
)

// HistoryRepository persiste los registros de resultados. Son append-only:
// la aplicacion nunca los actualiza ni borra.
type HistoryRepository interface {
	InsertAssessmentResult(ctx context.Context, result domain.AssessmentResult) error
	InsertFaceAnalysis(ctx context.Context, analysis domain.FaceAnalysis) error
	InsertECGReport(ctx context.Context, report domain.ECGReport) error
	ListRecentByUser(ctx context.Context, userID string, limit int) ([]domain.HistoryEntry, error)
}

// PgHistoryRepository implementa HistoryRepository usando pgxpool.
type PgHistoryRepository struct {
	pool *pgxpool.Pool
}

func NewPgHistoryRepository(pool *pgxpool.Pool) *PgHistoryRepository {
	return &PgHistoryRepository{pool: pool}
}

func (r *PgHistoryRepository) InsertAssessmentResult(ctx context.Context, result domain.AssessmentResult) error {
	const query = `
		INSERT INTO user_responses (id, user_id, responses, emotional_score, recommended_mantra, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	rawResponses, err := json.Marshal(result.Responses)
	if err != nil {
		return fmt.Errorf("marshal responses: %w", err)
	}

	_, err = r.pool.Exec(ctx, query,
		result.ID,
		result.UserID,
		rawResponses,
		result.EmotionalScore,
		result.RecommendedMantra,
		result.CreatedAt,
	)
	return err
}

func (r *PgHistoryRepository) InsertFaceAnalysis(ctx context.Context, analysis domain.FaceAnalysis) error {
	const query = `
		INSERT INTO face_analysis (id, user_id, detected_emotion, confidence, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		analysis.ID,
		analysis.UserID,
		analysis.DetectedEmotion,
		analysis.Confidence,
		analysis.CreatedAt,
	)
	return err
}

func (r *PgHistoryRepository) InsertECGReport(ctx context.Context, report domain.ECGReport) error {
	const query = `
		INSERT INTO ecg_reports (id, user_id, file_url, file_type, heart_rate, qrs_interval, stress_level, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		report.ID,
		report.UserID,
		report.FileURL,
		report.FileType,
		report.HeartRate,
		report.QRSInterval,
		report.StressLevel,
		report.CreatedAt,
	)
	return err
}

func (r *PgHistoryRepository) ListRecentByUser(ctx context.Context, userID string, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	// Una entrada por registro, las tres tablas unificadas por fecha.
	const query = `
		SELECT id, kind, summary, created_at FROM (
			SELECT id, 'assessment' AS kind,
				'Emotional Score: ' || emotional_score || '/5' AS summary,
				created_at
			FROM user_responses WHERE user_id = $1
			UNION ALL
			SELECT id, 'face' AS kind,
				'Detected Emotion: ' || detected_emotion AS summary,
				created_at
			FROM face_analysis WHERE user_id = $1
			UNION ALL
			SELECT id, 'ecg' AS kind,
				'Heart Rate: ' || heart_rate || ' BPM, Stress: ' || stress_level AS summary,
				created_at
			FROM ecg_reports WHERE user_id = $1
		) history
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var e domain.HistoryEntry
		if err := rows.Scan(&e.ID, &e.Kind, &e.Summary, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
