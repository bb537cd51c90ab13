package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"gita-wellness/internal/domain"
)

// Repositorios de contenido recomendable, particionado por emotion_type.

type MantraRepository interface {
	FindByEmotionType(ctx context.Context, emotionType domain.EmotionType) ([]domain.Mantra, error)
}

type StoryRepository interface {
	FindByEmotionType(ctx context.Context, emotionType domain.EmotionType) ([]domain.Story, error)
}

type SongRepository interface {
	FindByEmotionType(ctx context.Context, emotionType domain.EmotionType) ([]domain.Song, error)
}

type PgMantraRepository struct {
	pool *pgxpool.Pool
}

func NewPgMantraRepository(pool *pgxpool.Pool) *PgMantraRepository {
	return &PgMantraRepository{pool: pool}
}

func (r *PgMantraRepository) FindByEmotionType(ctx context.Context, emotionType domain.EmotionType) ([]domain.Mantra, error) {
	const query = `
		SELECT id, text, emotion_type, explanation, created_at
		FROM mantras
		WHERE emotion_type = $1
	`

	rows, err := r.pool.Query(ctx, query, string(emotionType))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mantras []domain.Mantra
	for rows.Next() {
		var m domain.Mantra
		if err := rows.Scan(
			&m.ID,
			&m.Text,
			&m.EmotionType,
			&m.Explanation,
			&m.CreatedAt,
		); err != nil {
			return nil, err
		}
		mantras = append(mantras, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return mantras, nil
}

type PgStoryRepository struct {
	pool *pgxpool.Pool
}

func NewPgStoryRepository(pool *pgxpool.Pool) *PgStoryRepository {
	return &PgStoryRepository{pool: pool}
}

func (r *PgStoryRepository) FindByEmotionType(ctx context.Context, emotionType domain.EmotionType) ([]domain.Story, error) {
	const query = `
		SELECT id, theme, emotion_type, story_text, created_at
		FROM stories
		WHERE emotion_type = $1
	`

	rows, err := r.pool.Query(ctx, query, string(emotionType))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stories []domain.Story
	for rows.Next() {
		var s domain.Story
		if err := rows.Scan(
			&s.ID,
			&s.Theme,
			&s.EmotionType,
			&s.StoryText,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		stories = append(stories, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stories, nil
}

type PgSongRepository struct {
	pool *pgxpool.Pool
}

func NewPgSongRepository(pool *pgxpool.Pool) *PgSongRepository {
	return &PgSongRepository{pool: pool}
}

func (r *PgSongRepository) FindByEmotionType(ctx context.Context, emotionType domain.EmotionType) ([]domain.Song, error) {
	const query = `
		SELECT id, title, emotion_type, url, created_at
		FROM songs
		WHERE emotion_type = $1
	`

	rows, err := r.pool.Query(ctx, query, string(emotionType))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var songs []domain.Song
	for rows.Next() {
		var s domain.Song
		if err := rows.Scan(
			&s.ID,
			&s.Title,
			&s.EmotionType,
			&s.URL,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		songs = append(songs, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return songs, nil
}
