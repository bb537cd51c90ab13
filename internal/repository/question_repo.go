package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"gita-wellness/internal/domain"
)

// QuestionRepository define el contrato de lectura del banco de preguntas.
type QuestionRepository interface {
	ListAll(ctx context.Context) ([]domain.Question, error)
}

// PgQuestionRepository implementa QuestionRepository usando pgxpool.
type PgQuestionRepository struct {
	pool *pgxpool.Pool
}

func NewPgQuestionRepository(pool *pgxpool.Pool) *PgQuestionRepository {
	return &PgQuestionRepository{pool: pool}
}

func (r *PgQuestionRepository) ListAll(ctx context.Context) ([]domain.Question, error) {
	const query = `
		SELECT id, text, options, category, created_at
		FROM questions
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var q domain.Question
		var rawOptions []byte

		if err := rows.Scan(
			&q.ID,
			&q.Text,
			&rawOptions,
			&q.Category,
			&q.CreatedAt,
		); err != nil {
			return nil, err
		}
		// Las opciones viven como JSONB en la tabla.
		if err := json.Unmarshal(rawOptions, &q.Options); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return questions, nil
}
