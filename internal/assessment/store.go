package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strconv"

	"gita-wellness/internal/domain"
	"gita-wellness/internal/emotion"
	"gita-wellness/internal/repository"
)

// MaxQuestions es la regla de producto: nunca mas de 10 preguntas por sesion.
const MaxQuestions = 10

var (
	ErrNoSession       = errors.New("no assessment session in progress")
	ErrUnknownQuestion = errors.New("question not part of current session")
	ErrNoQuestions     = errors.New("question bank is empty")
)

// Store mantiene el cuestionario sorteado y las respuestas parciales de una
// evaluacion en curso. El sorteo queda fijo por la vida de la sesion; volver
// a una pregunta anterior muestra las mismas preguntas, no resortea. Una
// sesion abandonada deja estado viejo que el proximo Start sobreescribe.
type Store struct {
	kv        KV
	questions repository.QuestionRepository
	perm      func(n int) []int // permutacion uniforme para el sorteo
}

func NewStore(kv KV, questions repository.QuestionRepository) *Store {
	return &Store{
		kv:        kv,
		questions: questions,
		perm:      rand.Perm,
	}
}

func questionsKey(userID string) string { return "assessment:questions:" + userID }
func responsesKey(userID string) string { return "assessment:responses:" + userID }

// Start sortea min(size, 10) preguntas distintas del banco y persiste la
// secuencia. Si el banco tiene menos, se usan todas en vez de fallar.
// Cualquier sesion anterior del usuario queda descartada.
func (s *Store) Start(ctx context.Context, userID string, size int) ([]domain.Question, error) {
	all, err := s.questions.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	if len(all) == 0 {
		return nil, ErrNoQuestions
	}

	if size <= 0 || size > MaxQuestions {
		size = MaxQuestions
	}
	if size > len(all) {
		size = len(all)
	}

	drawn := make([]domain.Question, 0, size)
	for _, idx := range s.perm(len(all))[:size] {
		drawn = append(drawn, all[idx])
	}

	raw, err := json.Marshal(drawn)
	if err != nil {
		return nil, err
	}
	if err := s.kv.Set(ctx, questionsKey(userID), raw); err != nil {
		return nil, fmt.Errorf("persist session questions: %w", err)
	}
	// Respuestas de una sesion abandonada no deben contaminar la nueva.
	if err := s.kv.Del(ctx, responsesKey(userID)); err != nil {
		return nil, fmt.Errorf("reset session responses: %w", err)
	}

	return drawn, nil
}

// Questions devuelve la secuencia sorteada de la sesion en curso.
func (s *Store) Questions(ctx context.Context, userID string) ([]domain.Question, error) {
	raw, err := s.kv.Get(ctx, questionsKey(userID))
	if errors.Is(err, ErrKeyNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	var questions []domain.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// RecordAnswer guarda la opcion elegida para una pregunta de la sesion.
// Un identificador que no pertenece al sorteo es error del llamador.
// Re-responder la misma pregunta sobreescribe (navegacion hacia atras).
func (s *Store) RecordAnswer(ctx context.Context, userID string, questionID int, option domain.QuestionOption) error {
	questions, err := s.Questions(ctx, userID)
	if err != nil {
		return err
	}

	known := false
	for _, q := range questions {
		if q.ID == questionID {
			known = true
			break
		}
	}
	if !known {
		return ErrUnknownQuestion
	}

	responses, err := s.Responses(ctx, userID)
	if err != nil {
		return err
	}
	responses[strconv.Itoa(questionID)] = option

	raw, err := json.Marshal(responses)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, responsesKey(userID), raw)
}

// Responses devuelve el mapa pregunta->opcion acumulado hasta ahora.
func (s *Store) Responses(ctx context.Context, userID string) (map[string]domain.QuestionOption, error) {
	raw, err := s.kv.Get(ctx, responsesKey(userID))
	if errors.Is(err, ErrKeyNotFound) {
		return make(map[string]domain.QuestionOption), nil
	}
	if err != nil {
		return nil, err
	}
	responses := make(map[string]domain.QuestionOption)
	if err := json.Unmarshal(raw, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

// CurrentAverage calcula el promedio redondeado a un decimal. complete es
// false hasta que todas las preguntas sorteadas tengan respuesta; el orden
// de respuesta no importa, solo el conjunto pregunta->valor.
func (s *Store) CurrentAverage(ctx context.Context, userID string) (score float64, complete bool, err error) {
	questions, err := s.Questions(ctx, userID)
	if err != nil {
		return 0, false, err
	}
	responses, err := s.Responses(ctx, userID)
	if err != nil {
		return 0, false, err
	}
	if len(responses) < len(questions) {
		return 0, false, nil
	}

	values := make([]int, 0, len(questions))
	for _, q := range questions {
		option, ok := responses[strconv.Itoa(q.ID)]
		if !ok {
			return 0, false, nil
		}
		values = append(values, option.Value)
	}
	return emotion.AverageScore(values), true, nil
}

// Clear borra las dos claves persistidas; la proxima sesion resortea.
func (s *Store) Clear(ctx context.Context, userID string) error {
	return s.kv.Del(ctx, questionsKey(userID), responsesKey(userID))
}
