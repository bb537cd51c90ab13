package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gita-wellness/internal/assessment"
	"gita-wellness/internal/domain"
	"gita-wellness/internal/recommend"
	"gita-wellness/internal/service"
)

type fakeQuestionBank struct {
	questions []domain.Question
}

func (f *fakeQuestionBank) ListAll(_ context.Context) ([]domain.Question, error) {
	return f.questions, nil
}

type fakeMantraBank struct {
	byType map[domain.EmotionType][]domain.Mantra
}

func (f *fakeMantraBank) FindByEmotionType(_ context.Context, t domain.EmotionType) ([]domain.Mantra, error) {
	return f.byType[t], nil
}

type fakeStoryBank struct{}

func (f *fakeStoryBank) FindByEmotionType(_ context.Context, _ domain.EmotionType) ([]domain.Story, error) {
	return nil, nil
}

type fakeSongBank struct{}

func (f *fakeSongBank) FindByEmotionType(_ context.Context, _ domain.EmotionType) ([]domain.Song, error) {
	return nil, nil
}

type fakeHistoryRepo struct {
	assessments []domain.AssessmentResult
}

func (f *fakeHistoryRepo) InsertAssessmentResult(_ context.Context, r domain.AssessmentResult) error {
	f.assessments = append(f.assessments, r)
	return nil
}

func (f *fakeHistoryRepo) InsertFaceAnalysis(_ context.Context, _ domain.FaceAnalysis) error {
	return nil
}

func (f *fakeHistoryRepo) InsertECGReport(_ context.Context, _ domain.ECGReport) error {
	return nil
}

func (f *fakeHistoryRepo) ListRecentByUser(_ context.Context, _ string, _ int) ([]domain.HistoryEntry, error) {
	return []domain.HistoryEntry{
		{ID: "h1", Kind: "assessment", Summary: "Emotional Score: 4.0/5"},
	}, nil
}

func setupAssessmentRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	bank := &fakeQuestionBank{}
	for i := 1; i <= 4; i++ {
		bank.questions = append(bank.questions, domain.Question{
			ID:   i,
			Text: fmt.Sprintf("Question %d", i),
			Options: []domain.QuestionOption{
				{ID: 1, Text: "Rarely", Value: 1},
				{ID: 2, Text: "Often", Value: 5},
			},
		})
	}

	userRepo := newMockUserRepo()
	userRepo.usersByID["u1"] = domain.User{ID: "u1", Email: "user@example.com"}

	logger := zap.NewNop()
	jwtSvc := testJWTService()
	store := assessment.NewStore(assessment.NewMemoryKV(), bank)
	resolver := recommend.NewResolver(&fakeMantraBank{}, &fakeStoryBank{}, &fakeSongBank{}, logger)
	history := &fakeHistoryRepo{}

	assessServ := service.NewAssessmentService(logger, store, resolver, history, userRepo, nil)
	userServ := service.NewUserService(logger, userRepo)

	userH := NewUserHandler(logger, userServ, jwtSvc)
	assessH := NewAssessmentHandler(logger, assessServ)
	faceH := NewFaceHandler(logger, nil)
	ecgH := NewECGHandler(logger, nil)
	recH := NewRecommendationHandler(logger, resolver, history)

	r := NewRouter(logger, jwtSvc, userH, assessH, faceH, ecgH, recH)

	pair, err := jwtSvc.GeneratePair(domain.User{ID: "u1", Email: "user@example.com"})
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}
	return r, pair.AccessToken
}

func authedRequest(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		payload, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(rec, req)
	return rec
}

func TestAssessmentFlowOverHTTP(t *testing.T) {
	r, token := setupAssessmentRouter(t)

	rec := authedRequest(r, http.MethodGet, "/assessment/questions", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get questions: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var qResp struct {
		Questions []domain.Question `json:"questions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &qResp); err != nil {
		t.Fatalf("decode questions: %v", err)
	}
	if len(qResp.Questions) != 4 {
		t.Fatalf("expected 4 questions, got %d", len(qResp.Questions))
	}

	// enviar sin responder todo
	rec = authedRequest(r, http.MethodPost, "/assessment/submit", token, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on incomplete submit, got %d", rec.Code)
	}

	for _, q := range qResp.Questions {
		rec = authedRequest(r, http.MethodPost, "/assessment/answers", token, map[string]any{
			"question_id": q.ID,
			"option":      map[string]any{"id": 2, "text": "Often", "value": 5},
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("record answer: expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	}

	rec = authedRequest(r, http.MethodPost, "/assessment/submit", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("submit: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var outcome service.AssessmentOutcome
	if err := json.Unmarshal(rec.Body.Bytes(), &outcome); err != nil {
		t.Fatalf("decode outcome: %v", err)
	}
	if outcome.Score != 5.0 {
		t.Fatalf("expected score 5.0, got %v", outcome.Score)
	}
	if outcome.EmotionType != domain.EmotionVeryPositive {
		t.Fatalf("expected very_positive, got %s", outcome.EmotionType)
	}
}

func TestAssessmentRejectsUnknownQuestion(t *testing.T) {
	r, token := setupAssessmentRouter(t)

	if rec := authedRequest(r, http.MethodGet, "/assessment/questions", token, nil); rec.Code != http.StatusOK {
		t.Fatalf("get questions: expected 200, got %d", rec.Code)
	}

	rec := authedRequest(r, http.MethodPost, "/assessment/answers", token, map[string]any{
		"question_id": 999,
		"option":      map[string]any{"id": 1, "value": 3},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown question, got %d", rec.Code)
	}
}

func TestAssessmentRoutesRequireAuth(t *testing.T) {
	r, _ := setupAssessmentRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/assessment/questions", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestRecommendationsEndpointNeverFails(t *testing.T) {
	r, _ := setupAssessmentRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/recommendations/nonexistent_category", nil)
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var bundle domain.RecommendationBundle
	if err := json.Unmarshal(rec.Body.Bytes(), &bundle); err != nil {
		t.Fatalf("decode bundle: %v", err)
	}
	if bundle.EmotionType != domain.EmotionNeutral {
		t.Fatalf("expected neutral fallback, got %s", bundle.EmotionType)
	}
	if bundle.Mantra.Text == "" || bundle.Song.URL == "" {
		t.Fatalf("expected built-in fallback content: %+v", bundle)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	r, token := setupAssessmentRouter(t)

	rec := authedRequest(r, http.MethodGet, "/history", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		History []domain.HistoryEntry `json:"history"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(resp.History) != 1 || resp.History[0].Kind != "assessment" {
		t.Fatalf("unexpected history: %+v", resp.History)
	}
}
