package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"gita-wellness/internal/domain"
	"gita-wellness/internal/emotion"
	"gita-wellness/internal/facepp"
)

type mockDetector struct {
	confidences map[string]float64
	err         error
}

func (m *mockDetector) DetectEmotions(_ context.Context, _ string) (map[string]float64, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.confidences, nil
}

func newTestFaceService(detector *mockDetector, history *mockHistoryRepo, users *mockUserRepo, sender *mockResultSender) *FaceService {
	resolver := testResolver(map[domain.EmotionType][]domain.Mantra{
		"happy": {{ID: 7, Text: "Ananda brahma", EmotionType: "happy"}},
	})
	return NewFaceService(zap.NewNop(), detector, resolver, history, users, sender)
}

func TestFaceServiceAnalyze(t *testing.T) {
	detector := &mockDetector{confidences: map[string]float64{
		"happiness": 82.5,
		"sadness":   10.0,
		"contempt":  95.0, // fuera del vocabulario, se ignora
	}}
	history := &mockHistoryRepo{}
	users := newMockUserRepo()
	users.usersByID["u1"] = domain.User{ID: "u1", Email: "ana@example.com", DisplayName: "Ana"}
	sender := &mockResultSender{}
	svc := newTestFaceService(detector, history, users, sender)

	outcome, err := svc.Analyze(context.Background(), "u1", "base64data")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if outcome.Emotion != "happy" {
		t.Fatalf("expected happy, got %q", outcome.Emotion)
	}
	if outcome.Confidence != 0.825 {
		t.Fatalf("expected confidence 0.825, got %v", outcome.Confidence)
	}
	if outcome.Bundle.Mantra.Text != "Ananda brahma" {
		t.Fatalf("unexpected mantra: %q", outcome.Bundle.Mantra.Text)
	}

	if len(history.faces) != 1 {
		t.Fatalf("expected one face record, got %d", len(history.faces))
	}
	if history.faces[0].DetectedEmotion != "happy" {
		t.Fatalf("unexpected saved emotion: %q", history.faces[0].DetectedEmotion)
	}
	if sender.sent != 1 {
		t.Fatalf("expected one email, got %d", sender.sent)
	}
}

func TestFaceServicePropagatesNoFace(t *testing.T) {
	svc := newTestFaceService(&mockDetector{err: facepp.ErrNoFace}, &mockHistoryRepo{}, newMockUserRepo(), &mockResultSender{})

	_, err := svc.Analyze(context.Background(), "u1", "base64data")
	if !errors.Is(err, facepp.ErrNoFace) {
		t.Fatalf("expected ErrNoFace, got %v", err)
	}
}

func TestFaceServicePropagatesNoSignal(t *testing.T) {
	detector := &mockDetector{confidences: map[string]float64{"contempt": 99.0}}
	history := &mockHistoryRepo{}
	sender := &mockResultSender{}
	svc := newTestFaceService(detector, history, newMockUserRepo(), sender)

	_, err := svc.Analyze(context.Background(), "u1", "base64data")
	if !errors.Is(err, emotion.ErrNoSignal) {
		t.Fatalf("expected ErrNoSignal, got %v", err)
	}
	if len(history.faces) != 0 || sender.sent != 0 {
		t.Fatalf("no side effects expected on detection failure")
	}
}

func TestFaceServiceToleratesSideEffectFailures(t *testing.T) {
	detector := &mockDetector{confidences: map[string]float64{"sadness": 60.0}}
	history := &mockHistoryRepo{insertErr: errors.New("db down")}
	users := newMockUserRepo()
	users.usersByID["u1"] = domain.User{ID: "u1", Email: "ana@example.com"}
	sender := &mockResultSender{err: errors.New("smtp down")}
	svc := newTestFaceService(detector, history, users, sender)

	outcome, err := svc.Analyze(context.Background(), "u1", "base64data")
	if err != nil {
		t.Fatalf("analyze should tolerate persistence and email failures: %v", err)
	}
	if outcome.Emotion != "sad" {
		t.Fatalf("expected sad, got %q", outcome.Emotion)
	}
}
