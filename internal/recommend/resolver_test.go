package recommend

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"gita-wellness/internal/domain"
)

type fakeContentRepo struct {
	mantras map[domain.EmotionType][]domain.Mantra
	stories map[domain.EmotionType][]domain.Story
	songs   map[domain.EmotionType][]domain.Song
	err     error
}

func (f *fakeContentRepo) FindByEmotionType(_ context.Context, t domain.EmotionType) ([]domain.Mantra, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.mantras[t], nil
}

type fakeStoryRepo struct{ *fakeContentRepo }

func (f fakeStoryRepo) FindByEmotionType(_ context.Context, t domain.EmotionType) ([]domain.Story, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.stories[t], nil
}

type fakeSongRepo struct{ *fakeContentRepo }

func (f fakeSongRepo) FindByEmotionType(_ context.Context, t domain.EmotionType) ([]domain.Song, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.songs[t], nil
}

func newResolverWith(f *fakeContentRepo) *Resolver {
	return NewResolver(f, fakeStoryRepo{f}, fakeSongRepo{f}, zap.NewNop())
}

func TestResolveSingleRecordIsAlwaysReturned(t *testing.T) {
	repo := &fakeContentRepo{
		mantras: map[domain.EmotionType][]domain.Mantra{
			domain.EmotionNegative: {{ID: 7, Text: "Om Namah Shivaya", Explanation: "solo"}},
		},
		stories: map[domain.EmotionType][]domain.Story{
			domain.EmotionNegative: {{ID: 3, StoryText: "unica historia"}},
		},
		songs: map[domain.EmotionType][]domain.Song{
			domain.EmotionNegative: {{ID: 9, Title: "unica", URL: "https://example.com/s"}},
		},
	}
	r := newResolverWith(repo)

	// Caso degenerado de seleccion aleatoria: un solo registro por tipo.
	for i := 0; i < 50; i++ {
		bundle := r.Resolve(context.Background(), domain.EmotionNegative)
		if bundle.Mantra.ID != 7 || bundle.Story.ID != 3 || bundle.Song.ID != 9 {
			t.Fatalf("iteration %d: expected the single records, got %+v", i, bundle)
		}
	}
}

func TestResolveFallsBackToNeutralThenConstant(t *testing.T) {
	// Solo hay mantras neutral; historias y canciones vacias en ambos niveles.
	repo := &fakeContentRepo{
		mantras: map[domain.EmotionType][]domain.Mantra{
			domain.EmotionNeutral: {{ID: 1, Text: "So Hum"}},
		},
	}
	r := newResolverWith(repo)

	bundle := r.Resolve(context.Background(), "nonexistent_category")
	if bundle.EmotionType != domain.EmotionNeutral {
		t.Fatalf("unknown category must coerce to neutral, got %q", bundle.EmotionType)
	}
	if bundle.Mantra.ID != 1 {
		t.Fatalf("expected neutral-tier mantra, got %+v", bundle.Mantra)
	}
	if bundle.Story.StoryText != defaultStory.StoryText {
		t.Fatalf("expected built-in story constant, got %+v", bundle.Story)
	}
	if bundle.Song.Title != tierSongs[domain.EmotionNeutral].Title {
		t.Fatalf("expected built-in neutral song, got %+v", bundle.Song)
	}
}

func TestResolveDegradesOnRepositoryError(t *testing.T) {
	repo := &fakeContentRepo{err: errors.New("connection refused")}
	r := newResolverWith(repo)

	// El error de transporte degrada igual que un match vacio.
	bundle := r.Resolve(context.Background(), domain.EmotionNegative)
	if bundle.Mantra.Text != tierMantras[domain.EmotionNegative].Text {
		t.Fatalf("expected negative-tier mantra constant, got %+v", bundle.Mantra)
	}
	if bundle.Song.URL != tierSongs[domain.EmotionNegative].URL {
		t.Fatalf("expected negative-tier song constant, got %+v", bundle.Song)
	}
	if bundle.Story.StoryText == "" {
		t.Fatalf("expected story constant, got empty story")
	}
}

func TestResolveKindsAreIndependent(t *testing.T) {
	// Falta el mantra de la categoria pero la cancion existe: la cancion no
	// debe degradar por culpa del mantra.
	repo := &fakeContentRepo{
		songs: map[domain.EmotionType][]domain.Song{
			domain.EmotionHealing: {{ID: 4, Title: "Healing Sounds for Recovery", URL: "https://example.com/h"}},
		},
	}
	r := newResolverWith(repo)

	bundle := r.Resolve(context.Background(), domain.EmotionHealing)
	if bundle.Song.ID != 4 {
		t.Fatalf("expected exact-match song, got %+v", bundle.Song)
	}
	if bundle.Mantra.Text != genericMantra.Text {
		t.Fatalf("expected generic mantra constant for fine-grained category, got %+v", bundle.Mantra)
	}
}

func TestResolveUniformSelectionUsesPick(t *testing.T) {
	repo := &fakeContentRepo{
		mantras: map[domain.EmotionType][]domain.Mantra{
			domain.EmotionPositive: {{ID: 1}, {ID: 2}, {ID: 3}},
		},
	}
	r := newResolverWith(repo)
	r.pick = func(n int) int { return n - 1 }

	m := r.ResolveMantra(context.Background(), domain.EmotionPositive)
	if m.ID != 3 {
		t.Fatalf("expected pick to choose index n-1, got %+v", m)
	}
}

func TestResolveForLabelUsesFaceFallbackTable(t *testing.T) {
	repo := &fakeContentRepo{}
	r := newResolverWith(repo)

	bundle := r.ResolveForLabel(context.Background(), domain.FaceSad)
	if bundle.Mantra.Text != faceMantras[domain.FaceSad].Text {
		t.Fatalf("expected sad face mantra, got %+v", bundle.Mantra)
	}
	if bundle.EmotionType != domain.EmotionType(domain.FaceSad) {
		t.Fatalf("label must be kept as resolution key, got %q", bundle.EmotionType)
	}
}
