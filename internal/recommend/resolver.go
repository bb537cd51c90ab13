package recommend

import (
	"context"
	"math/rand"

	"go.uber.org/zap"

	"gita-wellness/internal/domain"
	"gita-wellness/internal/emotion"
	"gita-wellness/internal/repository"
)

// Resolver arma el RecommendationBundle para una categoria. Cada pieza
// (mantra, historia, cancion) sigue su propia cadena de fallback:
// match exacto -> neutral -> constante incorporada. Fallos de lectura del
// backend degradan igual que un match vacio, nunca se propagan.
type Resolver struct {
	mantras repository.MantraRepository
	stories repository.StoryRepository
	songs   repository.SongRepository
	logger  *zap.Logger
	pick    func(n int) int // indice aleatorio uniforme en [0, n)
}

func NewResolver(
	mantras repository.MantraRepository,
	stories repository.StoryRepository,
	songs repository.SongRepository,
	logger *zap.Logger,
) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		mantras: mantras,
		stories: stories,
		songs:   songs,
		logger:  logger,
		pick:    rand.Intn,
	}
}

// Resolve devuelve la terna para la categoria dada. No falla: toda rama
// termina en la constante incorporada de cada pieza.
func (r *Resolver) Resolve(ctx context.Context, emotionType domain.EmotionType) domain.RecommendationBundle {
	emotionType = emotion.Normalize(emotionType)
	return domain.RecommendationBundle{
		EmotionType: emotionType,
		Mantra:      r.ResolveMantra(ctx, emotionType),
		Story:       r.ResolveStory(ctx, emotionType),
		Song:        r.ResolveSong(ctx, emotionType),
	}
}

// ResolveForLabel resuelve para una etiqueta de display del camino facial
// (happy/sad/...). La etiqueta se usa tal cual como clave de busqueda; la
// constante final sale de la tabla de mantras por etiqueta.
func (r *Resolver) ResolveForLabel(ctx context.Context, label string) domain.RecommendationBundle {
	bundle := domain.RecommendationBundle{
		EmotionType: domain.EmotionType(label),
		Mantra:      r.resolveMantraKey(ctx, domain.EmotionType(label), defaultMantraForFaceLabel(label)),
		Story:       r.ResolveStory(ctx, domain.EmotionType(label)),
		Song:        r.ResolveSong(ctx, domain.EmotionType(label)),
	}
	return bundle
}

func (r *Resolver) ResolveMantra(ctx context.Context, emotionType domain.EmotionType) domain.Mantra {
	return r.resolveMantraKey(ctx, emotionType, defaultMantraFor(emotionType))
}

func (r *Resolver) resolveMantraKey(ctx context.Context, key domain.EmotionType, fallback domain.Mantra) domain.Mantra {
	if m, ok := r.pickMantra(ctx, key); ok {
		return m
	}
	if key != domain.EmotionNeutral {
		if m, ok := r.pickMantra(ctx, domain.EmotionNeutral); ok {
			return m
		}
	}
	return fallback
}

func (r *Resolver) pickMantra(ctx context.Context, key domain.EmotionType) (domain.Mantra, bool) {
	mantras, err := r.mantras.FindByEmotionType(ctx, key)
	if err != nil {
		r.logger.Warn("mantra lookup failed, degrading to fallback", zap.String("emotion_type", string(key)), zap.Error(err))
		return domain.Mantra{}, false
	}
	if len(mantras) == 0 {
		return domain.Mantra{}, false
	}
	return mantras[r.pick(len(mantras))], true
}

func (r *Resolver) ResolveStory(ctx context.Context, emotionType domain.EmotionType) domain.Story {
	if s, ok := r.pickStory(ctx, emotionType); ok {
		return s
	}
	if emotionType != domain.EmotionNeutral {
		if s, ok := r.pickStory(ctx, domain.EmotionNeutral); ok {
			return s
		}
	}
	return defaultStory
}

func (r *Resolver) pickStory(ctx context.Context, key domain.EmotionType) (domain.Story, bool) {
	stories, err := r.stories.FindByEmotionType(ctx, key)
	if err != nil {
		r.logger.Warn("story lookup failed, degrading to fallback", zap.String("emotion_type", string(key)), zap.Error(err))
		return domain.Story{}, false
	}
	if len(stories) == 0 {
		return domain.Story{}, false
	}
	return stories[r.pick(len(stories))], true
}

func (r *Resolver) ResolveSong(ctx context.Context, emotionType domain.EmotionType) domain.Song {
	if s, ok := r.pickSong(ctx, emotionType); ok {
		return s
	}
	if emotionType != domain.EmotionNeutral {
		if s, ok := r.pickSong(ctx, domain.EmotionNeutral); ok {
			return s
		}
	}
	return defaultSongFor(emotionType)
}

func (r *Resolver) pickSong(ctx context.Context, key domain.EmotionType) (domain.Song, bool) {
	songs, err := r.songs.FindByEmotionType(ctx, key)
	if err != nil {
		r.logger.Warn("song lookup failed, degrading to fallback", zap.String("emotion_type", string(key)), zap.Error(err))
		return domain.Song{}, false
	}
	if len(songs) == 0 {
		return domain.Song{}, false
	}
	return songs[r.pick(len(songs))], true
}
