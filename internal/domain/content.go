package domain

import "time"

type Mantra struct {
	ID          int         `json:"id,omitempty"`
	Text        string      `json:"text"`
	EmotionType EmotionType `json:"emotion_type,omitempty"`
	Explanation string      `json:"explanation"`
	CreatedAt   time.Time   `json:"created_at,omitempty"`
}

type Story struct {
	ID          int         `json:"id,omitempty"`
	Theme       string      `json:"theme,omitempty"`
	EmotionType EmotionType `json:"emotion_type,omitempty"`
	StoryText   string      `json:"story_text"`
	CreatedAt   time.Time   `json:"created_at,omitempty"`
}

type Song struct {
	ID          int         `json:"id,omitempty"`
	Title       string      `json:"title"`
	EmotionType EmotionType `json:"emotion_type,omitempty"`
	URL         string      `json:"url"`
	CreatedAt   time.Time   `json:"created_at,omitempty"`
}

// RecommendationBundle es la terna {mantra, historia, cancion} resuelta para
// una categoria. Cada pieza se resuelve con cadena de fallback independiente.
type RecommendationBundle struct {
	EmotionType EmotionType `json:"emotion_type"`
	Mantra      Mantra      `json:"mantra"`
	Story       Story       `json:"story"`
	Song        Song        `json:"song"`
}
