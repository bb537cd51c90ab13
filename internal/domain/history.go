package domain

import "time"

// Registros de historial: solo creacion, lectura muchas veces. Nunca se
// actualizan ni borran desde la aplicacion.

type AssessmentResult struct {
	ID                string                    `json:"id"`
	UserID            string                    `json:"user_id"`
	Responses         map[string]QuestionOption `json:"responses"`
	EmotionalScore    float64                   `json:"emotional_score"`
	RecommendedMantra string                    `json:"recommended_mantra"`
	CreatedAt         time.Time                 `json:"created_at"`
}

type FaceAnalysis struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	DetectedEmotion string    `json:"detected_emotion"`
	Confidence      float64   `json:"confidence"`
	CreatedAt       time.Time `json:"created_at"`
}

type ECGReport struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	FileURL     string    `json:"file_url"`
	FileType    string    `json:"file_type"` // "image" o "pdf"
	HeartRate   int       `json:"heart_rate"`
	QRSInterval int       `json:"qrs_interval"`
	StressLevel string    `json:"stress_level"`
	CreatedAt   time.Time `json:"created_at"`
}

// HistoryEntry unifica los tres tipos de registro para la vista de progreso.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"` // "assessment", "face", "ecg"
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}
