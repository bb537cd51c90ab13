package domain

import "time"

// QuestionOption lleva valor entero 1-5 usado para el promedio emocional.
type QuestionOption struct {
	ID    int    `json:"id"`
	Text  string `json:"text"`
	Value int    `json:"value"`
}

// Question es inmutable una vez sorteada para una sesion de evaluacion.
type Question struct {
	ID        int              `json:"id"`
	Text      string           `json:"text"`
	Options   []QuestionOption `json:"options"`
	Category  string           `json:"category,omitempty"`
	CreatedAt time.Time        `json:"created_at,omitempty"`
}
