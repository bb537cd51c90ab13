package emotion

import (
	"errors"
	"math"
	"strings"

	"gita-wellness/internal/domain"
)

// ErrNoSignal indica que no hubo entrada evaluable (por ejemplo, mapa de
// emociones faciales vacio). Distinto de una etiqueta desconocida, que se
// coerciona a neutral sin error.
var ErrNoSignal = errors.New("no signal detected")

// FromScore clasifica el promedio del cuestionario (rango 1.0-5.0).
// Los valores de borde pertenecen al bucket inferior: 2.0 es negative,
// 3.0 es neutral, 4.0 es positive.
func FromScore(score float64) domain.EmotionType {
	switch {
	case score <= 2:
		return domain.EmotionNegative
	case score <= 3:
		return domain.EmotionNeutral
	case score <= 4:
		return domain.EmotionPositive
	default:
		return domain.EmotionVeryPositive
	}
}

// FromStressLevel clasifica el nivel textual de estres de un reporte ECG.
// Texto no reconocido cae en neutral.
func FromStressLevel(level string) domain.EmotionType {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "high":
		return domain.EmotionNegative
	case "moderate":
		return domain.EmotionNeutral
	case "low":
		return domain.EmotionPositive
	default:
		return domain.EmotionNeutral
	}
}

// Normalize coerciona cualquier valor fuera del conjunto cerrado a neutral.
func Normalize(t domain.EmotionType) domain.EmotionType {
	if t.IsValid() {
		return t
	}
	return domain.EmotionNeutral
}

// FaceReading es el resultado del arg-max sobre las confianzas del
// reconocedor facial. Confidence viene en fraccion 0.0-1.0.
type FaceReading struct {
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
}

// faceVocabulary fija el subconjunto conocido del vocabulario del reconocedor
// y su etiqueta de display, en orden estable para el desempate del arg-max
// (gana el primero encontrado).
var faceVocabulary = []struct {
	raw     string
	display string
}{
	{"happiness", domain.FaceHappy},
	{"sadness", domain.FaceSad},
	{"neutral", domain.FaceNeutral},
	{"surprise", domain.FaceSurprised},
	{"anger", domain.FaceAngry},
}

// FromFaceAttributes recibe el mapa emocion->confianza (0-100) que devuelve
// el reconocedor para una cara, descarta las entradas fuera del vocabulario
// conocido y elige la de maxima confianza. Si no queda ninguna entrada
// evaluable devuelve ErrNoSignal.
func FromFaceAttributes(confidences map[string]float64) (FaceReading, error) {
	if len(confidences) == 0 {
		return FaceReading{}, ErrNoSignal
	}

	best := FaceReading{Confidence: -1}
	for _, v := range faceVocabulary {
		conf, ok := confidences[v.raw]
		if !ok {
			continue
		}
		if conf > best.Confidence {
			best = FaceReading{Emotion: v.display, Confidence: conf}
		}
	}
	if best.Confidence < 0 {
		return FaceReading{}, ErrNoSignal
	}

	best.Confidence = best.Confidence / 100.0
	return best, nil
}

// AverageScore calcula el promedio de los valores elegidos, redondeado a un
// decimal. Devuelve 0 con slice vacio; el llamador decide si eso es error.
func AverageScore(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return RoundScore(float64(sum) / float64(len(values)))
}

// RoundScore redondea a un decimal, la misma regla que usa el historial.
func RoundScore(score float64) float64 {
	return math.Round(score*10) / 10
}
