package domain

// EmotionType es la categoria canonica que indexa el contenido recomendado.
type EmotionType string

const (
	EmotionNegative     EmotionType = "negative"
	EmotionNeutral      EmotionType = "neutral"
	EmotionPositive     EmotionType = "positive"
	EmotionVeryPositive EmotionType = "very_positive"
)

// Categorias secundarias de grano fino usadas por el contenido seed.
const (
	EmotionHealing        EmotionType = "healing"
	EmotionStress         EmotionType = "stress"
	EmotionAnxiety        EmotionType = "anxiety"
	EmotionObstacles      EmotionType = "obstacles"
	EmotionClarity        EmotionType = "clarity"
	EmotionTransformation EmotionType = "transformation"
	EmotionAbundance      EmotionType = "abundance"
	EmotionEmpowerment    EmotionType = "empowerment"
	EmotionProtection     EmotionType = "protection"
	EmotionDevotion       EmotionType = "devotion"
	EmotionImmortality    EmotionType = "immortality"
	EmotionTruth          EmotionType = "truth"
	EmotionLearning       EmotionType = "learning"
	EmotionUnity          EmotionType = "unity"
	EmotionAuspiciousness EmotionType = "auspiciousness"
	EmotionCosmicForces   EmotionType = "cosmic_forces"
	EmotionTranscendence  EmotionType = "transcendence"
	EmotionSurrender      EmotionType = "surrender"
)

// Etiquetas de display para el camino facial. Se usan tal cual como clave de
// resolucion, sin coercion a la escala negative/neutral/positive.
const (
	FaceHappy     = "happy"
	FaceSad       = "sad"
	FaceNeutral   = "neutral"
	FaceSurprised = "surprised"
	FaceAngry     = "angry"
)

var validEmotionTypes = map[EmotionType]struct{}{
	EmotionNegative:       {},
	EmotionNeutral:        {},
	EmotionPositive:       {},
	EmotionVeryPositive:   {},
	EmotionHealing:        {},
	EmotionStress:         {},
	EmotionAnxiety:        {},
	EmotionObstacles:      {},
	EmotionClarity:        {},
	EmotionTransformation: {},
	EmotionAbundance:      {},
	EmotionEmpowerment:    {},
	EmotionProtection:     {},
	EmotionDevotion:       {},
	EmotionImmortality:    {},
	EmotionTruth:          {},
	EmotionLearning:       {},
	EmotionUnity:          {},
	EmotionAuspiciousness: {},
	EmotionCosmicForces:   {},
	EmotionTranscendence:  {},
	EmotionSurrender:      {},
}

// IsValid indica si el tipo pertenece al conjunto cerrado.
func (e EmotionType) IsValid() bool {
	_, ok := validEmotionTypes[e]
	return ok
}
