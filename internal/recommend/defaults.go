package recommend

import "gita-wellness/internal/domain"

// Constantes incorporadas: el ultimo escalon de la cadena de fallback.
// Estan escalonadas por el nivel negative/neutral/positive/very_positive;
// cualquier otra categoria recibe el default generico.

var tierMantras = map[domain.EmotionType]domain.Mantra{
	domain.EmotionNegative: {
		Text:        "Karmanye vadhikaraste Ma Phaleshu Kadachana",
		Explanation: "You have a right to perform your prescribed duties, but you are not entitled to the fruits of your actions. Focus on your efforts, not the outcomes.",
	},
	domain.EmotionNeutral: {
		Text:        "Samatvam yoga uchyate",
		Explanation: "Equanimity is called yoga. Maintain balance in both pleasure and pain, success and failure.",
	},
	domain.EmotionPositive: {
		Text:        "Sukha-duhkhe same kritva labhalabhau jayajayau",
		Explanation: "Be steadfast and treat happiness and distress, gain and loss, victory and defeat with equanimity.",
	},
	domain.EmotionVeryPositive: {
		Text:        "Ananda Hum",
		Explanation: "I am Bliss. This mantra affirms your inherent nature as pure joy and bliss.",
	},
}

var genericMantra = domain.Mantra{
	Text:        "Om Shanti Shanti Shantihi",
	Explanation: "Peace, peace, peace. This mantra helps calm the mind and reduce stress by invoking peace at all levels of being.",
}

func defaultMantraFor(emotionType domain.EmotionType) domain.Mantra {
	if m, ok := tierMantras[emotionType]; ok {
		return m
	}
	return genericMantra
}

// Tabla fija para el camino facial: las etiquetas de display tienen su propio
// mantra incorporado.
var faceMantras = map[string]domain.Mantra{
	domain.FaceHappy: {
		Text:        "Ananda brahma, ananda brahma, ananda hi brahma",
		Explanation: "Bliss is divine, bliss is divine, bliss indeed is divine. Maintain this joyful state and share it with others.",
	},
	domain.FaceSad: {
		Text:        "Tat tvam asi",
		Explanation: "You are that. Remember your divine nature beyond temporary emotions and find comfort in your true self.",
	},
	domain.FaceAngry: {
		Text:        "Shanti, shanti, shantihi",
		Explanation: "Peace, peace, peace. Let go of anger and find the peace that resides within you.",
	},
	domain.FaceSurprised: {
		Text:        "Prajnanam brahma",
		Explanation: "Consciousness is the ultimate reality. Stay grounded in awareness as you process new experiences.",
	},
	domain.FaceNeutral: {
		Text:        "Aham brahmasmi",
		Explanation: "I am the absolute reality. Recognize the divine consciousness within you.",
	},
}

func defaultMantraForFaceLabel(label string) domain.Mantra {
	if m, ok := faceMantras[label]; ok {
		return m
	}
	return genericMantra
}

var defaultStory = domain.Story{
	Theme:     "Finding Balance",
	StoryText: "In the Bhagavad Gita, Krishna explains that balance is the key to a fulfilling life. When we neither cling to pleasure nor avoid pain, we find true equanimity. Like a steady lamp in a windless place, the mind becomes still and clear, allowing wisdom to shine through.",
}

var tierSongs = map[domain.EmotionType]domain.Song{
	domain.EmotionNegative: {
		Title: "Peaceful Meditation Music",
		URL:   "https://www.youtube.com/watch?v=lFcSrYw-ARY",
	},
	domain.EmotionNeutral: {
		Title: "Balanced Meditation Music",
		URL:   "https://www.youtube.com/watch?v=9Flm8iZ8kMQ",
	},
	domain.EmotionPositive: {
		Title: "Uplifting Morning Ragas",
		URL:   "https://www.youtube.com/watch?v=gMCjY5RDn4k",
	},
	domain.EmotionVeryPositive: {
		Title: "Blissful Devotional Music",
		URL:   "https://www.youtube.com/watch?v=PHk2Ku9239o",
	},
}

func defaultSongFor(emotionType domain.EmotionType) domain.Song {
	if s, ok := tierSongs[emotionType]; ok {
		return s
	}
	return tierSongs[domain.EmotionNeutral]
}
