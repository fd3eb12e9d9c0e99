package affect

// StandardQuadrants returns the built-in quadrant table. Each word list is
// laid out row by row (five per row), lowest energy first within a row and
// the most intense pleasantness in the first row.
func StandardQuadrants() []QuadrantInfo {
	return []QuadrantInfo{
		{
			Quadrant:    HighPleasant,
			Label:       "High energy, pleasant",
			Description: "Upbeat and lively: excitement, joy, enthusiasm.",
			Color:       Colors{Primary: "#F9E2AF", Background: "#3B3420"},
			Emotions: []string{
				"Pleased", "Happy", "Cheerful", "Elated", "Ecstatic",
				"Hopeful", "Optimistic", "Joyful", "Excited", "Thrilled",
				"Focused", "Playful", "Enthusiastic", "Energized", "Exhilarated",
				"Engaged", "Motivated", "Proud", "Inspired", "Euphoric",
				"Pleasant", "Upbeat", "Lively", "Surprised", "Hyper",
			},
		},
		{
			Quadrant:    HighUnpleasant,
			Label:       "High energy, unpleasant",
			Description: "Keyed up and uneasy: stress, anger, worry.",
			Color:       Colors{Primary: "#F38BA8", Background: "#3B2028"},
			Emotions: []string{
				"Concerned", "Uneasy", "Restless", "Tense", "Jittery",
				"Worried", "Nervous", "Irritated", "Annoyed", "Frustrated",
				"Troubled", "Anxious", "Stressed", "Frightened", "Angry",
				"Apprehensive", "Scared", "Shocked", "Panicked", "Furious",
				"Disgusted", "Livid", "Enraged", "Fuming",
			},
		},
		{
			Quadrant:    LowUnpleasant,
			Label:       "Low energy, unpleasant",
			Description: "Heavy and flat: sadness, fatigue, loneliness.",
			Color:       Colors{Primary: "#89B4FA", Background: "#1F2A3B"},
			Emotions: []string{
				"Drained", "Tired", "Bored", "Indifferent", "Disappointed",
				"Exhausted", "Lonely", "Sad", "Down", "Discouraged",
				"Depleted", "Disheartened", "Melancholy", "Glum", "Hurt",
				"Hopeless", "Despondent", "Miserable", "Ashamed", "Guilty",
				"Despairing", "Desolate",
			},
		},
		{
			Quadrant:    LowPleasant,
			Label:       "Low energy, pleasant",
			Description: "Easy and settled: calm, content, grateful.",
			Color:       Colors{Primary: "#A6E3A1", Background: "#203B24"},
			Emotions: []string{
				"Serene", "Tranquil", "Blessed", "Grateful", "Loving",
				"Sleepy", "Peaceful", "Content", "Fulfilled", "Secure",
				"Relaxed", "Calm", "Comfortable", "Satisfied", "Balanced",
				"Mellow", "Restful", "Carefree", "Thoughtful", "Easygoing",
				"Chill", "Cozy", "Reflective",
			},
		},
	}
}
