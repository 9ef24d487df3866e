package emotion

// Emotion is one of the closed set of labels the engine can produce.
type Emotion string

const (
	Happy      Emotion = "happy"
	Sad        Emotion = "sad"
	Anxious    Emotion = "anxious"
	Angry      Emotion = "angry"
	Confused   Emotion = "confused"
	Tired      Emotion = "tired"
	Grateful   Emotion = "grateful"
	Neutral    Emotion = "neutral"
	Heartbreak Emotion = "heartbreak"
	Grief      Emotion = "grief"
	Depressed  Emotion = "depressed"
	Crisis     Emotion = "crisis"
)

// All lists every valid emotion label.
var All = []Emotion{
	Happy, Sad, Anxious, Angry, Confused, Tired,
	Grateful, Neutral, Heartbreak, Grief, Depressed, Crisis,
}

// Valid reports whether e is a member of the closed emotion set.
func (e Emotion) Valid() bool {
	for _, known := range All {
		if e == known {
			return true
		}
	}
	return false
}

// sentimentScores is the fixed emotion-to-sentiment table. Scores are never
// recomputed per message; the final emotion alone determines the value.
var sentimentScores = map[Emotion]float64{
	Happy:      0.8,
	Grateful:   0.9,
	Sad:        -0.7,
	Heartbreak: -0.85,
	Grief:      -0.9,
	Depressed:  -0.85,
	Anxious:    -0.5,
	Angry:      -0.6,
	Confused:   -0.2,
	Tired:      -0.3,
	Neutral:    0.0,
	Crisis:     -1.0,
}

// defaultSentiment is the conservative score for an unmapped emotion.
// Deliberately negative: an unknown state must never read as positive.
const defaultSentiment = -0.3

// SentimentFor returns the fixed sentiment score for an emotion.
func SentimentFor(e Emotion) float64 {
	if score, ok := sentimentScores[e]; ok {
		return score
	}
	return defaultSentiment
}

// Result is the outcome of one classification pass over a message.
// It is immutable after construction.
type Result struct {
	Emotion        Emotion
	Confidence     float64
	SentimentScore float64
	IsCrisis       bool
	ContextTags    []string
}

// CrisisResult returns the canonical crisis classification. Crisis is
// absorbing: once detected, no other signal may alter these values.
func CrisisResult() Result {
	return Result{
		Emotion:        Crisis,
		Confidence:     1.0,
		SentimentScore: -1.0,
		IsCrisis:       true,
		ContextTags:    []string{"crisis", "safety"},
	}
}
