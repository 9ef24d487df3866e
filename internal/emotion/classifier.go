package emotion

// Confidence levels for each rung of the classification ladder. Phrase
// matches are trusted over single emoji/keyword signals because multi-word
// patterns encode intent rather than isolated sentiment words.
const (
	confidencePhrase   = 0.9
	confidenceCombined = 0.8
	confidenceSingle   = 0.7
	confidenceNegation = 0.6
	confidenceNeutral  = 0.3
)

// Classifier turns free text into a Result using the layered rule tables.
// It holds no mutable state; concurrent calls are safe.
type Classifier struct {
	registry *Registry
}

// NewClassifier creates a classifier over the given registry.
func NewClassifier(registry *Registry) *Classifier {
	return &Classifier{registry: registry}
}

// Classify evaluates the signal layers in strict priority order. Each rung
// is terminal once reached; crisis preempts everything.
func (c *Classifier) Classify(text string) Result {
	if c.registry.CrisisMatch(text) {
		return CrisisResult()
	}

	phrase, tags, phraseOK := c.registry.phraseEmotion(text)
	emoji, emojiOK := c.registry.emojiEmotion(text)
	keyword, keywordOK := c.registry.keywordEmotion(text)

	var detected Emotion
	var confidence float64

	switch {
	case phraseOK:
		detected = phrase
		confidence = confidencePhrase
	case emojiOK && keywordOK:
		if c.registry.NegatedPositive(text) {
			// A negated positive means the words are downbeat; trust the
			// emoji unless it is a (possibly sarcastic) happy one.
			detected = emoji
			if emoji == Happy {
				detected = keyword
			}
		} else {
			detected = keyword
		}
		confidence = confidenceCombined
	case emojiOK:
		detected = emoji
		confidence = confidenceSingle
	case keywordOK:
		detected = keyword
		confidence = confidenceSingle
	default:
		if c.registry.NegatedPositive(text) {
			detected = Sad
			confidence = confidenceNegation
		} else {
			detected = Neutral
			confidence = confidenceNeutral
		}
	}

	return Result{
		Emotion:        detected,
		Confidence:     confidence,
		SentimentScore: SentimentFor(detected),
		ContextTags:    tags,
	}
}
