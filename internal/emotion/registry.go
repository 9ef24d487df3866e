package emotion

import (
	"regexp"
	"strings"
)

// PhraseGroup is a named cluster of patterns describing one emotional
// context (multi-word signals, as opposed to isolated keywords). Several
// groups may map to the same emotion.
type PhraseGroup struct {
	Name     string
	Emotion  Emotion
	patterns []*regexp.Regexp
}

// emojiSet maps an emotion to the literal glyphs that evidence it.
type emojiSet struct {
	emotion Emotion
	glyphs  []string
}

// keywordSet maps an emotion to single-word signals, matched whole-word only.
type keywordSet struct {
	emotion Emotion
	words   map[string]struct{}
}

// Registry holds every pattern table the extractors read. It is built once
// and never mutated afterwards, so concurrent reads need no locking.
//
// Tables are ordered slices, not maps: when two candidates score equally,
// the one declared first wins. That tie-break is part of the contract.
type Registry struct {
	crisis          []*regexp.Regexp
	phraseGroups    []PhraseGroup
	emojiSets       []emojiSet
	keywordSets     []keywordSet
	negatedPositive *regexp.Regexp
}

// crisisPatterns flag imminent self-harm or suicide risk. Matching is OR:
// any hit anywhere in the text triggers the crisis path. Biased towards
// false positives on purpose.
var crisisPatterns = []string{
	`\bsuicid`,
	`\bkill\s*(my|him|her|them)?self`,
	`\bwant\s*to\s*die\b`,
	`\bwanna\s*die\b`,
	`\bdon.?t\s*want\s*to\s*(live|be alive|exist)`,
	`\bend\s*(my|it\s*all|this)\s*(life)?`,
	`\bi\s*will\s*die\b`,
	`\bi.?m\s*going\s*to\s*die\b`,
	`\bno\s*reason\s*to\s*live`,
	`\bself\s*harm`,
	`\bcut(ting)?\s*(my)?self`,
	`\bhurt(ing)?\s*(my)?self`,
	`\bjump\s*off`,
	`\boverdose`,
	`\bpill`,
	`\bnoose`,
	`\bhang(ing)?\s*myself`,
	`\blife\s*is\s*(not\s*)?worth`,
	`\bgive\s*up\s*on\s*(life|everything|living)`,
	`\bno\s*point\s*(in\s*living|anymore)`,
	`\bbetter\s*off\s*(dead|without\s*me)`,
	`\bnobody\s*(would\s*)?(care|miss|notice)\s*if\s*i`,
	`\bworld\s*(is|would\s*be)\s*better\s*without\s*me`,
}

// phraseGroupDefs declares the phrase groups in priority (tie-break) order.
var phraseGroupDefs = []struct {
	name     string
	emotion  Emotion
	patterns []string
}{
	{
		name:    "heartbreak",
		emotion: Heartbreak,
		patterns: []string{
			`\bbroke\s*up`,
			`\bbreak\s*up`,
			`\bbreakup`,
			`\bbroken\s*up`,
			`\bdumped\s*me`,
			`\bleft\s*me`,
			`\bcheated\s*on`,
			`\bdivorce`,
			`\bseparation`,
			`\bex\s*(boy|girl)friend`,
			`\bmiss(ing)?\s*(him|her|them|my\s*(ex|bf|gf|partner|husband|wife))`,
			`\bher\s*memories`,
			`\bhis\s*memories`,
			`\bmoved?\s*on`,
			`\brelationship\s*(ended|over|failed)`,
			`\bheart\s*broken`,
			`\blove\s*(lost|gone|ended|hurts)`,
		},
	},
	{
		name:    "grief",
		emotion: Grief,
		patterns: []string{
			`\b(passed|died|death|funeral|mourn|griev|gone\s*forever)`,
			`\blost\s*(my|a)\s*(mom|dad|mother|father|parent|friend|brother|sister|son|daughter|baby|pet|dog|cat)`,
			`\bmiss(ing)?\s*(my\s*)?(mom|dad|mother|father|friend|brother|sister)`,
		},
	},
	{
		name:    "loneliness",
		emotion: Sad,
		patterns: []string{
			`\bno\s*(one|body)\s*(cares|loves|understands|listens|is\s*there)`,
			`\ball\s*alone`,
			`\bso\s*lonely`,
			`\bfeel(ing)?\s*alone`,
			`\bhave\s*no\s*(friends|one)`,
			`\bnobody\s*(likes|loves|cares)`,
			`\bno\s*friends`,
			`\bisolat`,
		},
	},
	{
		name:    "depression",
		emotion: Depressed,
		patterns: []string{
			`\bnot\s*feeling\s*(good|well|okay|ok|fine|great|right)`,
			`\bfeel(ing)?\s*(terrible|awful|horrible|worthless|hopeless|useless|empty|numb|nothing)`,
			`\bcan.?t\s*(go\s*on|take\s*(it|this)|do\s*this\s*anymore|cope|handle)`,
			`\bwhat.?s\s*the\s*point`,
			`\bnothing\s*matters`,
			`\bi\s*hate\s*(my\s*)?life`,
			`\blife\s*(is\s*)?(hard|tough|meaningless|pointless|terrible)`,
			`\bwish\s*i\s*(wasn.?t|weren.?t|could\s*disappear)`,
			`\bi\s*don.?t\s*care\s*anymore`,
			`\bcrying\s*(all|every)`,
			`\bcan.?t\s*stop\s*crying`,
		},
	},
	{
		name:    "anxiety",
		emotion: Anxious,
		patterns: []string{
			`\bpanic\s*(attack|ing)`,
			`\bcan.?t\s*(breathe|sleep|relax|stop\s*(worrying|thinking))`,
			`\bheart\s*(racing|pounding)`,
			`\bracing\s*thoughts`,
			`\bwhat\s*if\s`,
			`\bscared\s*(of|to|about)`,
			`\bworr(y|ied|ying)\s*(about|that|so\s*much)`,
			`\bfeel(ing)?\s*(anxious|nervous|panick|restless|on\s*edge)`,
			`\bstress(ed|ing|ful)`,
		},
	},
	{
		name:    "anger",
		emotion: Angry,
		patterns: []string{
			`\bpiss(ed|es|ing)`,
			`\bso\s*(angry|mad|frustrated|furious)`,
			`\bsick\s*(of|and\s*tired)`,
			`\bfed\s*up`,
			`\bhate\s*(this|it|everyone|everything|him|her|them|my)`,
			`\bcan.?t\s*stand`,
			`\bwant\s*to\s*(scream|punch|hit|break)`,
		},
	},
	{
		name:    "positive",
		emotion: Happy,
		patterns: []string{
			`\bfeeling\s*(good|great|better|amazing|wonderful|happy|blessed|grateful|fantastic)`,
			`\bgood\s*day`,
			`\bgreat\s*day`,
			`\bhappy\s*(today|right\s*now|lately)`,
			`\bthank\s*(you|u)\s*(so\s*much|for)`,
			`\byou\s*(helped|make|made)\s*(me)?\s*(feel)?\s*(better|good)`,
			`\bi\s*feel\s*(so\s*)?(much\s*)?better`,
		},
	},
}

// emojiSetDefs declares the emoji tables in tie-break order. Occurrences are
// counted, not just presence.
var emojiSetDefs = []struct {
	emotion Emotion
	glyphs  []string
}{
	{Sad, []string{"😢", "😭", "😿", "😞", "😔", "😥", "🥺", "💔", "😩", "😪", "🥲"}},
	{Angry, []string{"😠", "😡", "🤬", "💢", "👿", "😤"}},
	{Anxious, []string{"😰", "😨", "😱", "😬", "🫣", "😳"}},
	{Happy, []string{"😊", "😃", "😄", "🥰", "😁", "🎉", "❤️", "💖", "✨", "🥳", "😍", "🤗"}},
	{Tired, []string{"😴", "😪", "🥱", "💤"}},
	{Confused, []string{"😕", "😟", "🤔", "😵", "🫤"}},
	{Grateful, []string{"🙏", "💛", "🤝", "💕"}},
}

// keywordSetDefs declares the keyword tables in tie-break order. Keywords
// match whole tokens only, never substrings of longer words.
var keywordSetDefs = []struct {
	emotion Emotion
	words   []string
}{
	{Sad, []string{
		"sad", "unhappy", "depressed", "down", "miserable", "hopeless",
		"lonely", "heartbroken", "grief", "crying", "tears", "lost",
		"empty", "numb", "broken", "hurt", "pain", "suffering", "sorrow",
		"despair", "melancholy", "gloomy", "blue", "upset", "devastated",
		"terrible", "awful", "horrible", "worst", "ruined", "shattered",
		"worthless", "useless", "pathetic", "failure", "disappointed",
		"regret", "miss", "missing", "ache", "aching", "wounded",
	}},
	{Anxious, []string{
		"anxious", "worried", "nervous", "scared", "fear", "panic",
		"stressed", "overwhelmed", "terrified", "uneasy", "restless",
		"tense", "dread", "apprehensive", "insecure", "paranoid",
		"frightened", "shaking", "trembling", "uncertain", "overthinking",
	}},
	{Angry, []string{
		"angry", "mad", "furious", "irritated", "frustrated", "annoyed",
		"rage", "hostile", "bitter", "resentful", "outraged", "livid",
		"infuriated", "agitated", "enraged", "disgusted", "betrayed",
	}},
	{Happy, []string{
		"happy", "joy", "grateful", "thankful", "excited", "wonderful",
		"amazing", "great", "fantastic", "blessed", "cheerful", "delighted",
		"elated", "thrilled", "content", "pleased", "optimistic",
		"peaceful", "calm", "serene", "hopeful", "proud", "confident",
		"awesome", "good", "fine", "okay", "well", "better", "beautiful",
	}},
	{Confused, []string{
		"confused", "uncertain", "unsure", "stuck", "helpless",
		"conflicted", "torn", "indecisive", "puzzled", "bewildered",
	}},
	{Tired, []string{
		"tired", "exhausted", "drained", "burnout", "fatigued",
		"depleted", "weary", "sluggish", "lethargic",
	}},
}

// negationWords flip an apparent-positive signal when they appear shortly
// before a positive-sentiment word ("not happy", "don't feel fine").
var negationWords = []string{
	"not", "no", "don't", "dont", "doesn't", "doesnt", "didn't", "didnt",
	"won't", "wont", "can't", "cant", "cannot", "never", "isn't", "isnt",
	"aren't", "arent", "wasn't", "wasnt", "hardly", "barely", "neither",
}

// negatablePositives are the positive words the negation check scans for.
var negatablePositives = []string{
	"good", "fine", "well", "okay", "ok", "great", "happy", "right", "better",
}

// NewRegistry compiles the built-in pattern tables.
func NewRegistry() *Registry {
	r := &Registry{
		crisis:          compilePatterns(crisisPatterns),
		negatedPositive: compileNegatedPositive(negationWords, negatablePositives),
	}

	for _, def := range phraseGroupDefs {
		r.phraseGroups = append(r.phraseGroups, PhraseGroup{
			Name:     def.name,
			Emotion:  def.emotion,
			patterns: compilePatterns(def.patterns),
		})
	}
	for _, def := range emojiSetDefs {
		r.emojiSets = append(r.emojiSets, emojiSet{emotion: def.emotion, glyphs: def.glyphs})
	}
	for _, def := range keywordSetDefs {
		words := make(map[string]struct{}, len(def.words))
		for _, w := range def.words {
			words[w] = struct{}{}
		}
		r.keywordSets = append(r.keywordSets, keywordSet{emotion: def.emotion, words: words})
	}
	return r
}

// compilePatterns compiles each pattern case-insensitively.
func compilePatterns(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(`(?i)`+p))
	}
	return compiled
}

// compileNegatedPositive builds a single pattern matching a negation word
// followed by a positive word, with at most one word between them.
func compileNegatedPositive(negations, positives []string) *regexp.Regexp {
	quoted := func(words []string) string {
		escaped := make([]string, 0, len(words))
		for _, w := range words {
			escaped = append(escaped, regexp.QuoteMeta(w))
		}
		return strings.Join(escaped, "|")
	}
	pattern := `(?i)\b(?:` + quoted(negations) + `)\b\s+\w*\s*\b(?:` + quoted(positives) + `)\b`
	return regexp.MustCompile(pattern)
}
