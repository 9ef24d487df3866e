package emotion

import (
	"regexp"
	"strings"
)

// tokenPattern splits text into lowercase word tokens for keyword matching.
// Apostrophes stay inside tokens so contractions survive ("don't").
var tokenPattern = regexp.MustCompile(`[a-z']+`)

// sadNegationBonus is added to the sad score when a negated positive is
// found; it outweighs any single keyword hit.
const sadNegationBonus = 2

// CrisisMatch reports whether any crisis pattern matches the text. This
// check always runs before every other extractor and its result is final.
func (r *Registry) CrisisMatch(text string) bool {
	for _, pattern := range r.crisis {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// NegatedPositive reports whether a negation word precedes a
// positive-sentiment word within a one-word gap ("not happy",
// "don't feel fine").
func (r *Registry) NegatedPositive(text string) bool {
	return r.negatedPositive.MatchString(text)
}

// phraseEmotion scores every phrase group against the text. Each matching
// pattern adds one to its group's emotion and records the group name as a
// context tag. Ties go to the emotion encountered first in declaration
// order. ok is false when no group matched.
func (r *Registry) phraseEmotion(text string) (dominant Emotion, tags []string, ok bool) {
	scores := make(map[Emotion]int)
	var order []Emotion
	seenTags := make(map[string]bool)

	for _, group := range r.phraseGroups {
		for _, pattern := range group.patterns {
			if !pattern.MatchString(text) {
				continue
			}
			if _, seen := scores[group.Emotion]; !seen {
				order = append(order, group.Emotion)
			}
			scores[group.Emotion]++
			if !seenTags[group.Name] {
				seenTags[group.Name] = true
				tags = append(tags, group.Name)
			}
		}
	}
	if len(scores) == 0 {
		return "", nil, false
	}

	best := order[0]
	for _, e := range order[1:] {
		if scores[e] > scores[best] {
			best = e
		}
	}
	return best, tags, true
}

// emojiEmotion counts emoji occurrences per emotion and returns the emotion
// with the highest total. Ties go to the first-declared table. ok is false
// when the text contains no known emoji.
func (r *Registry) emojiEmotion(text string) (Emotion, bool) {
	best := Emotion("")
	bestCount := 0
	for _, set := range r.emojiSets {
		count := 0
		for _, glyph := range set.glyphs {
			count += strings.Count(text, glyph)
		}
		if count > bestCount {
			best = set.emotion
			bestCount = count
		}
	}
	return best, bestCount > 0
}

// keywordEmotion tokenizes the text and counts whole-word keyword hits per
// emotion, then applies the negation adjustment: a negated positive wipes
// the happy score and boosts sad. Ties go to the first-declared table.
// ok is false when nothing matched at all.
func (r *Registry) keywordEmotion(text string) (Emotion, bool) {
	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)

	scores := make(map[Emotion]int)
	for _, set := range r.keywordSets {
		for _, token := range tokens {
			if _, hit := set.words[token]; hit {
				scores[set.emotion]++
			}
		}
	}
	if len(scores) == 0 {
		return "", false
	}

	if r.NegatedPositive(text) {
		delete(scores, Happy)
		scores[Sad] += sadNegationBonus
	}

	best := Emotion("")
	bestScore := 0
	for _, set := range r.keywordSets {
		if score := scores[set.emotion]; score > bestScore {
			best = set.emotion
			bestScore = score
		}
	}
	return best, bestScore > 0
}
