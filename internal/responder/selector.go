package responder

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"ai-listener/backend/internal/emotion"
)

// helplineNumber and crisisTextLine must appear in every crisis response.
const (
	helplineNumber = "988"
	crisisTextLine = "741741"
)

// contextAliases maps phrase-group tags emitted by the classifier to the
// response sub-contexts they evidence. Tags that already name a sub-context
// match directly and need no alias.
var contextAliases = map[string]string{
	"heartbreak": ContextRelationship,
	"grief":      ContextFamily,
}

// Selector maps a classification result to a reply and a coping tip using
// a layered lookup: crisis set, then sub-context bucket, then the emotion's
// default bucket, then the generic bucket. It can never come up empty.
type Selector struct {
	corpus *Corpus
}

// NewSelector validates the corpus and returns a selector over it. An
// invalid corpus is a programming or packaging defect, so this fails fast
// rather than risking an unresolved lookup at request time.
func NewSelector(corpus *Corpus) (*Selector, error) {
	if err := validateCorpus(corpus); err != nil {
		return nil, err
	}
	return &Selector{corpus: corpus}, nil
}

// Select returns a response and a coping tip for the classification result.
// Only the pick within a bucket is random; the bucket choice is
// deterministic.
func (s *Selector) Select(result emotion.Result) (response, tip string) {
	if result.IsCrisis {
		return pick(s.corpus.CrisisResponses), s.corpus.CrisisTip
	}

	buckets, ok := s.corpus.Responses[result.Emotion]
	if !ok {
		response = pick(s.corpus.Generic)
	} else if sub := s.subContext(buckets, result.ContextTags); sub != "" {
		response = pick(buckets[sub])
	} else {
		response = pick(buckets[ContextDefault])
	}

	tips, ok := s.corpus.Tips[result.Emotion]
	if !ok {
		return response, s.corpus.GenericTip
	}
	return response, pick(tips)
}

// subContext returns the first context tag (after alias expansion) that has
// a non-default bucket for this emotion, or "" when none applies.
func (s *Selector) subContext(buckets map[string][]string, tags []string) string {
	for _, tag := range tags {
		key := tag
		if alias, ok := contextAliases[tag]; ok {
			key = alias
		}
		if key == ContextDefault {
			continue
		}
		if candidates, ok := buckets[key]; ok && len(candidates) > 0 {
			return key
		}
	}
	return ""
}

func pick(candidates []string) string {
	if len(candidates) == 1 {
		return candidates[0]
	}
	return candidates[rand.IntN(len(candidates))]
}

// validateCorpus enforces the invariant that every emotion in the closed
// set resolves to at least one response and one tip, and that every crisis
// response carries the helpline directives.
func validateCorpus(corpus *Corpus) error {
	if len(corpus.CrisisResponses) == 0 {
		return fmt.Errorf("corpus has no crisis responses")
	}
	for i, response := range corpus.CrisisResponses {
		if !strings.Contains(response, helplineNumber) || !strings.Contains(response, crisisTextLine) {
			return fmt.Errorf("crisis response %d is missing the helpline directive", i)
		}
	}
	if strings.TrimSpace(corpus.CrisisTip) == "" {
		return fmt.Errorf("corpus has no crisis tip")
	}
	if len(corpus.Generic) == 0 {
		return fmt.Errorf("corpus has no generic responses")
	}
	if strings.TrimSpace(corpus.GenericTip) == "" {
		return fmt.Errorf("corpus has no generic tip")
	}

	for _, e := range emotion.All {
		if e == emotion.Crisis {
			continue
		}
		if buckets, ok := corpus.Responses[e]; ok && len(buckets[ContextDefault]) == 0 {
			return fmt.Errorf("emotion %q has a response bucket without a default list", e)
		}
	}
	return nil
}
