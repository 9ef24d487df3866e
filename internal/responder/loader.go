package responder

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadCorpus reads corpus overrides from a JSON file and overlays them on
// the built-in corpus. Only the sections present in the file are replaced,
// so a partial file cannot break the "every emotion resolves" invariant as
// long as the built-in tables hold it.
func LoadCorpus(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}

	var overrides Corpus
	if err := json.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse corpus JSON: %w", err)
	}

	corpus := DefaultCorpus()
	for e, buckets := range overrides.Responses {
		corpus.Responses[e] = buckets
	}
	for e, tips := range overrides.Tips {
		corpus.Tips[e] = tips
	}
	if len(overrides.CrisisResponses) > 0 {
		corpus.CrisisResponses = overrides.CrisisResponses
	}
	if overrides.CrisisTip != "" {
		corpus.CrisisTip = overrides.CrisisTip
	}
	if len(overrides.Generic) > 0 {
		corpus.Generic = overrides.Generic
	}
	if overrides.GenericTip != "" {
		corpus.GenericTip = overrides.GenericTip
	}
	return corpus, nil
}
