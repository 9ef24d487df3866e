package responder_test

import (
	"os"
	"path/filepath"
	"testing"

	"ai-listener/backend/internal/emotion"
	"ai-listener/backend/internal/responder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCorpusFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCorpusOverlaysPartialFile(t *testing.T) {
	path := writeCorpusFile(t, `{
		"responses": {
			"happy": {"default": ["Custom happy reply"]}
		},
		"generic_tip": "Custom generic tip"
	}`)

	corpus, err := responder.LoadCorpus(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Custom happy reply"}, corpus.Responses[emotion.Happy][responder.ContextDefault])
	assert.Equal(t, "Custom generic tip", corpus.GenericTip)

	// Untouched sections keep the built-in text.
	defaults := responder.DefaultCorpus()
	assert.Equal(t, defaults.CrisisResponses, corpus.CrisisResponses)
	assert.Equal(t, defaults.Responses[emotion.Sad], corpus.Responses[emotion.Sad])

	// The overlay still passes validation.
	_, err = responder.NewSelector(corpus)
	require.NoError(t, err)
}

func TestLoadCorpusErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := responder.LoadCorpus(filepath.Join(t.TempDir(), "absent.json"))
		require.Error(t, err)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		path := writeCorpusFile(t, `{"responses": [`)
		_, err := responder.LoadCorpus(path)
		require.Error(t, err)
	})
}

func TestLoadCorpusBadOverrideFailsValidation(t *testing.T) {
	// A file that strips the helplines must be caught by NewSelector, not
	// silently served.
	path := writeCorpusFile(t, `{"crisis_responses": ["just hang in there"]}`)

	corpus, err := responder.LoadCorpus(path)
	require.NoError(t, err)

	_, err = responder.NewSelector(corpus)
	require.Error(t, err)
}
