package localonnx

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeVocab(t *testing.T, vocab map[string]int64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vocab.json")
	data, err := json.Marshal(vocab)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestTokenizeKnownAndUnknownWords(t *testing.T) {
	path := writeVocab(t, map[string]int64{"hello": 1, "world": 2})
	tok, err := newTokenizer(path, 0)
	require.NoError(t, err)

	ids := tok.tokenize("Hello, world! Goodbye")
	assert.Equal(t, []int64{1, 2, defaultUnknownTokenID}, ids)
}

func TestTokenizeTruncatesToMaxSequenceLength(t *testing.T) {
	path := writeVocab(t, map[string]int64{"a": 1, "b": 2, "c": 3})
	tok, err := newTokenizer(path, 2)
	require.NoError(t, err)

	ids := tok.tokenize("a b c")
	assert.Equal(t, []int64{1, 2}, ids)
}

func TestTokenizerWithoutVocabPathMarksEverythingUnknown(t *testing.T) {
	tok, err := newTokenizer("", 0)
	require.NoError(t, err)

	ids := tok.tokenize("anything at all")
	for _, id := range ids {
		assert.Equal(t, int64(defaultUnknownTokenID), id)
	}
}

func TestCountMatchesTokenizeLength(t *testing.T) {
	tok, err := newTokenizer("", 0)
	require.NoError(t, err)

	assert.Equal(t, int64(3), tok.count("one two three"))
}

func TestNewTokenizerMissingFileIsError(t *testing.T) {
	_, err := newTokenizer(filepath.Join(t.TempDir(), "missing.json"), 0)
	require.Error(t, err)
}
