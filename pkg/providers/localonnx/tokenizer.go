package localonnx

import (
	"encoding/json"
	"os"
	"strings"
)

// tokenizer is a minimal whitespace/lowercase word-piece-free tokenizer: it
// splits on whitespace and punctuation and looks each piece up in a fixed
// vocabulary, following the "local inference has no hosted tokenizer
// endpoint to call" constraint (§4.2 local-inference pattern). It is not a
// BPE/WordPiece tokenizer; models that require one need a matching
// vocabulary file built with the same scheme the model was trained with.
// Unknown tokens map to a fixed out-of-vocabulary id rather than erroring,
// so CountTokens/Embed stay total functions over arbitrary input text.
type tokenizer struct {
	vocab  map[string]int64
	unkID  int64
	maxSeq int
}

const defaultUnknownTokenID = 100

func newTokenizer(vocabPath string, maxSeq int) (*tokenizer, error) {
	t := &tokenizer{vocab: map[string]int64{}, unkID: defaultUnknownTokenID, maxSeq: maxSeq}
	if vocabPath == "" {
		return t, nil
	}

	data, err := os.ReadFile(vocabPath)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &t.vocab); err != nil {
		return nil, err
	}
	return t, nil
}

// tokenize splits text into vocabulary ids, truncated to maxSeq when set.
func (t *tokenizer) tokenize(text string) []int64 {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})

	ids := make([]int64, 0, len(words))
	for _, w := range words {
		if id, ok := t.vocab[w]; ok {
			ids = append(ids, id)
		} else {
			ids = append(ids, t.unkID)
		}
	}
	if t.maxSeq > 0 && len(ids) > t.maxSeq {
		ids = ids[:t.maxSeq]
	}
	return ids
}

// count reports the token count of text (the length of tokenize's result),
// for CountTokens callers that only need the length.
func (t *tokenizer) count(text string) int64 {
	return int64(len(t.tokenize(text)))
}
