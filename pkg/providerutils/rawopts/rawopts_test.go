package rawopts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeOverwritesExistingKey(t *testing.T) {
	body := map[string]interface{}{"temperature": 0.5}
	Merge(body, json.RawMessage(`{"temperature":0.9,"top_k":40}`))
	assert.InDelta(t, 0.9, body["temperature"], 0.0001)
	assert.Equal(t, float64(40), body["top_k"])
}

func TestMergeIgnoresEmptyRaw(t *testing.T) {
	body := map[string]interface{}{"a": 1}
	Merge(body, nil)
	assert.Equal(t, 1, body["a"])
}

func TestMergeIgnoresNonObjectRaw(t *testing.T) {
	body := map[string]interface{}{"a": 1}
	Merge(body, json.RawMessage(`[1,2,3]`))
	assert.Equal(t, 1, body["a"])
}
