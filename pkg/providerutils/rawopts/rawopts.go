// Package rawopts merges the opaque raw_provider_options escape hatch
// (spec §3, §4.2: "forward raw_provider_options untouched into the
// provider envelope") into an adapter's request body.
package rawopts

import "encoding/json"

// Merge unmarshals raw as a JSON object and copies its keys into body,
// overwriting anything the adapter already set for that key. A nil or
// empty raw, or a raw that isn't a JSON object, leaves body untouched.
func Merge(body map[string]interface{}, raw json.RawMessage) {
	if len(raw) == 0 {
		return
	}
	var extra map[string]interface{}
	if err := json.Unmarshal(raw, &extra); err != nil {
		return
	}
	for k, v := range extra {
		body[k] = v
	}
}
