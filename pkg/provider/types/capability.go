package types

import (
	"encoding/json"
	"sort"
)

// Capability is one named operation the gateway can perform (§3, GLOSSARY).
type Capability string

const (
	CapChat          Capability = "chat"
	CapChatStreaming Capability = "chat_streaming"
	CapGenerate      Capability = "generate"
	CapToolUse       Capability = "tool_use"
	CapEmbed         Capability = "embed"
	CapNli           Capability = "nli"
	CapClassify      Capability = "classify"
	CapStance        Capability = "stance"
	CapTokenCounting Capability = "token_counting"
	CapLocalInference Capability = "local_inference"
)

// Capabilities is a typed set over the Capability enumeration. The zero
// value is the empty set.
type Capabilities struct {
	members map[Capability]struct{}
}

// NewCapabilities builds a set containing caps.
func NewCapabilities(caps ...Capability) Capabilities {
	c := Capabilities{members: make(map[Capability]struct{}, len(caps))}
	for _, cap := range caps {
		c.members[cap] = struct{}{}
	}
	return c
}

// Has reports whether cap is a member.
func (c Capabilities) Has(cap Capability) bool {
	if c.members == nil {
		return false
	}
	_, ok := c.members[cap]
	return ok
}

// Add inserts cap and returns the updated set.
func (c Capabilities) Add(cap Capability) Capabilities {
	if c.members == nil {
		c.members = make(map[Capability]struct{})
	}
	c.members[cap] = struct{}{}
	return c
}

// Union returns the set union of c and other. Union is commutative and
// associative (spec §8 invariant v).
func (c Capabilities) Union(other Capabilities) Capabilities {
	result := NewCapabilities()
	for cap := range c.members {
		result.members[cap] = struct{}{}
	}
	for cap := range other.members {
		result.members[cap] = struct{}{}
	}
	return result
}

// List returns the members in canonical (sorted) order.
func (c Capabilities) List() []Capability {
	out := make([]Capability, 0, len(c.members))
	for cap := range c.members {
		out = append(out, cap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// MarshalJSON serializes the set as a canonical-sorted array of names.
func (c Capabilities) MarshalJSON() ([]byte, error) {
	names := c.List()
	if names == nil {
		names = []Capability{}
	}
	return json.Marshal(names)
}

// UnmarshalJSON parses an array of capability names.
func (c *Capabilities) UnmarshalJSON(data []byte) error {
	var names []Capability
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	if len(names) == 0 {
		*c = Capabilities{}
		return nil
	}
	*c = NewCapabilities(names...)
	return nil
}

// EmptyCapabilities returns the empty capability set.
func EmptyCapabilities() Capabilities { return NewCapabilities() }

// ChatOnlyCapabilities is the factory preset for a text-chat provider.
func ChatOnlyCapabilities() Capabilities {
	return NewCapabilities(CapChat, CapChatStreaming, CapGenerate, CapToolUse)
}

// HuggingFaceOnlyCapabilities is the factory preset for an inference-API
// style provider offering embeddings and classification but no chat.
func HuggingFaceOnlyCapabilities() Capabilities {
	return NewCapabilities(CapEmbed, CapNli, CapClassify, CapStance)
}

// LocalOnlyCapabilities is the factory preset for a local-inference-only
// provider.
func LocalOnlyCapabilities() Capabilities {
	return NewCapabilities(CapLocalInference, CapTokenCounting)
}

// FullCapabilities is the factory preset containing every capability.
func FullCapabilities() Capabilities {
	return NewCapabilities(
		CapChat, CapChatStreaming, CapGenerate, CapToolUse,
		CapEmbed, CapNli, CapClassify, CapStance,
		CapTokenCounting, CapLocalInference,
	)
}
