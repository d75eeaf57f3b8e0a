// Package registry holds the gateway's model catalog and preset table:
// which models exist, their pricing/capability metadata, and the
// registry:TIER/CAPABILITY presets that resolve to a model plus default
// parameters. It is a plain mutex-guarded map store, the same shape as a
// provider registry, generalized from "name -> provider" to "id -> model
// metadata" and "tier/slot -> preset".
package registry

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/emesal/ratatoskr/pkg/provider/errors"
	"github.com/emesal/ratatoskr/pkg/provider/types"
)

// DocumentVersion is written to every saved registry document. Load does
// not inspect it.
const DocumentVersion = 1

// Document is the on-disk JSON shape of a registry (§6): a version tag, the
// flat model list, and the two-level tier -> slot preset table.
type Document struct {
	Version int                                    `json:"version"`
	Models  []types.ModelMetadata                  `json:"models"`
	Presets map[string]map[string]types.PresetEntry `json:"presets"`
}

// Registry is the in-memory model/preset catalog. The zero value is not
// usable; construct with New.
type Registry struct {
	mu      sync.RWMutex
	models  map[string]types.ModelMetadata
	presets map[string]map[string]types.PresetEntry
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		models:  make(map[string]types.ModelMetadata),
		presets: make(map[string]map[string]types.PresetEntry),
	}
}

// Get returns the model registered under id.
func (r *Registry) Get(id string) (types.ModelMetadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[id]
	return m, ok
}

// List returns every registered model, sorted by id (§4.6).
func (r *Registry) List() []types.ModelMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]types.ModelMetadata, 0, len(r.models))
	for _, m := range r.models {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Info.ID < out[j].Info.ID })
	return out
}

// Merge inserts m if its id is new, or merges it field-by-field onto the
// existing entry via ModelMetadata.Merge otherwise (§4.6).
func (r *Registry) Merge(m types.ModelMetadata) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.models[m.Info.ID]
	if !ok {
		r.models[m.Info.ID] = m
		return
	}
	r.models[m.Info.ID] = existing.Merge(m)
}

// Preset returns the preset entry registered at (tier, slot).
func (r *Registry) Preset(tier, slot string) (types.PresetEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slots, ok := r.presets[tier]
	if !ok {
		return types.PresetEntry{}, false
	}
	entry, ok := slots[slot]
	return entry, ok
}

// SetPreset registers entry at (tier, slot), replacing whatever was there.
func (r *Registry) SetPreset(tier, slot string, entry types.PresetEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.presets[tier] == nil {
		r.presets[tier] = make(map[string]types.PresetEntry)
	}
	r.presets[tier][slot] = entry
}

// MergePresets overlays other onto r's preset table. Unlike Merge, this is
// a full replace per (tier, slot): an incoming entry entirely replaces
// whatever was registered at that slot rather than merging fields (§4.6 —
// preset merge has no per-field semantics, since a PresetEntry only names
// a model and a set of defaults, not a versioned object).
func (r *Registry) MergePresets(other map[string]map[string]types.PresetEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for tier, slots := range other {
		if r.presets[tier] == nil {
			r.presets[tier] = make(map[string]types.PresetEntry, len(slots))
		}
		for slot, entry := range slots {
			r.presets[tier][slot] = entry
		}
	}
}

// ValidatePresets checks that every preset's model_id names a known model
// (§4.6). It does not mutate the registry or block reads; callers decide
// whether a validation failure should abort a write.
func (r *Registry) ValidatePresets() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var bad []error
	for tier, slots := range r.presets {
		for slot, entry := range slots {
			if _, ok := r.models[entry.ModelID]; !ok {
				bad = append(bad, fmt.Errorf("preset %s/%s: %w", tier, slot, errors.NewModelNotFoundError(entry.ModelID)))
			}
		}
	}
	if len(bad) == 0 {
		return nil
	}
	return joinErrors(bad)
}

func joinErrors(errs []error) error {
	msg := errs[0].Error()
	for _, e := range errs[1:] {
		msg += "; " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}

// Load replaces r's contents with the document read from r2. The document's
// version field is neither checked nor required, since DocumentVersion 1 is
// the only version defined so far.
func (r *Registry) Load(r2 io.Reader) error {
	var doc Document
	if err := json.NewDecoder(r2).Decode(&doc); err != nil {
		return errors.NewJSONError("decoding registry document", err)
	}

	models := make(map[string]types.ModelMetadata, len(doc.Models))
	for _, m := range doc.Models {
		models[m.Info.ID] = m
	}
	presets := doc.Presets
	if presets == nil {
		presets = make(map[string]map[string]types.PresetEntry)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.models = models
	r.presets = presets
	return nil
}

// LoadFile opens path and loads it via Load.
func (r *Registry) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.Load(f)
}

// Save writes r's current contents as a versioned JSON document to w.
func (r *Registry) Save(w io.Writer) error {
	r.mu.RLock()
	models := make([]types.ModelMetadata, 0, len(r.models))
	for _, m := range r.models {
		models = append(models, m)
	}
	sort.Slice(models, func(i, j int) bool { return models[i].Info.ID < models[j].Info.ID })

	presets := make(map[string]map[string]types.PresetEntry, len(r.presets))
	for tier, slots := range r.presets {
		copied := make(map[string]types.PresetEntry, len(slots))
		for slot, entry := range slots {
			copied[slot] = entry
		}
		presets[tier] = copied
	}
	r.mu.RUnlock()

	doc := Document{Version: DocumentVersion, Models: models, Presets: presets}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.NewJSONError("encoding registry document", err)
	}
	return nil
}

// SaveFile writes r's contents to path, creating or truncating it.
func (r *Registry) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.Save(f)
}
