package editor

import (
	"sync"

	"github.com/inkwell-dev/inkwell/pkg/engine"
)

// OverrideStore holds per-field verbatim HTML: the escape hatch for
// bytes the tree cannot represent losslessly (comments, style nuances,
// intentionally unsupported markup). Values are written only by a
// successful source apply and are never explicitly invalidated.
type OverrideStore struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewOverrideStore creates an empty store.
func NewOverrideStore() *OverrideStore {
	return &OverrideStore{m: make(map[string]string)}
}

// Get returns the override for a field id, if one is stored.
func (o *OverrideStore) Get(id string) (string, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	v, ok := o.m[id]
	return v, ok
}

// Set stores raw HTML for a field id.
func (o *OverrideStore) Set(id, raw string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.m[id] = raw
}

// Delete removes a field's override, e.g. on unmount.
func (o *OverrideStore) Delete(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.m, id)
}

// ViewState is the source-view toggle state.
type ViewState uint8

const (
	StateVisual ViewState = iota
	StateSource
)

// String returns the string representation of the ViewState.
func (s ViewState) String() string {
	switch s {
	case StateVisual:
		return "visual"
	case StateSource:
		return "source"
	default:
		return "unknown"
	}
}

// SourceView is the per-instance visual/source toggle.
type SourceView struct {
	inst  *Instance
	store *OverrideStore
	state ViewState
}

func newSourceView(inst *Instance, store *OverrideStore) *SourceView {
	return &SourceView{inst: inst, store: store}
}

// State returns the current toggle state.
func (v *SourceView) State() ViewState { return v.state }

// Overrides exposes the backing store.
func (v *SourceView) Overrides() *OverrideStore { return v.store }

// Enter switches to source view and returns the text to display: the
// stored override when present, otherwise the tree export.
func (v *SourceView) Enter() (string, error) {
	if raw, ok := v.store.Get(v.inst.id); ok {
		v.state = StateSource
		return raw, nil
	}
	out, err := v.inst.Export()
	if err != nil {
		return "", err
	}
	v.state = StateSource
	return out, nil
}

// Apply attempts the source→visual transition with the edited raw text.
// On success the tree is replaced, the override stores raw
// unconditionally, and raw is written to the field directly — the one
// transition that bypasses the sync mirror, preserving bytes the tree
// cannot hold. On parse failure the view stays in source, and tree and
// field are untouched.
func (v *SourceView) Apply(raw string) error {
	nodes, err := v.inst.conv.Import(raw)
	if err != nil {
		return err
	}

	v.inst.sync.bypass(func() {
		v.inst.engine.Update(func(tx *engine.Tx) {
			tx.ReplaceChildren(nodes)
		})
	})
	v.store.Set(v.inst.id, raw)
	if !v.inst.sink.SetField(v.inst.id, raw) {
		v.inst.logger.Debug("source: target field absent", "id", v.inst.id)
	}
	v.state = StateVisual
	return nil
}

// Cancel leaves source view without applying.
func (v *SourceView) Cancel() {
	v.state = StateVisual
}
