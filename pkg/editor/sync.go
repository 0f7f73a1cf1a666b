package editor

import (
	"sync/atomic"

	"github.com/inkwell-dev/inkwell/pkg/doctree"
)

// SyncBridge mirrors the committed tree into the host field: one export
// and one write per transaction, never a partial value. A missing field
// is a silent no-op; the editor keeps running headless.
//
// The bridge never consults the source override store. After a source
// apply, the next ordinary edit overwrites the field with tree-derived
// output while the override value stays behind; that precedence is
// deliberately left as observed (see DESIGN.md).
type SyncBridge struct {
	inst        *Instance
	suspended   atomic.Bool
	unsubscribe func()
}

func newSyncBridge(inst *Instance) *SyncBridge {
	s := &SyncBridge{inst: inst}
	s.unsubscribe = inst.engine.Subscribe(s.onCommit)
	return s
}

// onCommit runs once per committed transaction.
func (s *SyncBridge) onCommit(root *doctree.Node) {
	if s.suspended.Load() {
		return
	}
	out, err := s.inst.conv.Export(root.Children)
	if err != nil {
		s.inst.logger.Warn("sync: export failed, field left unchanged",
			"id", s.inst.id, "error", err)
		return
	}
	if !s.inst.sink.SetField(s.inst.id, out) {
		// Field absent: headless operation, not an error.
		s.inst.logger.Debug("sync: target field absent", "id", s.inst.id)
	}
}

// bypass runs fn with the mirror suspended. The source-apply transition
// uses it to write raw bytes instead of tree-derived output.
func (s *SyncBridge) bypass(fn func()) {
	s.suspended.Store(true)
	defer s.suspended.Store(false)
	fn()
}

func (s *SyncBridge) stop() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}
