// Package registry is the page-wide directory of mounted editor
// instances. It carries the last-focused pointer and the cross-instance
// API external scripts use: SetContent for a specific instance and
// InsertAtActive for whichever one holds focus.
//
// The registry is an explicit object passed by reference, not implicit
// global state; lifecycle is register/unregister tied to instance
// mount/unmount.
package registry

import (
	"log/slog"
	"sync"

	"github.com/inkwell-dev/inkwell/pkg/editor"
)

// entry is one directory record.
type entry struct {
	inst        *editor.Instance
	lastFocused bool
}

// Registry maps field ids to live instances. All operations are
// serialized: mount-before-focus ordering holds even under a concurrent
// host.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	logger  *slog.Logger
}

// New creates an empty registry.
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		entries: make(map[string]*entry),
		logger:  logger,
	}
}

// Register adds an instance under its field id. Registering an id twice
// replaces the earlier entry; the replaced instance keeps running until
// its own unmount.
func (r *Registry) Register(id string, inst *editor.Instance) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = &entry{inst: inst}
}

// Unregister removes the directory entry for id.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

// Get returns the instance registered under id.
func (r *Registry) Get(id string) (*editor.Instance, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	return e.inst, true
}

// IDs returns the registered field ids.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.entries))
	for id := range r.entries {
		out = append(out, id)
	}
	return out
}

// RecordFocus marks id as last-focused. At most one entry page-wide
// holds the flag. An unknown id is a log-and-no-op.
func (r *Registry) RecordFocus(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	target, ok := r.entries[id]
	if !ok {
		r.logger.Warn("registry: focus on unregistered instance", "id", id)
		return
	}
	for _, e := range r.entries {
		e.lastFocused = false
	}
	target.lastFocused = true
}

// LastFocused returns the last-focused instance, if any.
func (r *Registry) LastFocused() (*editor.Instance, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.lastFocused {
			return e.inst, true
		}
	}
	return nil, false
}

// SetContent replaces the identified instance's tree with the import of
// src. An unregistered id is a log-and-no-op; nothing else changes.
func (r *Registry) SetContent(id, src string) error {
	inst, ok := r.Get(id)
	if !ok {
		r.logger.Warn("registry: SetContent on unregistered instance", "id", id)
		return nil
	}
	return inst.SetContent(src)
}

// InsertAtActive imports src and hands the nodes to the last-focused
// instance: at its live selection when one exists, appended at the root
// otherwise. With no focused instance it is a log-and-no-op.
func (r *Registry) InsertAtActive(src string) error {
	inst, ok := r.LastFocused()
	if !ok {
		r.logger.Warn("registry: InsertAtActive with no focused instance")
		return nil
	}
	nodes, err := inst.ImportNodes(src)
	if err != nil {
		return err
	}
	inst.InsertNodes(nodes)
	return nil
}
